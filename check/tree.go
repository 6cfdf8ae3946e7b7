package check

import "github.com/cwbudde/kernelcheck/internal/cpu"

// The function registry is a left-leaning red-black tree keyed by kernel
// name. Each node owns a chain of implementation versions, one per distinct
// function identity registered under that name; the first version is stored
// inline so the common single-version case needs no extra allocation.

// funcVersion is one implementation registered under a name. A version is
// appended the first time a distinct function identity shows up and is then
// mutated in place by comparisons and benchmark updates.
type funcVersion struct {
	next       *funcVersion
	fn         any
	ptr        uintptr // code pointer, the dedup key across capability levels
	ok         bool
	cpu        cpu.Flags
	suffix     string // report suffix of the level that registered it
	iterations int
	ticks      uint64
}

// funcNode is a tree node. color follows the left-leaning red-black
// convention: 0 = red, 1 = black.
type funcNode struct {
	child    [2]*funcNode
	versions funcVersion
	color    uint8
	name     string
}

func isRed(f *funcNode) bool {
	return f != nil && f.color == 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func byteAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// cmpFuncNames orders names byte-wise except that digit runs compare
// numerically, so "fn2" sorts before "fn10". The trick: after skipping the
// common prefix and any shared digits, if the previous byte was a digit then
// the name whose digit run continues is the larger number.
func cmpFuncNames(a, b string) int {
	i := 0
	for byteAt(a, i) == byteAt(b, i) && byteAt(a, i) != 0 {
		i++
	}
	asciiDiff := int(byteAt(a, i)) - int(byteAt(b, i))

	j := i
	for isDigit(byteAt(a, j)) && isDigit(byteAt(b, j)) {
		j++
	}

	if j > 0 && isDigit(byteAt(a, j-1)) {
		da, db := 0, 0
		if isDigit(byteAt(a, j)) {
			da = 1
		}
		if isDigit(byteAt(b, j)) {
			db = 1
		}
		if da != db {
			return da - db
		}
	}

	return asciiDiff
}

// rotateTree rotates f in the given direction and returns the new subtree
// root. The child's color moves up with it and f is recolored red.
func rotateTree(f *funcNode, dir int) *funcNode {
	r := f.child[dir^1]
	f.child[dir^1] = r.child[dir]
	r.child[dir] = f
	r.color = f.color
	f.color = 0
	return r
}

// balanceTree restores the left-leaning red-black invariants at *root after
// an insertion below it.
func balanceTree(root **funcNode) {
	f := *root

	switch {
	case isRed(f.child[0]) && isRed(f.child[1]):
		f.color ^= 1
		f.child[0].color = 1
		f.child[1].color = 1
	case !isRed(f.child[0]) && isRed(f.child[1]):
		*root = rotateTree(f, 0) // rotate left
	case isRed(f.child[0]) && isRed(f.child[0].child[0]):
		*root = rotateTree(f, 1) // rotate right
	}
}

// getFunc returns the node for name, inserting a new red node if absent.
// Rebalancing happens on the way back up the insertion path; a node is
// recognized as freshly inserted by its still-unset first version.
func getFunc(root **funcNode, name string) *funcNode {
	f := *root
	if f == nil {
		f = &funcNode{name: name}
		*root = f
		return f
	}

	cmp := cmpFuncNames(name, f.name)
	if cmp == 0 {
		return f
	}

	dir := 0
	if cmp > 0 {
		dir = 1
	}
	n := getFunc(&f.child[dir], name)
	if n.versions.fn == nil {
		balanceTree(root)
	}
	return n
}

// walkInOrder visits every node in sorted name order. The traversal is
// iterative with an explicit stack so pathological tree sizes cannot
// exhaust the goroutine stack.
func walkInOrder(root *funcNode, visit func(*funcNode)) {
	var stack []*funcNode
	f := root
	for f != nil || len(stack) > 0 {
		for f != nil {
			stack = append(stack, f)
			f = f.child[0]
		}
		f = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		visit(f)
		f = f.child[1]
	}
}
