package check

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// Protect invokes fn and converts a runtime fault inside it into a recorded
// failure against the implementation currently under test, so a broken
// kernel takes down one comparison instead of the whole process. Control
// returns to the caller of Protect, which continues with the next test.
//
// The guard is scoped to this one call and cannot nest across test cases:
// recover unwinds to exactly the most recently armed boundary.
func (r *Runner) Protect(fn func()) {
	defer func() {
		if p := recover(); p != nil {
			r.Fail("%s", faultName(p))
		}
	}()
	fn()
}

// faultName classifies a recovered panic the way a trap handler would
// classify a hardware fault. Divide-by-zero and invalid memory access map
// onto the classic fault categories; anything else is reported verbatim.
func faultName(p any) string {
	err, ok := p.(error)
	if !ok {
		return fmt.Sprintf("panic: %v", p)
	}
	var rt runtime.Error
	if !errors.As(err, &rt) {
		return fmt.Sprintf("panic: %v", err)
	}

	msg := rt.Error()
	switch {
	case strings.Contains(msg, "divide by zero"):
		return "fatal arithmetic error"
	case strings.Contains(msg, "invalid memory address"),
		strings.Contains(msg, "index out of range"),
		strings.Contains(msg, "slice bounds out of range"):
		return "segmentation fault"
	case strings.Contains(msg, "illegal instruction"):
		return "illegal instruction"
	}
	return msg
}
