package check

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/sugawarayuuta/sonnet"
	"golang.org/x/crypto/blake2b"

	"github.com/cwbudde/kernelcheck/internal/benchdb"
	"github.com/cwbudde/kernelcheck/internal/cpu"
)

// VersionResult is one implementation version's outcome, as exported to the
// JSON report and the benchmark history database.
type VersionResult struct {
	Name       string `json:"name"`
	Suffix     string `json:"suffix"`
	OK         bool   `json:"ok"`
	Iterations int    `json:"iterations,omitempty"`
	DeciTicks  int    `json:"deci_ticks,omitempty"`
}

// RunResult is the machine-readable summary of a whole run.
type RunResult struct {
	RunID     string          `json:"run_id"`
	Seed      uint32          `json:"seed"`
	Flags     uint32          `json:"flags"`
	Checked   int             `json:"checked"`
	Failed    int             `json:"failed"`
	Overhead  int             `json:"overhead_deci_ticks,omitempty"`
	Functions []VersionResult `json:"functions"`
}

// results flattens the registry into sorted per-version records.
func (r *Runner) results() []VersionResult {
	var out []VersionResult
	walkInOrder(r.funcs, func(f *funcNode) {
		for v := &f.versions; v != nil; v = v.next {
			out = append(out, VersionResult{
				Name:       f.name,
				Suffix:     v.suffix,
				OK:         v.ok,
				Iterations: v.iterations,
				DeciTicks:  r.deciTicks(v),
			})
		}
	})
	return out
}

// runID derives a stable identity for this run from the seed, the final
// capability mask and the registered version table, so identical
// configurations hash identically across invocations.
func runID(seed uint32, mask cpu.Flags, results []VersionResult) string {
	h, err := blake2b.New256(nil)
	if err != nil {
		return ""
	}
	var scratch [8]byte
	binary.LittleEndian.PutUint32(scratch[:4], seed)
	binary.LittleEndian.PutUint32(scratch[4:], uint32(mask))
	h.Write(scratch[:])
	for _, v := range results {
		h.Write([]byte(v.Name))
		h.Write([]byte{'_'})
		h.Write([]byte(v.Suffix))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}

// export writes the JSON report and appends benchmark history, as
// configured. History rows are only written when timings exist and the run
// passed; persisted numbers for broken code would poison later
// comparisons.
func (r *Runner) export() error {
	if r.cfg.JSONPath == "" && r.cfg.HistoryPath == "" {
		return nil
	}

	results := r.results()
	id := runID(r.cfg.Seed, r.cpuFlag, results)

	if r.cfg.JSONPath != "" {
		run := RunResult{
			RunID:     id,
			Seed:      r.cfg.Seed,
			Flags:     uint32(r.cpuFlag),
			Checked:   r.numChecked,
			Failed:    r.numFailed,
			Overhead:  r.nopTime,
			Functions: results,
		}
		data, err := sonnet.Marshal(run)
		if err != nil {
			return fmt.Errorf("encoding JSON report: %w", err)
		}
		if err := os.WriteFile(r.cfg.JSONPath, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("writing JSON report: %w", err)
		}
	}

	if r.cfg.HistoryPath != "" && r.numFailed == 0 {
		var entries []benchdb.Entry
		for _, v := range results {
			if v.Iterations == 0 {
				continue
			}
			entries = append(entries, benchdb.Entry{
				Name:       v.Name,
				Suffix:     v.Suffix,
				DeciTicks:  v.DeciTicks,
				Iterations: v.Iterations,
			})
		}
		if len(entries) > 0 {
			run := benchdb.Run{
				ID:       id,
				Seed:     r.cfg.Seed,
				Flags:    uint32(r.cpuFlag),
				Overhead: r.nopTime,
				When:     time.Now(),
				Entries:  entries,
			}
			if err := benchdb.Append(r.cfg.HistoryPath, run); err != nil {
				return fmt.Errorf("appending benchmark history: %w", err)
			}
		}
	}

	return nil
}
