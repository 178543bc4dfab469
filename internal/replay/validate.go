package replay

import "fmt"

// Result is a structured validation report. Errors make a log unfit
// for playback; warnings are informational and playback may proceed.
type Result struct {
	Errors   []string
	Warnings []string
}

// OK reports whether the log passed validation.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks a log's integrity: it must be non-empty, start from
// a non-empty snake, and keep its timestamps non-negative and
// non-decreasing. A missing Move action or an unrecognized version tag
// only warns.
func Validate(l Log) Result {
	var res Result

	if len(l.Actions) == 0 {
		res.Errors = append(res.Errors, "log has no actions")
	}
	if len(l.Initial.Body) == 0 {
		res.Errors = append(res.Errors, "initial snake body is empty")
	}

	var last int64 = -1
	moves := 0
	for i, a := range l.Actions {
		ms := a.When().Milliseconds()
		if ms < 0 {
			res.Errors = append(res.Errors, fmt.Sprintf("action %d has negative timestamp %dms", i, ms))
		}
		if last >= 0 && ms < last {
			res.Errors = append(res.Errors, fmt.Sprintf("action %d timestamp %dms precedes previous %dms", i, ms, last))
		}
		last = ms
		if _, ok := a.(Move); ok {
			moves++
		}
	}

	if len(l.Actions) > 0 && moves == 0 {
		res.Warnings = append(res.Warnings, "no movement recorded")
	}
	if l.Version != Version {
		res.Warnings = append(res.Warnings, fmt.Sprintf("unrecognized version tag %q", l.Version))
	}

	return res
}
