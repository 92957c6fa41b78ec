// Package schedule holds the deterministic core of the planner: validating
// and normalizing study plans, computing their statistics, and rendering
// them for output. Nothing in this package touches an LLM, the filesystem,
// or the network.
package schedule

import "fmt"

// ViolationKind identifies one scheduling constraint check.
type ViolationKind string

const (
	// Hard violations: the plan was wrong and had to be corrected.
	KindHoursOutOfRange  ViolationKind = "HOURS_OUT_OF_RANGE"
	KindDayOrderingError ViolationKind = "DAY_ORDERING_ERROR"

	// Soft warnings: the plan is usable but questionable.
	KindNoBreakInWindow     ViolationKind = "NO_BREAK_IN_WINDOW"
	KindSuspiciousZeroHours ViolationKind = "SUSPICIOUS_ZERO_HOURS"
	KindInvalidDateFormat   ViolationKind = "INVALID_DATE_FORMAT"

	// KindPersistenceWarning is attached by the pipeline when an artifact
	// or history write fails; it never originates in Validate.
	KindPersistenceWarning ViolationKind = "PERSISTENCE_WARNING"
)

// Violation records one constraint breach. Day refers to the day number in
// the normalized plan so callers can locate the corrected entry; Detail
// carries the offending input value where one exists.
type Violation struct {
	Kind    ViolationKind `json:"kind"`
	Day     int           `json:"day,omitempty"`
	Message string        `json:"message"`
	Detail  string        `json:"detail,omitempty"`
}

func (v Violation) String() string {
	if v.Day > 0 {
		return fmt.Sprintf("[%s] day %d: %s", v.Kind, v.Day, v.Message)
	}
	return fmt.Sprintf("[%s] %s", v.Kind, v.Message)
}

// IsHard reports whether the violation kind forces OK=false.
func (v Violation) IsHard() bool {
	return v.Kind == KindHoursOutOfRange || v.Kind == KindDayOrderingError
}
