package swordworld

// TrueMark is the cell text for a set flag.
const TrueMark = "○"

// ExpStatus places a character's experience against the season's level cap.
// Values are ordered: ExpInactive < ExpActive < ExpMax.
type ExpStatus int

const (
	ExpInactive ExpStatus = iota + 1
	ExpActive
	ExpMax
)

// ClassifyExp derives the status from the cap thresholds.
func ClassifyExp(exp, maxExp, minimumExp int) ExpStatus {
	switch {
	case exp >= maxExp:
		return ExpMax
	case exp >= minimumExp:
		return ExpActive
	default:
		return ExpInactive
	}
}

// IsActive reports whether the status is at least ExpActive.
func (s ExpStatus) IsActive() bool {
	return s >= ExpActive
}

// Mark returns TrueMark for active statuses and "" otherwise.
func (s ExpStatus) Mark() string {
	if s.IsActive() {
		return TrueMark
	}
	return ""
}

func (s ExpStatus) String() string {
	switch s {
	case ExpInactive:
		return "inactive"
	case ExpActive:
		return "active"
	case ExpMax:
		return "max"
	default:
		return "unknown"
	}
}
