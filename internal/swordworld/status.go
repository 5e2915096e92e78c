package swordworld

// Status is one ability score split into its additive sources.
type Status struct {
	Base      int // racial dice roll
	Rolled    int // creation allocation
	Growth    int
	Equipment int
}

// NewStatus builds a status. Negative components are kept as given.
func NewStatus(base, rolled, growth, equipment int) Status {
	return Status{Base: base, Rolled: rolled, Growth: growth, Equipment: equipment}
}

// Total returns the final ability score.
func (s Status) Total() int {
	return s.Base + s.Rolled + s.Growth + s.Equipment
}
