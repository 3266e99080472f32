package entities

// TeamSize holds the team size bounds of an event.
type TeamSize struct {
	Min int
	Max int
}

// Validate checks that 0 < Min <= Max.
func (s TeamSize) Validate() error {
	if s.Min <= 0 || s.Max < s.Min {
		return ErrInvalidArgument
	}
	return nil
}

// Event is read-only from the membership engine's perspective. Only the
// team size bounds take part in team formation.
type Event struct {
	ID       string
	TeamSize TeamSize
}
