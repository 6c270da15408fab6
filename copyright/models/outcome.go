package models

// OutcomeKind is the terminal state of reconciling one file.
type OutcomeKind int

const (
	// Unchanged means the file was already compliant and was not written.
	Unchanged OutcomeKind = iota
	// Inserted means a new annotation was synthesized and written.
	Inserted
	// Updated means an existing annotation had its years rewritten in place.
	Updated
)

func (k OutcomeKind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	default:
		return "unchanged"
	}
}

// Outcome reports what reconciliation did to a file.
type Outcome struct {
	Kind OutcomeKind
	Path string
	// OldText is set for updates only.
	OldText string
	NewText string
}

// Changed reports whether the file was rewritten.
func (o Outcome) Changed() bool {
	return o.Kind != Unchanged
}
