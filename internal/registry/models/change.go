package models

// Change reports whether a mutating manager call altered stored state.
// Deleting an absent entity is Unchanged, not an error.
type Change int

const (
	Unchanged Change = iota
	Changed
)

func (c Change) IsChanged() bool { return c == Changed }

func (c Change) String() string {
	if c == Changed {
		return "changed"
	}
	return "unchanged"
}

// ChangeIf converts a boolean outcome into a Change.
func ChangeIf(changed bool) Change {
	if changed {
		return Changed
	}
	return Unchanged
}

// Or combines two outcomes; the result is Changed if either is.
func (c Change) Or(other Change) Change {
	return ChangeIf(c.IsChanged() || other.IsChanged())
}
