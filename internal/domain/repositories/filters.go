package repositories

// ListFilter carries the paging knobs shared by every list operation. Soft
// deleted rows are hidden unless IncludeDeleted is set.
type ListFilter struct {
	IncludeDeleted bool
	Limit          int
	Offset         int
}

// Normalize clamps the filter to sane defaults.
func (f ListFilter) Normalize() ListFilter {
	if f.Limit <= 0 || f.Limit > 500 {
		f.Limit = 100
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
