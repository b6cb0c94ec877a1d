package tableau

// Ring is the two-row scratch buffer described in §5: a strategy's
// per-cell side data (bound pairs, ball pairs, integer vectors, big
// counts) never needs more than the row currently being filled and the
// row above it, so only two rows are ever allocated regardless of
// tableau height; Advance recycles the older row in place.
type Ring[T any] struct {
	cols     int
	rows     [2][]T
	curIsRow0 bool
}

// NewRing allocates a two-row ring buffer sized for cols cells per row.
func NewRing[T any](cols int) *Ring[T] {
	return &Ring[T]{
		cols:      cols,
		rows:      [2][]T{make([]T, cols), make([]T, cols)},
		curIsRow0: true,
	}
}

// Curr returns the row currently being filled.
func (r *Ring[T]) Curr() []T {
	if r.curIsRow0 {
		return r.rows[0]
	}
	return r.rows[1]
}

// Prev returns the previously completed row (the one above curr).
func (r *Ring[T]) Prev() []T {
	if r.curIsRow0 {
		return r.rows[1]
	}
	return r.rows[0]
}

// Advance swaps curr and prev, readying curr's backing array (now the
// old prev) to be overwritten for the next tableau row.
func (r *Ring[T]) Advance() {
	r.curIsRow0 = !r.curIsRow0
}
