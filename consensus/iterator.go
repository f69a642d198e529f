package consensus

// RowIterator is a single-pass sequence of typed rows.
//
//	for it.Next() {
//		row := it.Row()
//	}
//	if err := it.Err(); err != nil { ... }
type RowIterator[T any] interface {
	Next() bool
	Row() T
	Err() error
	Close() error
}

type sliceIterator[T any] struct {
	rows []T
	pos  int
}

// FromSlice returns an iterator over rows.
func FromSlice[T any](rows []T) RowIterator[T] {
	return &sliceIterator[T]{rows: rows, pos: -1}
}

func (it *sliceIterator[T]) Next() bool {
	if it.pos+1 >= len(it.rows) {
		it.pos = len(it.rows)
		return false
	}
	it.pos++
	return true
}

func (it *sliceIterator[T]) Row() T { return it.rows[it.pos] }

func (it *sliceIterator[T]) Err() error { return nil }

func (it *sliceIterator[T]) Close() error { return nil }
