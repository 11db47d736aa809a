package model

import (
	"fmt"
	"iter"
)

// Range is the closed-open height interval [Start, End).
type Range struct {
	Start uint64
	End   uint64
}

// Validate reports an inverted range.
func (r Range) Validate() error {
	if r.End < r.Start {
		return fmt.Errorf("invalid height range [%d, %d): end before start", r.Start, r.End)
	}
	return nil
}

// Len returns the number of heights in the range.
func (r Range) Len() uint64 {
	if r.End <= r.Start {
		return 0
	}
	return r.End - r.Start
}

// Heights yields every height in ascending order.
func (r Range) Heights() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for h := r.Start; h < r.End; h++ {
			if !yield(h) {
				return
			}
		}
	}
}

func (r Range) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}
