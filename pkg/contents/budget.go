package contents

import "errors"

// ErrBudgetExhausted is returned when a call is refused because the per-run
// call budget has been used up.
var ErrBudgetExhausted = errors.New("call budget exhausted")

// Budget counts remote calls made during one run. It is not persisted;
// every run starts from zero.
type Budget struct {
	limit int
	used  int
}

func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

// Take consumes one call if any remain.
func (b *Budget) Take() bool {
	if b.used >= b.limit {
		return false
	}
	b.used++
	return true
}

// Remaining reports whether at least one more call is allowed.
func (b *Budget) Remaining() bool {
	return b.used < b.limit
}

func (b *Budget) Used() int  { return b.used }
func (b *Budget) Limit() int { return b.limit }
