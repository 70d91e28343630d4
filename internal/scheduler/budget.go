package scheduler

import "time"

// Budget limita o tempo de parede de uma execução. Um limite não positivo
// significa sem limite.
type Budget struct {
	start time.Time
	limit time.Duration
	now   func() time.Time
}

func NewBudget(limit time.Duration, now func() time.Time) *Budget {
	if now == nil {
		now = time.Now
	}

	return &Budget{
		start: now(),
		limit: limit,
		now:   now,
	}
}

func (b *Budget) Elapsed() time.Duration {
	return b.now().Sub(b.start)
}

func (b *Budget) Remaining() time.Duration {
	if b.limit <= 0 {
		return time.Duration(1<<63 - 1)
	}

	remaining := b.limit - b.Elapsed()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Allows informa se ainda sobra pelo menos reserve antes do limite.
func (b *Budget) Allows(reserve time.Duration) bool {
	if b.limit <= 0 {
		return true
	}
	return b.Remaining() > reserve
}
