package scheduler

import "github.com/vfg2006/creator-campaign-api/internal/domain"

// deltaAccumulator soma os deltas de uma execução por autor, preservando a
// ordem em que cada autor apareceu.
type deltaAccumulator struct {
	order    []string
	byAuthor map[string]*domain.ScoreDelta
}

func newDeltaAccumulator() *deltaAccumulator {
	return &deltaAccumulator{
		byAuthor: make(map[string]*domain.ScoreDelta),
	}
}

func (d *deltaAccumulator) Add(delta domain.ScoreDelta) {
	if delta.AuthorID == "" || !(delta.Delta > 0) {
		return
	}

	existing, ok := d.byAuthor[delta.AuthorID]
	if !ok {
		copied := delta
		d.byAuthor[delta.AuthorID] = &copied
		d.order = append(d.order, delta.AuthorID)
		return
	}

	existing.Delta += delta.Delta
	if delta.Handle != "" {
		existing.Handle = delta.Handle
	}
	if delta.DisplayName != "" {
		existing.DisplayName = delta.DisplayName
	}
	if delta.AvatarURL != "" {
		existing.AvatarURL = delta.AvatarURL
	}
}

func (d *deltaAccumulator) Len() int {
	return len(d.order)
}

func (d *deltaAccumulator) Total() float64 {
	var total float64
	for _, id := range d.order {
		total += d.byAuthor[id].Delta
	}
	return total
}

func (d *deltaAccumulator) Rows() []domain.ScoreDelta {
	rows := make([]domain.ScoreDelta, 0, len(d.order))
	for _, id := range d.order {
		rows = append(rows, *d.byAuthor[id])
	}
	return rows
}
