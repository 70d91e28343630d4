package scheduler

import "time"

// Ladder são os deslocamentos de reidratação por estágio. O estágio terminal
// é len(ladder): o post nunca mais é agendado.
type Ladder []time.Duration

func (l Ladder) Terminal() int {
	return len(l)
}

// First é o agendamento de um post recém-descoberto (estágio 0).
func (l Ladder) First(now time.Time) *time.Time {
	if len(l) == 0 {
		return nil
	}
	at := now.Add(l[0])
	return &at
}

// Advance retorna o próximo estágio e quando ele vence. Ao atingir o estágio
// terminal o horário é nil.
func (l Ladder) Advance(stage int, now time.Time) (int, *time.Time) {
	if stage < 0 {
		stage = 0
	}

	next := min(stage+1, len(l))
	if next >= len(l) {
		return len(l), nil
	}

	at := now.Add(l[next])
	return next, &at
}
