package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLadder_Advance(t *testing.T) {
	ladder := Ladder{15 * time.Minute, 2 * time.Hour, 12 * time.Hour, 48 * time.Hour, 72 * time.Hour}

	tests := []struct {
		name          string
		stage         int
		expectedStage int
		expectedIn    time.Duration
		terminal      bool
	}{
		{name: "Do estágio 0 para o 1", stage: 0, expectedStage: 1, expectedIn: 2 * time.Hour},
		{name: "Do estágio 3 para o 4", stage: 3, expectedStage: 4, expectedIn: 72 * time.Hour},
		{name: "Último estágio vira terminal", stage: 4, expectedStage: 5, terminal: true},
		{name: "Terminal permanece terminal", stage: 5, expectedStage: 5, terminal: true},
		{name: "Estágio negativo é tratado como 0", stage: -3, expectedStage: 1, expectedIn: 2 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stage, at := ladder.Advance(tt.stage, baseTime)

			assert.Equal(t, tt.expectedStage, stage)
			if tt.terminal {
				assert.Nil(t, at)
				return
			}
			require.NotNil(t, at)
			assert.Equal(t, baseTime.Add(tt.expectedIn), *at)
		})
	}
}

func TestLadder_FirstAndTerminal(t *testing.T) {
	ladder := Ladder{15 * time.Minute, time.Hour}

	first := ladder.First(baseTime)
	require.NotNil(t, first)
	assert.Equal(t, baseTime.Add(15*time.Minute), *first)
	assert.Equal(t, 2, ladder.Terminal())
	assert.Nil(t, Ladder{}.First(baseTime))
}

func TestLadder_AlwaysTerminates(t *testing.T) {
	ladder := Ladder{time.Minute, time.Minute, time.Minute}

	stage, passes := 0, 0
	for {
		next, at := ladder.Advance(stage, baseTime)
		passes++
		stage = next
		if at == nil {
			break
		}
		require.Less(t, passes, 10)
	}

	assert.Equal(t, ladder.Terminal(), stage)
	assert.Equal(t, 3, passes)
}
