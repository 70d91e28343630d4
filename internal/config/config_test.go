package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig()

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{15 * time.Minute, 2 * time.Hour, 12 * time.Hour, 48 * time.Hour, 72 * time.Hour}, cfg.Hydration.Ladder)
	assert.Equal(t, 7*time.Second, cfg.Discovery.SoftBudget)
	assert.Equal(t, 5, cfg.Discovery.MaxAuthors)
	assert.Equal(t, 600*time.Millisecond, cfg.Discovery.AuthorReserve)
	assert.Equal(t, "/avatar1.png", cfg.Campaigns.DefaultAvatarURL)
	assert.Contains(t, cfg.Database.DSN, "postgres://")
}

func TestNewConfig_FromEnv(t *testing.T) {
	t.Setenv("HYDRATION_LADDER", "1m,5m")
	t.Setenv("CAMPAIGN_IDS", "c1,c2")
	t.Setenv("DISCOVERY_MAX_AUTHORS", "12")
	t.Setenv("SCORING_USE_AUTHOR_REACH", "true")

	cfg, err := NewConfig()

	require.NoError(t, err)
	assert.Equal(t, []time.Duration{time.Minute, 5 * time.Minute}, cfg.Hydration.Ladder)
	assert.Equal(t, []string{"c1", "c2"}, cfg.Campaigns.IDs)
	assert.Equal(t, 12, cfg.Discovery.MaxAuthors)
	assert.True(t, cfg.Scoring.UseAuthorReach)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Discovery: Discovery{MaxAuthors: 5, MaxResults: 60},
			Hydration: Hydration{BatchSize: 100, FetchChunk: 100, Ladder: []time.Duration{time.Minute}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "Configuração válida", mutate: func(c *Config) {}},
		{name: "Escada vazia", mutate: func(c *Config) { c.Hydration.Ladder = nil }, wantErr: true},
		{name: "Degrau não positivo", mutate: func(c *Config) { c.Hydration.Ladder = []time.Duration{time.Minute, 0} }, wantErr: true},
		{name: "Lote zerado", mutate: func(c *Config) { c.Hydration.FetchChunk = 0 }, wantErr: true},
		{name: "Sem autores por execução", mutate: func(c *Config) { c.Discovery.MaxAuthors = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.validate()

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
