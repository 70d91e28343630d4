package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App       App       `mapstructure:",squash"`
	Server    Server    `mapstructure:",squash"`
	Database  Database  `mapstructure:",squash"`
	X         X         `mapstructure:",squash"`
	Redis     Redis     `mapstructure:",squash"`
	Auth      Auth      `mapstructure:",squash"`
	Scoring   Scoring   `mapstructure:",squash"`
	Discovery Discovery `mapstructure:",squash"`
	Hydration Hydration `mapstructure:",squash"`
	Campaigns Campaigns `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// X configura a fonte de conteúdo (API v2 do X).
type X struct {
	BaseURL     string        `mapstructure:"x_base_url"`
	BearerToken string        `mapstructure:"x_bearer_token"`
	Timeout     time.Duration `mapstructure:"x_timeout"`
	MaxRetries  int           `mapstructure:"x_max_retries"`
}

// Redis é opcional; sem endereço o lock por campanha vira no-op.
type Redis struct {
	Addr     string        `mapstructure:"redis_addr"`
	Username string        `mapstructure:"redis_username"`
	Password string        `mapstructure:"redis_password"`
	LockTTL  time.Duration `mapstructure:"redis_lock_ttl"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	CronSecret string        `mapstructure:"cron_secret"`
	TokenTTL   time.Duration `mapstructure:"cron_token_ttl"`
}

type Scoring struct {
	UseAuthorReach bool `mapstructure:"scoring_use_author_reach"`
}

type Discovery struct {
	CronSchedule   string        `mapstructure:"discovery_cron"`
	Enabled        bool          `mapstructure:"discovery_enabled"`
	SoftBudget     time.Duration `mapstructure:"discovery_soft_budget"`
	MaxAuthors     int           `mapstructure:"discovery_max_authors"`
	MaxResults     int           `mapstructure:"discovery_max_results"`
	Lookback       time.Duration `mapstructure:"discovery_lookback"`
	ActiveBackoff  time.Duration `mapstructure:"discovery_active_backoff"`
	QuietBackoff   time.Duration `mapstructure:"discovery_quiet_backoff"`
	FailureBackoff time.Duration `mapstructure:"discovery_failure_backoff"`
	AuthorReserve  time.Duration `mapstructure:"discovery_author_reserve"`
}

type Hydration struct {
	CronSchedule string          `mapstructure:"hydration_cron"`
	Enabled      bool            `mapstructure:"hydration_enabled"`
	SoftBudget   time.Duration   `mapstructure:"hydration_soft_budget"`
	BatchSize    int             `mapstructure:"hydration_batch_size"`
	FetchChunk   int             `mapstructure:"hydration_fetch_chunk"`
	Ladder       []time.Duration `mapstructure:"hydration_ladder"`
}

// Campaigns restringe as campanhas processadas pelos crons; vazio = todas as ativas.
type Campaigns struct {
	IDs              []string `mapstructure:"campaign_ids"`
	DefaultAvatarURL string   `mapstructure:"default_avatar_url"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/campaigns?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("X_BASE_URL", "https://api.x.com")
	viper.SetDefault("X_BEARER_TOKEN", "")
	viper.SetDefault("X_TIMEOUT", "10s")
	viper.SetDefault("X_MAX_RETRIES", 2)

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_USERNAME", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_LOCK_TTL", "30s")

	viper.SetDefault("CRON_SECRET", "")
	viper.SetDefault("CRON_TOKEN_TTL", "720h")

	viper.SetDefault("SCORING_USE_AUTHOR_REACH", false)

	viper.SetDefault("DISCOVERY_CRON", "*/2 * * * *")     // A cada 2 minutos
	viper.SetDefault("DISCOVERY_ENABLED", false)          // Habilitar descoberta pelo cron interno
	viper.SetDefault("DISCOVERY_SOFT_BUDGET", "7s")       // Orçamento de tempo por execução
	viper.SetDefault("DISCOVERY_MAX_AUTHORS", 5)          // Autores por execução
	viper.SetDefault("DISCOVERY_MAX_RESULTS", 60)         // Posts por página da timeline
	viper.SetDefault("DISCOVERY_LOOKBACK", "72h")         // Janela móvel de 3 dias
	viper.SetDefault("DISCOVERY_ACTIVE_BACKOFF", "5m")    // Autor com posts da campanha
	viper.SetDefault("DISCOVERY_QUIET_BACKOFF", "45m")    // Autor sem posts da campanha
	viper.SetDefault("DISCOVERY_FAILURE_BACKOFF", "10m")  // Falha ao buscar a timeline
	viper.SetDefault("DISCOVERY_AUTHOR_RESERVE", "600ms") // Tempo mínimo para iniciar outro autor

	viper.SetDefault("HYDRATION_CRON", "*/15 * * * *")         // A cada 15 minutos
	viper.SetDefault("HYDRATION_ENABLED", false)               // Habilitar reidratação pelo cron interno
	viper.SetDefault("HYDRATION_SOFT_BUDGET", "7s")            // Orçamento de tempo por execução
	viper.SetDefault("HYDRATION_BATCH_SIZE", 100)              // Posts por execução
	viper.SetDefault("HYDRATION_FETCH_CHUNK", 100)             // IDs por chamada externa
	viper.SetDefault("HYDRATION_LADDER", "15m,2h,12h,48h,72h") // Escada de reidratação

	viper.SetDefault("CAMPAIGN_IDS", "")
	viper.SetDefault("DEFAULT_AVATAR_URL", "/avatar1.png")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	}

	err := viper.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if len(c.Hydration.Ladder) == 0 {
		return fmt.Errorf("HYDRATION_LADDER não pode ser vazio")
	}
	for i, offset := range c.Hydration.Ladder {
		if offset <= 0 {
			return fmt.Errorf("HYDRATION_LADDER[%d] deve ser positivo: %s", i, offset)
		}
	}
	if c.Hydration.BatchSize <= 0 || c.Hydration.FetchChunk <= 0 {
		return fmt.Errorf("HYDRATION_BATCH_SIZE e HYDRATION_FETCH_CHUNK devem ser positivos")
	}
	if c.Discovery.MaxAuthors <= 0 || c.Discovery.MaxResults <= 0 {
		return fmt.Errorf("DISCOVERY_MAX_AUTHORS e DISCOVERY_MAX_RESULTS devem ser positivos")
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
