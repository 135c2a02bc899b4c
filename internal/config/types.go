package config

// Config holds all configuration for the application.
type Config struct {
	Port             string `env:"PORT" envDefault:"8080"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	StorageBackend   string `env:"STORAGE_BACKEND" envDefault:"sqlite"`
	DBName           string `env:"DB_NAME" envDefault:"ranking.db"`
	DataDir          string `env:"DATA_DIR" envDefault:"./data"`
	StrictMatchTypes bool   `env:"STRICT_MATCH_TYPES" envDefault:"false"`
	Timezone         string `env:"CLUB_TIMEZONE" envDefault:"Asia/Seoul"`
	Slack            SlackConfig
	Turso            TursoConfig
}

type SlackConfig struct {
	Token         string `env:"SLACK_BOT_TOKEN"`
	ChannelID     string `env:"SLACK_CHANNEL_ID"`
	SigningSecret string `env:"SLACK_SIGNING_SECRET"`
}

type TursoConfig struct {
	PrimaryURL string `env:"TURSO_PRIMARY_URL"`
	AuthToken  string `env:"TURSO_AUTH_TOKEN"`
}

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)
