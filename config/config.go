package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const (
	SentimentBackendVader       = "vader"
	SentimentBackendHuggingFace = "huggingface"
	SentimentBackendOpenAI      = "openai"
)

type Config struct {
	App         AppConfig
	Twitter     TwitterConfig
	Search      SearchConfig
	Sentiment   SentimentConfig
	HuggingFace HuggingFaceConfig
	OpenAI      OpenAIConfig
	Valkey      ValkeyConfig
	Kafka       KafkaConfig
}

type AppConfig struct {
	Env             string        `envconfig:"APP_ENV" default:"dev"`
	ListenAddr      string        `envconfig:"API_ADDR" default:":5000"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	CORSOrigins     []string      `envconfig:"API_CORS_ORIGINS" default:"*"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

// TwitterConfig holds the four OAuth credentials for the search API.
// The access token pair is optional; without it the client falls back to
// application-only auth.
type TwitterConfig struct {
	BaseURL           string `envconfig:"TWITTER_API_URL" default:"https://api.twitter.com" validate:"url"`
	ConsumerKey       string `envconfig:"TWITTER_CONSUMER_KEY" required:"true" validate:"required"`
	ConsumerSecret    string `envconfig:"TWITTER_CONSUMER_SECRET" required:"true" validate:"required"`
	AccessTokenKey    string `envconfig:"TWITTER_ACCESS_TOKEN_KEY"`
	AccessTokenSecret string `envconfig:"TWITTER_ACCESS_TOKEN_SECRET" validate:"required_with=AccessTokenKey"`
}

// UserContext reports whether both access token values are set.
func (c TwitterConfig) UserContext() bool {
	return c.AccessTokenKey != "" && c.AccessTokenSecret != ""
}

type SearchConfig struct {
	Count     int           `envconfig:"SEARCH_COUNT" default:"100" validate:"min=1,max=100"`
	TweetMode string        `envconfig:"SEARCH_TWEET_MODE" default:"extended" validate:"oneof=compat extended"`
	Timeout   time.Duration `envconfig:"SEARCH_TIMEOUT" default:"10s" validate:"gt=0"`
}

type SentimentConfig struct {
	Backend   string `envconfig:"SENTIMENT_BACKEND" default:"vader" validate:"oneof=vader huggingface openai"`
	CleanText bool   `envconfig:"SENTIMENT_CLEAN_TEXT" default:"false"`
	Workers   int    `envconfig:"SENTIMENT_WORKERS" default:"1" validate:"min=1,max=32"`
	// CacheTTL only matters when Valkey is configured.
	CacheTTL time.Duration `envconfig:"SENTIMENT_CACHE_TTL" default:"24h"`
}

type HuggingFaceConfig struct {
	SentimentEndpoint string        `envconfig:"HF_SENTIMENT_ENDPOINT" default:"https://spacesedan-sentiment-analyzer.hf.space/analyze_batch"`
	HealthEndpoint    string        `envconfig:"HF_HEALTH_ENDPOINT" default:"https://spacesedan-sentiment-analyzer.hf.space/health"`
	Timeout           time.Duration `envconfig:"HF_TIMEOUT" default:"10s"`
}

type OpenAIConfig struct {
	APIKey  string `envconfig:"OPENAI_API_KEY"`
	Model   string `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	BaseURL string `envconfig:"OPENAI_BASE_URL"`
}

type ValkeyConfig struct {
	InitAddress string `envconfig:"VALKEY_INIT_ADDRESS"`
	Password    string `envconfig:"VALKEY_PASSWORD"`
	TLS         bool   `envconfig:"VALKEY_TLS" default:"false"`
}

func (c ValkeyConfig) Enabled() bool { return c.InitAddress != "" }

type KafkaConfig struct {
	Broker        string `envconfig:"KAFKA_BROKER"`
	AnalysisTopic string `envconfig:"KAFKA_ANALYSIS_TOPIC" default:"analysis-results"`
}

func (c KafkaConfig) Enabled() bool { return c.Broker != "" }

// Load reads the environment into a Config and validates it. Call LoadEnv
// first if a .env file should be merged in.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("[Config] failed to process env config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("[Config] invalid configuration: %w", err)
	}
	if c.Sentiment.Backend == SentimentBackendOpenAI && c.OpenAI.APIKey == "" {
		return fmt.Errorf("[Config] OPENAI_API_KEY is required for the %q sentiment backend", SentimentBackendOpenAI)
	}
	return nil
}
