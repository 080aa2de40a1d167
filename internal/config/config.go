package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env        string
	Logger     LoggerConfig
	Server     ServerConfig
	DB         DBConfig
	Redis      RedisConfig
	Storage    StorageConfig
	Agent      AgentConfig
	Generation GenerationConfig
	LLM        LLMConfig
	Embedding  EmbeddingConfig
	Vector     VectorConfig
	Dedup      DedupConfig
}

type LoggerConfig struct {
	Env   string
	Level string
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int
}

type DBConfig struct {
	Driver   string
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Enabled  bool
	Address  string
	Password string
	DB       int
}

type StorageConfig struct {
	Backend            string
	Bucket             string
	LocalDir           string
	GCSCredentialsFile string
}

type AgentConfig struct {
	Interval            time.Duration
	MaxFiles            int
	MaxQuestionsPerFile int
	PacingDelay         time.Duration
	Concurrency         int
	LockTTL             time.Duration
}

type GenerationConfig struct {
	StrategyOrder     []string
	DistributionTotal int
	DistributionFloor int
	RescaleFloor      int
	ExcerptChars      int
	HeuristicMinLen   int
	HeuristicMaxLen   int
	Temperature       float64
	MaxTokens         int
	RequestTimeout    time.Duration
}

type LLMConfig struct {
	OpenAI ProviderConfig
	Gemini ProviderConfig
	Groq   ProviderConfig
	Ollama ProviderConfig
}

// ProviderConfig describes one generation provider. A provider without credentials
// (or, for Ollama, without a server URL) is disabled.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type EmbeddingConfig struct {
	Source      string
	OpenAIModel string
	OllamaModel string
	CacheTTL    time.Duration
}

type VectorConfig struct {
	QdrantURL    string
	QdrantAPIKey string
	Collection   string
	Timeout      time.Duration
}

type DedupConfig struct {
	ExistingLimit       int
	SimilarityThreshold float64
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "development")
	v.SetDefault("logger.level", "info")

	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.body_limit_mb", 50)

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "quiz")
	v.SetDefault("db.password", "quiz")
	v.SetDefault("db.name", "quiz")

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.address", "localhost:6379")

	v.SetDefault("storage.backend", "local")
	v.SetDefault("storage.bucket", "pdfs")
	v.SetDefault("storage.local_dir", "./data/pdfs")

	v.SetDefault("agent.interval", "10m")
	v.SetDefault("agent.max_files", 50)
	v.SetDefault("agent.max_questions_per_file", 48)
	v.SetDefault("agent.pacing_delay", "1500ms")
	v.SetDefault("agent.concurrency", 1)
	v.SetDefault("agent.lock_ttl", "5m")

	v.SetDefault("generation.strategy_order", []string{"openai", "gemini", "groq", "ollama"})
	v.SetDefault("generation.distribution_total", 36)
	v.SetDefault("generation.distribution_floor", 8)
	v.SetDefault("generation.rescale_floor", 4)
	v.SetDefault("generation.excerpt_chars", 16000)
	v.SetDefault("generation.heuristic_min_len", 40)
	v.SetDefault("generation.heuristic_max_len", 240)
	v.SetDefault("generation.temperature", 0.5)
	v.SetDefault("generation.max_tokens", 6000)
	v.SetDefault("generation.request_timeout", "120s")

	v.SetDefault("llm.openai.model", "gpt-4o-mini")
	v.SetDefault("llm.gemini.model", "gemini-1.5-flash")
	v.SetDefault("llm.groq.model", "llama-3.1-8b-instant")
	v.SetDefault("llm.groq.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.ollama.model", "llama3")

	v.SetDefault("embedding.openai_model", "text-embedding-3-small")
	v.SetDefault("embedding.ollama_model", "nomic-embed-text")
	v.SetDefault("embedding.cache_ttl", "24h")

	v.SetDefault("vector.collection", "istqb_questions")
	v.SetDefault("vector.timeout", "30s")

	v.SetDefault("dedup.existing_limit", 5000)
	v.SetDefault("dedup.similarity_threshold", 0.0)
}

// legacyEnv binds the environment names the upload app and agent used before.
var legacyEnv = map[string][]string{
	"llm.openai.api_key":           {"OPENAI_API_KEY", "VITE_OPENAI_API_KEY"},
	"llm.gemini.api_key":           {"GEMINI_API_KEY"},
	"llm.groq.api_key":             {"GROQ_API_KEY"},
	"llm.ollama.base_url":          {"LLM_SERVER", "OLLAMA_HOST"},
	"vector.qdrant_url":            {"QDRANT_URL"},
	"vector.qdrant_api_key":        {"QDRANT_API_KEY"},
	"storage.bucket":               {"AGENT_STORAGE_BUCKET"},
	"agent.max_files":              {"AGENT_MAX_FILES"},
	"agent.max_questions_per_file": {"AGENT_MAX_QUESTIONS_PER_FILE"},
	"db.dsn":                       {"DATABASE_URL"},
	"redis.address":                {"REDIS_ADDRESS"},
}

// LoadConfig reads config.yaml (optional) and the environment. Environment variables
// use the APP_ prefix with dots replaced by underscores, e.g. APP_DB_HOST.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../../config")
	v.AddConfigPath("../../")

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.BindEnv("agent_interval_ms", "AGENT_INTERVAL_MS"); err != nil {
		return nil, fmt.Errorf("failed to bind env for agent_interval_ms: %w", err)
	}
	for key, names := range legacyEnv {
		args := append([]string{key, "APP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, names...)
		if err := v.BindEnv(args...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)

	// AGENT_INTERVAL_MS is kept for compatibility with the old agent.
	if ms := v.GetInt64("agent_interval_ms"); ms > 0 {
		cfg.Agent.Interval = time.Duration(ms) * time.Millisecond
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	env := v.GetString("env")
	return &Config{
		Env: env,
		Logger: LoggerConfig{
			Env:   env,
			Level: v.GetString("logger.level"),
		},
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			BodyLimitMB:  v.GetInt("server.body_limit_mb"),
		},
		DB: DBConfig{
			Driver:   v.GetString("db.driver"),
			DSN:      v.GetString("db.dsn"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Storage: StorageConfig{
			Backend:            v.GetString("storage.backend"),
			Bucket:             v.GetString("storage.bucket"),
			LocalDir:           v.GetString("storage.local_dir"),
			GCSCredentialsFile: v.GetString("storage.gcs_credentials_file"),
		},
		Agent: AgentConfig{
			Interval:            v.GetDuration("agent.interval"),
			MaxFiles:            v.GetInt("agent.max_files"),
			MaxQuestionsPerFile: v.GetInt("agent.max_questions_per_file"),
			PacingDelay:         v.GetDuration("agent.pacing_delay"),
			Concurrency:         v.GetInt("agent.concurrency"),
			LockTTL:             v.GetDuration("agent.lock_ttl"),
		},
		Generation: GenerationConfig{
			StrategyOrder:     v.GetStringSlice("generation.strategy_order"),
			DistributionTotal: v.GetInt("generation.distribution_total"),
			DistributionFloor: v.GetInt("generation.distribution_floor"),
			RescaleFloor:      v.GetInt("generation.rescale_floor"),
			ExcerptChars:      v.GetInt("generation.excerpt_chars"),
			HeuristicMinLen:   v.GetInt("generation.heuristic_min_len"),
			HeuristicMaxLen:   v.GetInt("generation.heuristic_max_len"),
			Temperature:       v.GetFloat64("generation.temperature"),
			MaxTokens:         v.GetInt("generation.max_tokens"),
			RequestTimeout:    v.GetDuration("generation.request_timeout"),
		},
		LLM: LLMConfig{
			OpenAI: providerFromViper(v, "llm.openai"),
			Gemini: providerFromViper(v, "llm.gemini"),
			Groq:   providerFromViper(v, "llm.groq"),
			Ollama: providerFromViper(v, "llm.ollama"),
		},
		Embedding: EmbeddingConfig{
			Source:      v.GetString("embedding.source"),
			OpenAIModel: v.GetString("embedding.openai_model"),
			OllamaModel: v.GetString("embedding.ollama_model"),
			CacheTTL:    v.GetDuration("embedding.cache_ttl"),
		},
		Vector: VectorConfig{
			QdrantURL:    v.GetString("vector.qdrant_url"),
			QdrantAPIKey: v.GetString("vector.qdrant_api_key"),
			Collection:   v.GetString("vector.collection"),
			Timeout:      v.GetDuration("vector.timeout"),
		},
		Dedup: DedupConfig{
			ExistingLimit:       v.GetInt("dedup.existing_limit"),
			SimilarityThreshold: v.GetFloat64("dedup.similarity_threshold"),
		},
	}
}

func providerFromViper(v *viper.Viper, prefix string) ProviderConfig {
	return ProviderConfig{
		APIKey:  v.GetString(prefix + ".api_key"),
		Model:   v.GetString(prefix + ".model"),
		BaseURL: v.GetString(prefix + ".base_url"),
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Agent.MaxFiles <= 0:
		return fmt.Errorf("agent.max_files must be positive, got %d", c.Agent.MaxFiles)
	case c.Agent.MaxQuestionsPerFile <= 0:
		return fmt.Errorf("agent.max_questions_per_file must be positive, got %d", c.Agent.MaxQuestionsPerFile)
	case c.Agent.Interval <= 0:
		return fmt.Errorf("agent.interval must be positive")
	case c.Agent.Concurrency <= 0:
		return fmt.Errorf("agent.concurrency must be positive, got %d", c.Agent.Concurrency)
	case c.Generation.HeuristicMinLen >= c.Generation.HeuristicMaxLen:
		return fmt.Errorf("generation.heuristic_min_len must be below heuristic_max_len")
	case c.Dedup.ExistingLimit <= 0:
		return fmt.Errorf("dedup.existing_limit must be positive, got %d", c.Dedup.ExistingLimit)
	}
	switch c.DB.Driver {
	case "postgres", "oracle":
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	switch c.Storage.Backend {
	case "local", "gcs":
	default:
		return fmt.Errorf("unsupported storage.backend %q", c.Storage.Backend)
	}
	return nil
}

// GetDSN returns the connection string for the configured driver.
func (c *Config) GetDSN() string {
	if c.DB.DSN != "" {
		return c.DB.DSN
	}
	if c.DB.Driver == "oracle" {
		return fmt.Sprintf("oracle://%s:%s@%s:%d/%s", c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.DBName)
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.DBName)
}
