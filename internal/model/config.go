package model

import "time"

// Config is the complete application configuration
type Config struct {
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Chunking    ChunkingConfig    `yaml:"chunking" mapstructure:"chunking"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// LLMConfig configures the model client
type LLMConfig struct {
	// Provider name: "openrouter", "openai", "ollama"
	Provider string `yaml:"provider" mapstructure:"provider"`

	// Model name (provider-specific)
	Model string `yaml:"model" mapstructure:"model"`

	// APIKey for the provider. May be empty: a missing key is a
	// recoverable condition, not a startup failure.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`

	// BaseURL overrides the provider endpoint
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Timeout per model call, in seconds
	Timeout int `yaml:"timeout" mapstructure:"timeout"`

	// MaxTokens for response generation
	MaxTokens int `yaml:"max_tokens" mapstructure:"max_tokens"`

	// Temperature for sampling
	Temperature float32 `yaml:"temperature" mapstructure:"temperature"`

	// Proxy settings
	HTTPProxy  string `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy string `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy    string `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// ChunkingConfig configures document splitting and routing
type ChunkingConfig struct {
	// MaxChunkSize bounds each chunk's character count
	MaxChunkSize int `yaml:"max_chunk_size" mapstructure:"max_chunk_size"`

	// RouteThreshold is the document length above which the chunked
	// path is taken instead of a single full-analysis pass
	RouteThreshold int `yaml:"route_threshold" mapstructure:"route_threshold"`

	// CallInterval spaces out sequential per-chunk model calls
	CallInterval time.Duration `yaml:"call_interval" mapstructure:"call_interval"`
}

// CacheConfig configures the analysis result cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig configures batch processing
type ConcurrencyConfig struct {
	// Workers is the number of documents analyzed in parallel in
	// batch mode. Chunks within one document are always sequential.
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// OutputConfig configures rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		LLM: LLMConfig{
			Provider:    "openrouter",
			Model:       "",
			Timeout:     60,
			MaxTokens:   10000,
			Temperature: 0.3,
		},
		Chunking: ChunkingConfig{
			MaxChunkSize:   5000,
			RouteThreshold: 8000,
			CallInterval:   500 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}
