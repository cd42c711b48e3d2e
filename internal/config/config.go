package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

var validate = validator.New()

type ServerConfig struct {
	Port string `toml:"port" yaml:"port" validate:"required,numeric"`
}

type LogConfig struct {
	Level  string `toml:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Pretty bool   `toml:"pretty" yaml:"pretty"`
}

type ParserConfig struct {
	MaxRecords   int    `toml:"max_records" yaml:"max_records" validate:"gte=0"`
	DateStrategy string `toml:"date_strategy" yaml:"date_strategy" validate:"omitempty,oneof=sequential event"`
}

type MatchesConfig struct {
	Delimiter    string   `toml:"delimiter" yaml:"delimiter"`
	NameAliases  []string `toml:"name_aliases" yaml:"name_aliases" validate:"dive,required"`
	PreviewLimit int      `toml:"preview_limit" yaml:"preview_limit" validate:"gte=0"`
}

type MemgraphConfig struct {
	URI      string `toml:"uri" yaml:"uri" validate:"omitempty,uri"`
	User     string `toml:"user" yaml:"user"`
	Password string `toml:"password" yaml:"password"`
}

type StoreConfig struct {
	Path     string `toml:"path" yaml:"path"`
	InMemory bool   `toml:"in_memory" yaml:"in_memory"`
}

type LLMConfig struct {
	Provider string `toml:"provider" yaml:"provider" validate:"omitempty,oneof=openai gemini claude ollama"`
	Model    string `toml:"model" yaml:"model"`
	APIKey   string `toml:"api_key" yaml:"api_key"`
	BaseURL  string `toml:"base_url" yaml:"base_url" validate:"omitempty,url"`

	// MaxTokens caps each note or summary. Zero keeps the client default.
	MaxTokens   int     `toml:"max_tokens" yaml:"max_tokens" validate:"gte=0"`
	Temperature float32 `toml:"temperature" yaml:"temperature" validate:"gte=0,lte=2"`
}

type PromptsConfig struct {
	ConnectionNote string `toml:"connection_note" yaml:"connection_note"`
	ClusterSummary string `toml:"cluster_summary" yaml:"cluster_summary"`
}

type ClusteringConfig struct {
	Algorithm     string `toml:"algorithm" yaml:"algorithm" validate:"omitempty,oneof=components lpa"`
	MaxIterations int    `toml:"max_iterations" yaml:"max_iterations" validate:"gte=0"`
}

type Config struct {
	Server     ServerConfig     `toml:"server" yaml:"server"`
	Log        LogConfig        `toml:"log" yaml:"log"`
	Parser     ParserConfig     `toml:"parser" yaml:"parser"`
	Matches    MatchesConfig    `toml:"matches" yaml:"matches"`
	Memgraph   MemgraphConfig   `toml:"memgraph" yaml:"memgraph"`
	Store      StoreConfig      `toml:"store" yaml:"store"`
	LLM        LLMConfig        `toml:"llm" yaml:"llm"`
	Prompts    PromptsConfig    `toml:"prompts" yaml:"prompts"`
	Clustering ClusteringConfig `toml:"clustering" yaml:"clustering"`
}

// Default returns the configuration used when no file is present: an
// in-memory session store, no graph database and no LLM.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		Log:    LogConfig{Level: "info"},
		Parser: ParserConfig{DateStrategy: "sequential"},
		Matches: MatchesConfig{
			Delimiter:    ",",
			NameAliases:  []string{"name", "match name", "display name"},
			PreviewLimit: 10,
		},
		Store:      StoreConfig{InMemory: true},
		Clustering: ClusteringConfig{Algorithm: "lpa", MaxIterations: 20},
	}
}

// Load reads a TOML or YAML file (chosen by extension) over the defaults.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	}

	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to Default when it
// does not. Parse errors are still returned.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// ApplyEnv overrides file values with environment variables when set.
func (c *Config) ApplyEnv() {
	override := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}

	override("PORT", &c.Server.Port)
	override("LOG_LEVEL", &c.Log.Level)
	override("MEMGRAPH_URI", &c.Memgraph.URI)
	override("MEMGRAPH_USER", &c.Memgraph.User)
	override("MEMGRAPH_PASSWORD", &c.Memgraph.Password)
	override("LLM_PROVIDER", &c.LLM.Provider)
	override("LLM_MODEL", &c.LLM.Model)
	override("LLM_API_KEY", &c.LLM.APIKey)
	override("LLM_BASE_URL", &c.LLM.BaseURL)
	override("LINEAGE_DATE_STRATEGY", &c.Parser.DateStrategy)

	if v := os.Getenv("LINEAGE_STORE_PATH"); v != "" {
		c.Store.Path = v
		c.Store.InMemory = false
	}
	if v := os.Getenv("LINEAGE_MAX_RECORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Parser.MaxRecords = n
		}
	}
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("%w: store.path is required unless store.in_memory is set", ErrInvalidConfig)
	}
	return nil
}
