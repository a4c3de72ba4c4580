package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"email-rag/internal/models"
)

type DatabaseConfig struct {
	SupabaseURL string `yaml:"supabase_url"`
	SupabaseKey string `yaml:"supabase_key"`
	Debug       bool   `yaml:"debug"`
}

type LLMConfig struct {
	Provider string `yaml:"provider"` // "openai" or "ollama"
	BaseURL  string `yaml:"base_url"`
	Key      string `yaml:"key"`
	Model    string `yaml:"model"`
}

type RAGConfig struct {
	ChunkSize      int     `yaml:"chunk_size"`
	MatchThreshold float64 `yaml:"match_threshold"`
	MatchCount     int     `yaml:"match_count"`
	PromptTemplate string  `yaml:"prompt_template"`
	// Store selects the vector store backend: "supabase" or "chromem".
	Store     string `yaml:"store"`
	StorePath string `yaml:"store_path"`
}

type ServerConfig struct {
	Addr    string `yaml:"addr"`
	GinMode string `yaml:"gin_mode"`
}

type Config struct {
	Database DatabaseConfig `yaml:"database"`
	EmbedLLM LLMConfig      `yaml:"embed_llm"`
	ChatLLM  LLMConfig      `yaml:"chat_llm"`
	RAG      RAGConfig      `yaml:"rag"`
	Server   ServerConfig   `yaml:"server"`
}

// LoadConfig reads a yaml config file and applies env overrides for secrets.
// A .env file next to the binary is honored when present.
func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		cfg.Database.SupabaseURL = v
	}
	if v := os.Getenv("SUPABASE_KEY"); v != "" {
		cfg.Database.SupabaseKey = v
	}
	if v := os.Getenv("EMBED_LLM_KEY"); v != "" {
		cfg.EmbedLLM.Key = v
	}
	if v := os.Getenv("CHAT_LLM_KEY"); v != "" {
		cfg.ChatLLM.Key = v
	}
}

func applyDefaults(cfg *Config) {
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = models.DefaultChunkSize
	}
	if cfg.RAG.MatchCount == 0 {
		cfg.RAG.MatchCount = models.DefaultMatchCount
	}
	if cfg.RAG.PromptTemplate == "" {
		cfg.RAG.PromptTemplate = models.AnswerPromptTemplate
	}
	if cfg.RAG.Store == "" {
		cfg.RAG.Store = "supabase"
	}
	if cfg.RAG.StorePath == "" {
		cfg.RAG.StorePath = "./chromemdb"
	}
	if cfg.EmbedLLM.Provider == "" {
		cfg.EmbedLLM.Provider = "openai"
	}
	if cfg.ChatLLM.Provider == "" {
		cfg.ChatLLM.Provider = "openai"
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
}
