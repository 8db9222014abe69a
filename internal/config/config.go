package config

import "os"

type Config struct {
	ListenAddr       string
	StoreBackend     string
	DBPath           string
	StoreFilePath    string
	TaxonomyFile     string
	AssistantBackend string
	ClaudeAPIKey     string
	ClaudeModel      string
	OllamaHost       string
	OllamaModel      string
	LogLevel         string
	LogFile          string
}

func Load() *Config {
	return &Config{
		ListenAddr:       getEnv("LISTEN_ADDR", ":8080"),
		StoreBackend:     getEnv("STORE_BACKEND", "sqlite"),
		DBPath:           getEnv("DB_PATH", "/data/cartwise.db"),
		StoreFilePath:    getEnv("STORE_FILE_PATH", "/data/store"),
		TaxonomyFile:     getEnv("TAXONOMY_FILE", ""),
		AssistantBackend: getEnv("ASSISTANT_BACKEND", "none"),
		ClaudeAPIKey:     getEnv("CLAUDE_API_KEY", ""),
		ClaudeModel:      getEnv("CLAUDE_MODEL", "claude-3-5-haiku-latest"),
		OllamaHost:       getEnv("OLLAMA_HOST", "http://localhost:11434"),
		OllamaModel:      getEnv("OLLAMA_MODEL", "llama3.2"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFile:          getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}
