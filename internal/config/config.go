// Package config loads borno settings from an optional YAML file and the
// environment.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	DB      DBConfig      `yaml:"db"`
	History HistoryConfig `yaml:"history"`
	Enrich  EnrichConfig  `yaml:"enrich"`
	Speech  SpeechConfig  `yaml:"speech"`
	Log     LogConfig     `yaml:"log"`
}

// DBConfig locates the SQLite file. An empty path resolves to
// ~/.borno/borno.db.
type DBConfig struct {
	Path string `yaml:"path" env:"BORNO_DB"`
}

// HistoryConfig bounds the recent-search history.
type HistoryConfig struct {
	MaxRecords int `yaml:"max_records" env:"BORNO_HISTORY_MAX" env-default:"10"`
}

// EnrichConfig selects and configures the generation backend.
type EnrichConfig struct {
	Provider  string        `yaml:"provider"   env:"BORNO_ENRICH_PROVIDER"   env-default:"none"`
	APIKey    string        `yaml:"api_key"    env:"BORNO_ENRICH_API_KEY"`
	Model     string        `yaml:"model"      env:"BORNO_ENRICH_MODEL"`
	BaseURL   string        `yaml:"base_url"   env:"BORNO_ENRICH_BASE_URL"`
	Timeout   time.Duration `yaml:"timeout"    env:"BORNO_ENRICH_TIMEOUT"    env-default:"15s"`
	MaxTokens int           `yaml:"max_tokens" env:"BORNO_ENRICH_MAX_TOKENS" env-default:"2048"`
}

// SpeechConfig names external commands for speech input and output. Empty
// commands mean the capability is unavailable.
type SpeechConfig struct {
	STTCommand string `yaml:"stt_command" env:"BORNO_STT_COMMAND"`
	TTSCommand string `yaml:"tts_command" env:"BORNO_TTS_COMMAND"`
	InputLang  string `yaml:"input_lang"  env:"BORNO_STT_LANG"    env-default:"bn-BD"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"BORNO_LOG_LEVEL"  env-default:"warn"`
	Format string `yaml:"format" env:"BORNO_LOG_FORMAT" env-default:"console"`
}

// Providers are the accepted values of EnrichConfig.Provider.
var Providers = map[string]bool{
	"none":      true,
	"anthropic": true,
	"gemini":    true,
}
