package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "cutter"

// envOverrides lists the settings that may be supplied through CUTTER_*
// variables. Field names map to the variable name word by word, so
// CutKeyword is read from CUTTER_CUT_KEYWORD and nothing else.
type envOverrides struct {
	CutKeyword       string `split_words:"true"`
	WhisperxModel    string `split_words:"true"`
	WhisperxLanguage string `split_words:"true"`
	HfToken          string `split_words:"true"`
	FfmpegBinary     string `split_words:"true"`
	FfprobeBinary    string `split_words:"true"`
	CacheDir         string `split_words:"true"`
	LogLevel         string `split_words:"true"`
	LogFormat        string `split_words:"true"`
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("read environment overrides: %w", err)
	}
	// HF_TOKEN is the name the Hugging Face tooling itself reads.
	if strings.TrimSpace(env.HfToken) == "" {
		env.HfToken = os.Getenv("HF_TOKEN")
	}
	override(&c.Transcription.Keyword, env.CutKeyword)
	override(&c.Transcription.WhisperXModel, env.WhisperxModel)
	override(&c.Transcription.Language, env.WhisperxLanguage)
	override(&c.Transcription.HFToken, env.HfToken)
	override(&c.Encoding.FFmpegBinary, env.FfmpegBinary)
	override(&c.Encoding.FFprobeBinary, env.FfprobeBinary)
	override(&c.Paths.CacheDir, env.CacheDir)
	override(&c.Logging.Level, env.LogLevel)
	override(&c.Logging.Format, env.LogFormat)
	return nil
}

func override(target *string, value string) {
	if value = strings.TrimSpace(value); value != "" {
		*target = value
	}
}
