package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"cutter/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscription(); err != nil {
		return err
	}
	if err := c.validateEncoding(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateTranscription() error {
	if !strings.ContainsFunc(c.Transcription.Keyword, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) {
		return fmt.Errorf("transcription.keyword %q must contain at least one letter or digit", c.Transcription.Keyword)
	}
	if lang := c.Transcription.Language; lang != "" && language.ToISO2(lang) == "" {
		return fmt.Errorf("transcription.language %q is not a recognized language code", lang)
	}
	switch c.Transcription.VADMethod {
	case vadMethodSilero:
	case vadMethodPyannote:
		if c.Transcription.HFToken == "" {
			return errors.New("transcription.hf_token must be set when transcription.vad_method is pyannote (or set HF_TOKEN)")
		}
	default:
		return fmt.Errorf("transcription.vad_method must be %q or %q, got %q", vadMethodSilero, vadMethodPyannote, c.Transcription.VADMethod)
	}
	return nil
}

func (c *Config) validateEncoding() error {
	if c.Encoding.StreamCopy {
		return nil
	}
	if c.Encoding.VideoCodec == "" {
		return errors.New("encoding.video_codec must be set unless encoding.stream_copy is true")
	}
	if c.Encoding.AudioCodec == "" {
		return errors.New("encoding.audio_codec must be set unless encoding.stream_copy is true")
	}
	if c.Encoding.CRF < 0 || c.Encoding.CRF > maxCRF {
		return fmt.Errorf("encoding.crf must be between 0 and %d", maxCRF)
	}
	return nil
}

func (c *Config) validateCache() error {
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Path) == "" {
		return errors.New("cache.path must be set when cache.enabled is true")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case logFormatConsole, logFormatJSON:
	default:
		return fmt.Errorf("logging.format must be %q or %q, got %q", logFormatConsole, logFormatJSON, c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
