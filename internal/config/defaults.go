package config

const (
	defaultConfigPath    = "~/.config/cutter/config.toml"
	defaultKeyword       = "cut"
	defaultWhisperXModel = "base.en"
	defaultLanguage      = "en"
	defaultVADMethod     = "silero"
	defaultUVXBinary     = "uvx"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultVideoCodec    = "libx264"
	defaultAudioCodec    = "aac"
	defaultPreset        = "medium"
	defaultCRF           = 20
	defaultCacheEnabled  = true
	defaultCacheFileName = "transcripts.db"
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	maxCRF               = 51
	vadMethodSilero      = "silero"
	vadMethodPyannote    = "pyannote"
	logFormatConsole     = "console"
	logFormatJSON        = "json"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			CacheDir: defaultCacheDir(),
		},
		Transcription: Transcription{
			Keyword:       defaultKeyword,
			WhisperXModel: defaultWhisperXModel,
			Language:      defaultLanguage,
			VADMethod:     defaultVADMethod,
			UVXBinary:     defaultUVXBinary,
		},
		Encoding: Encoding{
			FFmpegBinary:  defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			VideoCodec:    defaultVideoCodec,
			AudioCodec:    defaultAudioCodec,
			Preset:        defaultPreset,
			CRF:           defaultCRF,
		},
		Cache: Cache{
			Enabled: defaultCacheEnabled,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
