package config

const (
	defaultLogDir           = "~/.local/share/retune/logs"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultWorkers          = 4
	defaultTimeoutSeconds   = 600
	defaultSourceSampleRate = 44100
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Conversion: Conversion{
			Workers:             defaultWorkers,
			TimeoutSeconds:      defaultTimeoutSeconds,
			FormantPreservation: true,
			SourceSampleRate:    defaultSourceSampleRate,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
