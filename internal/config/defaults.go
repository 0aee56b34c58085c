package config

const (
	defaultSkipInput  = " "
	defaultBackInput  = "b"
	defaultMoreInput  = ""
	defaultShowChars  = 500
	defaultCacheDir   = "~/.cache/tagmark"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
	defaultIDColumn   = "id"
	defaultTextColumn = "text"
	defaultLabelCol   = "label"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Dataset: Dataset{
			IDColumn:    defaultIDColumn,
			TextColumn:  defaultTextColumn,
			LabelColumn: defaultLabelCol,
		},
		Controls: Controls{
			Skip: defaultSkipInput,
			Back: defaultBackInput,
			More: defaultMoreInput,
		},
		Display: Display{
			ShowChars: defaultShowChars,
		},
		Cache: Cache{
			Dir: defaultCacheDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
