package log

// Config declares a logger in configuration form.
type Config struct {
	// Level is one of debug, info, warn, error, fatal.
	Level string `json:"level"`
	// Format is "json" or "text".
	Format string `json:"format"`
}

// ApplyConfig builds a Logger from a declarative Config. Unset fields fall
// back to info/json.
func ApplyConfig(cfg *Config) (Logger, error) {
	level := InfoLevel
	if cfg != nil && cfg.Level != "" {
		l, err := ParseLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		level = l
	}
	var formatter Formatter = &JSONFormatter{}
	if cfg != nil && cfg.Format == "text" {
		formatter = &TextFormatter{}
	}
	return NewLogger(WithLevel(level), WithFormatter(formatter)), nil
}
