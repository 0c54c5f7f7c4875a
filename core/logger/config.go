package logger

// Config holds configuration for the structured logger.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `mapstructure:"level" default:"info"`
	// Format is the log encoding, either "console" or "json".
	Format string `mapstructure:"format" default:"console"`
}
