package types

import "errors"

// Config holds backend parameters for Backend.Attach.
type Config struct {
	// DataDir is the directory holding the database file. Created when
	// missing; empty means the current directory.
	DataDir string `json:"data_dir" yaml:"data_dir"`

	// LogLevel selects the slog level: debug, info, warn, or error.
	// Empty means info.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Config validation errors.
var ErrLogLevelUnknown = errors.New("unknown log level")

// knownLogLevels lists the levels that Validate accepts.
var knownLogLevels = map[string]bool{
	"":      true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the Config is well-formed. It returns a sentinel
// error from this package on failure.
func (c Config) Validate() error {
	if !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	return nil
}
