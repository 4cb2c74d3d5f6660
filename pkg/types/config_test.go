package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		assert.NoError(t, Config{LogLevel: level}.Validate(), "level %q", level)
	}

	err := Config{LogLevel: "verbose"}.Validate()
	assert.ErrorIs(t, err, ErrLogLevelUnknown)
}
