package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type filterRequest struct {
	Top string `validate:"required,oneof=10 30 all"`
}

type portConfig struct {
	Port int    `validate:"min=1,max=65535"`
	Host string `validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(filterRequest{Top: "all"}))
		assert.NoError(t, ValidateStruct(portConfig{Port: 8080, Host: "0.0.0.0"}))
	})

	t.Run("oneof", func(t *testing.T) {
		err := ValidateStruct(filterRequest{Top: "20"})

		var verr *Error
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Fields, 1)
		assert.Equal(t, "oneof", verr.Fields[0].Tag)
		assert.Contains(t, err.Error(), "must be one of [10 30 all]")
	})

	t.Run("collects every failed field", func(t *testing.T) {
		err := ValidateStruct(portConfig{Port: 0})

		var verr *Error
		require.True(t, errors.As(err, &verr))
		assert.Len(t, verr.Fields, 2)
		assert.Contains(t, err.Error(), "portConfig.Port must be at least 1")
		assert.Contains(t, err.Error(), "portConfig.Host is required")
	})
}

func TestValidatorSingleton(t *testing.T) {
	assert.Same(t, Validator(), Validator())
}
