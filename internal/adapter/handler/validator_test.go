package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestValidator(t *testing.T) {
	v := NewRequestValidator()

	assert.NoError(t, v.Validate(&dataProductRequest{ProductCode: "p", Parameters: map[string]any{}}))

	err := v.Validate(&dataProductRequest{})
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, map[string]string{
		"productCode": "productCode is required",
		"parameters":  "parameters is required",
	}, vErr.Errors)
	assert.Equal(t, "validation failed: parameters: parameters is required, productCode: productCode is required", vErr.Error())
}
