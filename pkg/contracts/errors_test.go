package contracts

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Formatting(t *testing.T) {
	local := NewValidationError("seed must be %d bytes", 32)
	assert.Equal(t, 0, local.Status)
	assert.Equal(t, CodeValidation, local.Code)
	assert.Equal(t, "local", local.RequestID)
	assert.Equal(t, "elydora: VALIDATION_ERROR: seed must be 32 bytes", local.Error())

	remote := &Error{Status: 403, Code: CodeForbidden, Message: "not yours", RequestID: "r42"}
	assert.Equal(t, "elydora: FORBIDDEN (http 403, request r42): not yours", remote.Error())
}

func TestAsError_Wrapped(t *testing.T) {
	inner := &Error{Status: 404, Code: CodeNotFound, Message: "gone", RequestID: "r1"}
	wrapped := fmt.Errorf("lookup agent: %w", inner)

	got, ok := AsError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, inner, got)
	assert.True(t, IsCode(wrapped, CodeNotFound))
	assert.False(t, IsCode(wrapped, CodeForbidden))

	_, ok = AsError(fmt.Errorf("plain"))
	assert.False(t, ok)
}
