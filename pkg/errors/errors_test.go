package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTypes(t *testing.T) {
	assert.True(t, IsValidation(NewValidation("bad input")))
	assert.True(t, IsNotFound(NewNotFound("missing")))
	assert.True(t, IsUnavailable(NewUnavailable("gone", nil)))
	assert.True(t, IsInternal(NewInternal("broken", nil)))

	assert.False(t, IsValidation(NewInternal("broken", nil)))
	assert.False(t, IsValidation(fmt.Errorf("plain")))
	assert.False(t, IsValidation(nil))
}

func TestWrap_PreservesType(t *testing.T) {
	err := Wrap(NewValidation("bad input"), "while parsing")

	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "while parsing")
	assert.Contains(t, err.Error(), "bad input")
}

func TestWrap_PlainErrorBecomesInternal(t *testing.T) {
	err := Wrap(fmt.Errorf("disk on fire"), "loading dataset")

	assert.True(t, IsInternal(err))
	assert.Contains(t, err.Error(), "disk on fire")
}

func TestWrap_Nil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "context"))
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := NewInternal("wrapper", cause)

	var appErr *AppError
	assert.ErrorAs(t, err, &appErr)
	assert.ErrorIs(t, err, cause)
}
