package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchErrorClassification(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := NewFetchError(ReasonNetwork, "failed to load popular movies", cause)
	wrapped := fmt.Errorf("view: %w", err)

	assert.True(t, IsFetchError(wrapped))
	assert.Equal(t, ReasonNetwork, ReasonOf(wrapped))
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "FETCH_FAILED: failed to load popular movies [network] (caused by: connection refused)", err.Error())
}

func TestNonFetchErrors(t *testing.T) {
	err := NewAPIKeyMissingError("TMDB")

	assert.False(t, IsFetchError(err))
	assert.Equal(t, "", ReasonOf(err))
	assert.True(t, Is(err, ErrorTypeAPIKeyMissing))
	assert.False(t, IsFetchError(stderrors.New("plain")))
	assert.Equal(t, "INVALID_ID: Invalid ID format: abc", NewInvalidIDError("abc").Error())
}
