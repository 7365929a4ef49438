package detail

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAACyberV99/VibeFlix/internal/models"
)

type stubFetcher struct {
	calls []int
	fail  bool
}

func (s *stubFetcher) GetDetail(_ context.Context, id int) (*models.MovieDetails, error) {
	s.calls = append(s.calls, id)
	if s.fail {
		return nil, stderrors.New("boom")
	}
	return &models.MovieDetails{Movie: models.Movie{ID: id, Title: "Found"}}, nil
}

func TestShowSuccess(t *testing.T) {
	f := &stubFetcher{}
	o := Show(context.Background(), f, 42)

	assert.Equal(t, Shown, o.State)
	assert.Equal(t, "Found", o.Movie.Title)
	assert.True(t, o.CanDismiss())
}

func TestRetryRefetchesSameID(t *testing.T) {
	f := &stubFetcher{fail: true}
	o := Show(context.Background(), f, 7)
	require.Equal(t, Error, o.State)
	require.Error(t, o.Err)

	f.fail = false
	o, err := o.Retry()
	require.NoError(t, err)
	assert.Equal(t, Loading, o.State)
	assert.Equal(t, 7, o.MovieID)

	o, err = o.Load(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, Shown, o.State)
	assert.Equal(t, []int{7, 7}, f.calls)
}

func TestShowAgain(t *testing.T) {
	f := &stubFetcher{fail: true}
	o := ShowAgain(context.Background(), f, 7)
	assert.Equal(t, Error, o.State)
	assert.True(t, o.CanDismiss())

	f.fail = false
	o = ShowAgain(context.Background(), f, 7)
	assert.Equal(t, Shown, o.State)
	assert.Equal(t, []int{7, 7}, f.calls)
}

func TestInvalidTransitions(t *testing.T) {
	loading, err := Overlay{}.Open(1)
	require.NoError(t, err)

	assert.False(t, loading.CanDismiss(), "no dismissal while loading")

	_, err = loading.Open(2)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = loading.Retry()
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Overlay{}.Resolve(&models.MovieDetails{})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	same, err := Overlay{}.Load(context.Background(), &stubFetcher{})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, Idle, same.State)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "loading", Loading.String())
	assert.Equal(t, "state(9)", State(9).String())
}
