package view

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SAACyberV99/VibeFlix/internal/browse"
	"github.com/SAACyberV99/VibeFlix/internal/catalog"
	"github.com/SAACyberV99/VibeFlix/internal/errors"
	"github.com/SAACyberV99/VibeFlix/internal/models"
	"github.com/SAACyberV99/VibeFlix/pkg/logger"
)

// fakeCatalog blocks on the "slow" query until its context is cancelled,
// and on the "gated" query until gate is closed.
type fakeCatalog struct {
	mu        sync.Mutex
	genresErr error
	popular   []models.Movie
	searches  []string
	started   chan string
	gate      chan struct{}
}

func (f *fakeCatalog) ListGenres(ctx context.Context) (catalog.GenreSet, error) {
	if f.genresErr != nil {
		return catalog.GenreSet{}, f.genresErr
	}
	return catalog.NewGenreSet([]models.Genre{{ID: 28, Name: "Action"}}), nil
}

func (f *fakeCatalog) ListPopular(ctx context.Context) ([]models.Movie, error) {
	return f.popular, nil
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]models.Movie, error) {
	f.mu.Lock()
	f.searches = append(f.searches, query)
	f.mu.Unlock()
	if f.started != nil {
		f.started <- query
	}
	if query == "slow" {
		<-ctx.Done()
		return nil, errors.NewFetchError(errors.ReasonCanceled, "cancelled", ctx.Err())
	}
	if query == "gated" {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return nil, errors.NewFetchError(errors.ReasonCanceled, "cancelled", ctx.Err())
		}
	}
	if query == "broken" {
		return nil, errors.NewFetchError(errors.ReasonStatus, "status 500", nil)
	}
	return []models.Movie{{ID: 9, Title: query}}, nil
}

func (f *fakeCatalog) GetDetail(ctx context.Context, id int) (*models.MovieDetails, error) {
	return nil, stderrors.New("not used")
}

func newTestSession(svc catalog.Service) *Session {
	return NewSession("test", svc, browse.NewEngine("en"), logger.Discard())
}

func TestDispatchStartLoadsGenresAndPopular(t *testing.T) {
	svc := &fakeCatalog{popular: []models.Movie{{ID: 1, Title: "Popular"}}}
	s := newTestSession(svc)

	state := s.Dispatch(context.Background(), Started{})

	assert.Equal(t, Ready, state.Status)
	assert.Equal(t, "Popular", state.Results[0].Title)
	assert.Equal(t, 1, state.Genres.Len())
}

func TestDispatchSwallowsGenreFailure(t *testing.T) {
	svc := &fakeCatalog{genresErr: stderrors.New("down"), popular: []models.Movie{{ID: 1}}}
	s := newTestSession(svc)

	state := s.Dispatch(context.Background(), Started{})

	assert.Equal(t, Ready, state.Status)
	assert.Equal(t, 0, state.Genres.Len())
	assert.Len(t, state.Results, 1)
}

func TestDispatchSearchFailure(t *testing.T) {
	s := newTestSession(&fakeCatalog{})

	state := s.Dispatch(context.Background(), SearchSubmitted{Query: "broken"})

	assert.Equal(t, Failed, state.Status)
	assert.Equal(t, MsgSearchFailed, state.Error)
}

func TestNewerSearchCancelsOlder(t *testing.T) {
	svc := &fakeCatalog{started: make(chan string, 2)}
	s := newTestSession(svc)

	slowDone := make(chan State, 1)
	go func() {
		slowDone <- s.Dispatch(context.Background(), SearchSubmitted{Query: "slow"})
	}()
	require.Equal(t, "slow", <-svc.started)

	fast := s.Dispatch(context.Background(), SearchSubmitted{Query: "fast"})
	<-svc.started

	var slow State
	select {
	case slow = <-slowDone:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded fetch was not cancelled")
	}

	assert.Equal(t, Ready, fast.Status)
	assert.Equal(t, "fast", fast.Results[0].Title)
	assert.Equal(t, uint64(2), slow.Generation, "older dispatch observes the newer generation")

	final := s.State()
	assert.Equal(t, Ready, final.Status)
	assert.Equal(t, "fast", final.Query)
	assert.Empty(t, final.Error)
}

func TestCloseCancelsInFlightFetch(t *testing.T) {
	svc := &fakeCatalog{started: make(chan string, 1)}
	s := newTestSession(svc)

	done := make(chan State, 1)
	go func() {
		done <- s.Dispatch(context.Background(), SearchSubmitted{Query: "slow"})
	}()
	<-svc.started
	s.Close()

	select {
	case st := <-done:
		assert.Equal(t, Failed, st.Status)
	case <-time.After(2 * time.Second):
		t.Fatal("close did not cancel the fetch")
	}
}

func TestSortChangeDoesNotTouchNetwork(t *testing.T) {
	svc := &fakeCatalog{}
	s := newTestSession(svc)

	state := s.Dispatch(context.Background(), SortChanged{Key: browse.SortTitle})

	assert.Equal(t, browse.SortTitle, state.Sort)
	assert.Empty(t, svc.searches)
}

func TestSortDuringSearchWaitsForResults(t *testing.T) {
	svc := &fakeCatalog{started: make(chan string, 1), gate: make(chan struct{})}
	s := newTestSession(svc)

	go s.Dispatch(context.Background(), SearchSubmitted{Query: "gated"})
	<-svc.started

	sorted := make(chan State, 1)
	go func() {
		sorted <- s.Dispatch(context.Background(), SortChanged{Key: browse.SortTitle})
	}()

	select {
	case <-sorted:
		t.Fatal("sort returned while the search was loading")
	case <-time.After(50 * time.Millisecond):
	}
	close(svc.gate)

	select {
	case state := <-sorted:
		assert.Equal(t, Ready, state.Status)
		assert.Equal(t, browse.SortTitle, state.Sort)
		require.Len(t, state.Results, 1)
		assert.Equal(t, "gated", state.Results[0].Title)
	case <-time.After(2 * time.Second):
		t.Fatal("sort never returned")
	}
}

func TestRequestGoingAwayKeepsFetch(t *testing.T) {
	svc := &fakeCatalog{started: make(chan string, 1), gate: make(chan struct{})}
	s := newTestSession(svc)

	ctx, cancel := context.WithCancel(context.Background())
	returned := make(chan State, 1)
	go func() {
		returned <- s.Dispatch(ctx, SearchSubmitted{Query: "gated"})
	}()
	<-svc.started
	cancel()

	assert.Equal(t, Loading, (<-returned).Status)

	close(svc.gate)
	state := s.Settled(context.Background())
	assert.Equal(t, Ready, state.Status)
	assert.Empty(t, state.Error)
	assert.Equal(t, "gated", state.Results[0].Title)
}

func TestSettledWithoutFetch(t *testing.T) {
	s := newTestSession(&fakeCatalog{})
	assert.Equal(t, Initial(), s.Settled(context.Background()))
}
