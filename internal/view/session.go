package view

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/SAACyberV99/VibeFlix/internal/browse"
	"github.com/SAACyberV99/VibeFlix/internal/catalog"
	"github.com/SAACyberV99/VibeFlix/internal/errors"
	"github.com/SAACyberV99/VibeFlix/internal/models"
	"github.com/SAACyberV99/VibeFlix/pkg/logger"
)

// Session is one browser tab's view. All state changes go through Update under mu;
// fetches run in the background under the session's own context, so a request that
// goes away does not take the fetch with it.
type Session struct {
	ID string

	svc    catalog.Service
	engine *browse.Engine
	logger logger.Logger

	ctx  context.Context
	stop context.CancelFunc

	mu      sync.Mutex
	state   State
	cancel  context.CancelFunc
	settled chan struct{}
}

func NewSession(id string, svc catalog.Service, engine *browse.Engine, log logger.Logger) *Session {
	ctx, stop := context.WithCancel(context.Background())
	return &Session{
		ID:     id,
		svc:    svc,
		engine: engine,
		logger: log,
		ctx:    ctx,
		stop:   stop,
		state:  Initial(),
	}
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Engine is the filter/sort engine the session renders with.
func (s *Session) Engine() *browse.Engine {
	return s.engine
}

// Dispatch applies msg and returns the state once no fetch is in flight.
// A message that starts a fetch cancels the one still running for an older generation.
// The returned state may already belong to a newer generation.
func (s *Session) Dispatch(ctx context.Context, msg Msg) State {
	s.mu.Lock()
	next, fetch := Update(s.state, msg)
	s.state = next
	if fetch != nil {
		s.start(fetch)
	}
	s.mu.Unlock()

	return s.Settled(ctx)
}

// Settled waits until the current generation's fetch has settled and returns the state.
// When ctx is done first the state is returned as is, possibly still Loading.
func (s *Session) Settled(ctx context.Context) State {
	for {
		s.mu.Lock()
		state, settled := s.state, s.settled
		s.mu.Unlock()

		if state.Status != Loading || settled == nil {
			return state
		}
		select {
		case <-settled:
		case <-ctx.Done():
			return s.State()
		}
	}
}

// Close cancels any in-flight fetch. Fetches started afterwards fail at once.
func (s *Session) Close() {
	s.stop()
}

// start runs f in the background. s.mu must be held.
func (s *Session) start(f *Fetch) {
	if s.cancel != nil {
		s.cancel()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	settled := make(chan struct{})
	s.cancel, s.settled = cancel, settled

	go func() {
		defer close(settled)
		defer cancel()

		msgs := s.run(ctx, f)

		s.mu.Lock()
		defer s.mu.Unlock()
		for _, m := range msgs {
			s.state, _ = Update(s.state, m)
		}
	}()
}

func (s *Session) run(ctx context.Context, f *Fetch) []Msg {
	var (
		g      errgroup.Group
		genres Msg
		movies []models.Movie
	)

	if f.Genres {
		g.Go(func() error {
			set, err := s.svc.ListGenres(ctx)
			if err != nil {
				// Only names and filter choices are lost
				s.logger.Warnf("[View] session %s: genre list unavailable: %v", s.ID, err)
				set = catalog.GenreSet{}
			}
			genres = GenresLoaded{Set: set}
			return nil
		})
	}

	g.Go(func() error {
		var err error
		if f.Query == "" {
			movies, err = s.svc.ListPopular(ctx)
		} else {
			movies, err = s.svc.Search(ctx, f.Query)
		}
		return err
	})

	err := g.Wait()
	var results Msg = ResultsLoaded{Generation: f.Generation, Movies: movies}
	if err != nil {
		if errors.ReasonOf(err) == errors.ReasonCanceled {
			s.logger.Debugf("[View] session %s: fetch for generation %d canceled", s.ID, f.Generation)
		} else {
			s.logger.Errorf("[View] session %s: fetch for generation %d failed: %v", s.ID, f.Generation, err)
		}
		results = FetchFailed{Generation: f.Generation, Err: err}
	}

	var out []Msg
	if genres != nil {
		out = append(out, genres)
	}
	return append(out, results)
}
