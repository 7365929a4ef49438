// Package detail models the movie detail overlay as an explicit state machine:
//
//	Idle -> Loading -> Shown
//	                -> Error -> (Retry) Loading
//
// Closing a shown or failed overlay happens in the browser; CanDismiss tells the
// renderer whether to offer the close controls.
package detail

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/SAACyberV99/VibeFlix/internal/models"
)

type State int

const (
	Idle State = iota
	Loading
	Shown
	Error
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Shown:
		return "shown"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var ErrInvalidTransition = stderrors.New("invalid overlay transition")

// Fetcher loads a single movie's extended record.
type Fetcher interface {
	GetDetail(ctx context.Context, id int) (*models.MovieDetails, error)
}

// Overlay is a value; transitions return the next overlay and leave the receiver untouched.
type Overlay struct {
	State   State
	MovieID int
	Movie   *models.MovieDetails
	Err     error
}

func transitionError(from State, action string) error {
	return fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, from)
}

// Open starts loading movie id. Only an idle overlay can be opened.
func (o Overlay) Open(id int) (Overlay, error) {
	if o.State != Idle {
		return o, transitionError(o.State, "open")
	}
	return Overlay{State: Loading, MovieID: id}, nil
}

// Resolve shows the fetched movie.
func (o Overlay) Resolve(movie *models.MovieDetails) (Overlay, error) {
	if o.State != Loading {
		return o, transitionError(o.State, "resolve")
	}
	return Overlay{State: Shown, MovieID: o.MovieID, Movie: movie}, nil
}

// Fail records a failed fetch.
func (o Overlay) Fail(err error) (Overlay, error) {
	if o.State != Loading {
		return o, transitionError(o.State, "fail")
	}
	return Overlay{State: Error, MovieID: o.MovieID, Err: err}, nil
}

// Retry re-enters Loading for the same movie.
func (o Overlay) Retry() (Overlay, error) {
	if o.State != Error {
		return o, transitionError(o.State, "retry")
	}
	return Overlay{State: Loading, MovieID: o.MovieID}, nil
}

// CanDismiss reports whether the close controls are offered.
func (o Overlay) CanDismiss() bool {
	return o.State == Shown || o.State == Error
}

// Load settles a Loading overlay by calling f. The result is Shown or Error.
func (o Overlay) Load(ctx context.Context, f Fetcher) (Overlay, error) {
	if o.State != Loading {
		return o, transitionError(o.State, "load")
	}
	movie, err := f.GetDetail(ctx, o.MovieID)
	if err != nil {
		return o.Fail(err)
	}
	return o.Resolve(movie)
}

// Show is the common path: open id and load it.
func Show(ctx context.Context, f Fetcher, id int) Overlay {
	o, _ := Overlay{}.Open(id)
	o, _ = o.Load(ctx, f)
	return o
}

// ShowAgain is the retry path: the failed overlay for id re-enters Loading and loads again.
func ShowAgain(ctx context.Context, f Fetcher, id int) Overlay {
	o, _ := Overlay{State: Error, MovieID: id}.Retry()
	o, _ = o.Load(ctx, f)
	return o
}
