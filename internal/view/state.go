// Package view holds the browse page's state and the single function that advances it.
//
// State is a value: Update never mutates its input, and the visible grid is derived from
// (Results, Genre, Sort) alone. Network work is described by a Fetch returned from Update and
// executed by a Session; its results come back as messages tagged with the generation that
// asked for them.
package view

import (
	"strings"

	"github.com/SAACyberV99/VibeFlix/internal/browse"
	"github.com/SAACyberV99/VibeFlix/internal/catalog"
	"github.com/SAACyberV99/VibeFlix/internal/models"
)

type Status int

const (
	// Setup means the catalog credential is missing; nothing else runs.
	Setup Status = iota
	Loading
	Ready
	Failed
)

func (s Status) String() string {
	switch s {
	case Setup:
		return "setup"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

const (
	MsgPopularFailed = "Failed to load movies. Please check your API key."
	MsgSearchFailed  = "Failed to search movies. Please try again."
)

type State struct {
	Status     Status
	Query      string
	Results    []models.Movie
	Sort       browse.SortKey
	Genre      browse.GenreFilter
	Genres     catalog.GenreSet
	Error      string
	Generation uint64
}

// Initial is the state before the first fetch.
func Initial() State {
	return State{Status: Loading, Sort: browse.SortPopularity, Genre: browse.AllGenres}
}

// SetupRequired is the state shown when no credential is configured.
func SetupRequired() State {
	s := Initial()
	s.Status = Setup
	return s
}

// Visible is the filtered and sorted result list the grid displays.
func (s State) Visible(e *browse.Engine) []models.Movie {
	return e.Apply(s.Results, s.Genre, s.Sort)
}

// Searching reports whether the current list came from a free-text search.
func (s State) Searching() bool {
	return s.Query != ""
}

type Msg interface {
	msg()
}

// Started is a page load. Control values come from the request; the list is fetched fresh.
type Started struct {
	Query string
	Sort  browse.SortKey
	Genre browse.GenreFilter
}

// SearchSubmitted is the search button or Enter. An empty query reloads the popular list.
type SearchSubmitted struct {
	Query string
}

type SortChanged struct {
	Key browse.SortKey
}

type GenreChanged struct {
	Filter browse.GenreFilter
}

type GenresLoaded struct {
	Set catalog.GenreSet
}

type ResultsLoaded struct {
	Generation uint64
	Movies     []models.Movie
}

type FetchFailed struct {
	Generation uint64
	Err        error
}

func (Started) msg()         {}
func (SearchSubmitted) msg() {}
func (SortChanged) msg()     {}
func (GenreChanged) msg()    {}
func (GenresLoaded) msg()    {}
func (ResultsLoaded) msg()   {}
func (FetchFailed) msg()     {}

// Fetch describes the network work a transition needs.
type Fetch struct {
	Generation uint64
	Query      string
	Genres     bool
}

// Update returns the next state and, when the transition needs the network, the fetch to run.
func Update(s State, m Msg) (State, *Fetch) {
	if s.Status == Setup {
		return s, nil
	}

	switch m := m.(type) {
	case Started:
		next := State{
			Status:     Loading,
			Query:      strings.TrimSpace(m.Query),
			Sort:       m.Sort,
			Genre:      m.Genre,
			Genres:     s.Genres,
			Generation: s.Generation + 1,
		}
		if next.Sort == "" {
			next.Sort = browse.SortPopularity
		}
		return next, &Fetch{Generation: next.Generation, Query: next.Query, Genres: true}

	case SearchSubmitted:
		s.Query = strings.TrimSpace(m.Query)
		s.Status = Loading
		s.Error = ""
		s.Generation++
		return s, &Fetch{Generation: s.Generation, Query: s.Query}

	case SortChanged:
		s.Sort = m.Key
		return settle(s), nil

	case GenreChanged:
		s.Genre = m.Filter
		return settle(s), nil

	case GenresLoaded:
		s.Genres = m.Set
		return s, nil

	case ResultsLoaded:
		if m.Generation != s.Generation {
			return s, nil
		}
		s.Results = m.Movies
		s.Status = Ready
		s.Error = ""
		return s, nil

	case FetchFailed:
		if m.Generation != s.Generation {
			return s, nil
		}
		s.Status = Failed
		s.Error = MsgPopularFailed
		if s.Searching() {
			s.Error = MsgSearchFailed
		}
		return s, nil
	}

	return s, nil
}

// settle re-displays the existing list after a control change. A pending fetch keeps the page loading.
func settle(s State) State {
	if s.Status == Failed {
		s.Status = Ready
		s.Error = ""
	}
	return s
}
