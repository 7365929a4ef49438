// Package browse filters and orders movie lists for display.
package browse

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/SAACyberV99/VibeFlix/internal/models"
)

type SortKey string

const (
	SortPopularity  SortKey = "popularity"
	SortRating      SortKey = "rating"
	SortReleaseDate SortKey = "release_date"
	SortTitle       SortKey = "title"
)

// SortOption is one entry of the sort control.
type SortOption struct {
	Key   SortKey
	Label string
}

// SortOptions lists the sort control entries in display order.
func SortOptions() []SortOption {
	return []SortOption{
		{SortPopularity, "Popularity"},
		{SortRating, "Rating"},
		{SortReleaseDate, "Release Date"},
		{SortTitle, "Title (A-Z)"},
	}
}

// ParseSortKey falls back to popularity for anything it does not know.
func ParseSortKey(s string) SortKey {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case SortRating, SortReleaseDate, SortTitle:
		return k
	default:
		return SortPopularity
	}
}

// GenreFilter selects a genre id; AllGenres disables filtering.
type GenreFilter int

const AllGenres GenreFilter = 0

// ParseGenreFilter accepts "all" or a positive genre id; anything else means all.
func ParseGenreFilter(s string) GenreFilter {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return AllGenres
	}
	return GenreFilter(id)
}

func (g GenreFilter) IsAll() bool { return g == AllGenres }

func (g GenreFilter) String() string {
	if g.IsAll() {
		return "all"
	}
	return strconv.Itoa(int(g))
}

// Engine applies genre filtering and sorting. Title comparison follows the engine's locale.
type Engine struct {
	tag language.Tag
}

// NewEngine builds an engine for a BCP 47 locale such as "en" or "fr-FR".
// An unparsable locale falls back to English.
func NewEngine(locale string) *Engine {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Engine{tag: tag}
}

var defaultEngine = NewEngine("en")

// Apply filters and sorts with the default English engine.
func Apply(movies []models.Movie, genre GenreFilter, key SortKey) []models.Movie {
	return defaultEngine.Apply(movies, genre, key)
}

// Apply returns a new slice; movies is never modified.
// Ordering is stable, so ties keep their input order.
func (e *Engine) Apply(movies []models.Movie, genre GenreFilter, key SortKey) []models.Movie {
	out := Filter(movies, genre)
	sort.SliceStable(out, e.less(out, key))
	return out
}

// Filter keeps the movies tagged with genre. Movies without genre ids never match a specific genre.
func Filter(movies []models.Movie, genre GenreFilter) []models.Movie {
	out := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if genre.IsAll() || m.HasGenre(int(genre)) {
			out = append(out, m)
		}
	}
	return out
}

func (e *Engine) less(movies []models.Movie, key SortKey) func(i, j int) bool {
	switch key {
	case SortRating:
		return func(i, j int) bool {
			return movies[i].VoteAverage > movies[j].VoteAverage
		}
	case SortReleaseDate:
		return func(i, j int) bool {
			return ReleaseTime(movies[i].ReleaseDate).After(ReleaseTime(movies[j].ReleaseDate))
		}
	case SortTitle:
		// collate.Collator keeps iteration state; one per sort call
		col := collate.New(e.tag)
		return func(i, j int) bool {
			return col.CompareString(movies[i].Title, movies[j].Title) < 0
		}
	default:
		return func(i, j int) bool {
			return movies[i].Popularity > movies[j].Popularity
		}
	}
}

var (
	dateLayouts = []string{"2006-01-02", "2006-01", "2006"}
	epoch       = time.Unix(0, 0).UTC()
)

func parseRelease(date string) (time.Time, bool) {
	date = strings.TrimSpace(date)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, date); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ReleaseTime parses a catalog release date; missing or malformed dates are the Unix epoch.
func ReleaseTime(date string) time.Time {
	if t, ok := parseRelease(date); ok {
		return t
	}
	return epoch
}

// ReleaseYear returns the year of a catalog release date, or 0 when there is none.
func ReleaseYear(date string) int {
	if t, ok := parseRelease(date); ok {
		return t.Year()
	}
	return 0
}
