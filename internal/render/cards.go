package render

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"

	"github.com/SAACyberV99/VibeFlix/internal/browse"
	"github.com/SAACyberV99/VibeFlix/internal/catalog"
	"github.com/SAACyberV99/VibeFlix/internal/constants"
	"github.com/SAACyberV99/VibeFlix/internal/models"
)

const unknownTitle = "Unknown Title"

// CardView is everything the card template prints for one movie.
type CardView struct {
	ID          int
	Title       string
	Poster      string
	Placeholder string
	Year        string
	Genres      string
	Rating      string
	Delay       string
	DetailsURL  string
	// Key changes whenever any displayed field changes; the script reuses cards whose key matches.
	Key string
}

// Card builds the view of movie at position index in the grid.
func Card(movie models.Movie, index int, genres catalog.GenreSet, images catalog.Images) CardView {
	title := movie.Title
	if title == "" {
		title = unknownTitle
	}

	var year string
	if y := browse.ReleaseYear(movie.ReleaseDate); y != 0 {
		year = strconv.Itoa(y)
	}

	card := CardView{
		ID:          movie.ID,
		Title:       title,
		Poster:      images.PosterURL(movie.PosterPath),
		Placeholder: images.Placeholder,
		Year:        year,
		Genres:      strings.Join(genres.Names(movie.GenreIDs, constants.MaxCardGenres), ", "),
		Rating:      FormatRating(movie.VoteAverage),
		Delay:       staggerDelay(index),
	}
	card.Key = cardKey(card)
	return card
}

// Cards builds the card views for an already filtered and sorted list.
func Cards(movies []models.Movie, genres catalog.GenreSet, images catalog.Images) []CardView {
	cards := make([]CardView, len(movies))
	for i, m := range movies {
		cards[i] = Card(m, i, genres, images)
	}
	return cards
}

// FormatRating prints a rating with one decimal. Zero counts as unrated.
func FormatRating(rating float64) string {
	if rating == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(rating, 'f', 1, 64)
}

func staggerDelay(index int) string {
	return strconv.FormatFloat(float64(index)*constants.CardStaggerSeconds, 'f', 2, 64) + "s"
}

func cardKey(c CardView) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%d|%s|%s|%s|%s|%s", c.ID, c.Title, c.Poster, c.Year, c.Genres, c.Rating)
	return strconv.FormatUint(h.Sum64(), 36)
}
