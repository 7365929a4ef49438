package render

import (
	"strconv"

	"github.com/SAACyberV99/VibeFlix/internal/browse"
	"github.com/SAACyberV99/VibeFlix/internal/catalog"
	"github.com/SAACyberV99/VibeFlix/internal/detail"
)

const (
	overlayLoadingText = "Loading movie details..."
	overlayErrorText   = "Failed to load movie details. Please try again."
)

// OverlayView is the detail overlay as the template sees it.
type OverlayView struct {
	State    string
	MovieID  int
	Title    string
	Poster   string
	Backdrop string
	Tagline  string
	Rating   string
	Year     string
	Runtime  string
	Genres   []string
	Overview string
	Homepage string

	Message  string
	CloseURL string
	RetryURL string
	// Dismissible offers the close controls; a loading overlay has none.
	Dismissible bool
	// Active is set when the overlay is rendered into a full page rather than inserted by the script.
	Active bool
}

func overlayView(o detail.Overlay, images catalog.Images) OverlayView {
	v := OverlayView{State: o.State.String(), MovieID: o.MovieID}

	switch o.State {
	case detail.Loading:
		v.Message = overlayLoadingText
	case detail.Error:
		v.Message = overlayErrorText
	case detail.Shown:
		m := o.Movie
		v.Title = m.Title
		if v.Title == "" {
			v.Title = unknownTitle
		}
		v.Poster = images.DetailPosterURL(m.PosterPath)
		v.Backdrop = images.BackdropURL(m.BackdropPath)
		v.Tagline = m.Tagline
		v.Rating = FormatRating(m.VoteAverage)
		if y := browse.ReleaseYear(m.ReleaseDate); y != 0 {
			v.Year = strconv.Itoa(y)
		}
		if m.Runtime > 0 {
			v.Runtime = strconv.Itoa(m.Runtime) + " min"
		}
		for _, g := range m.Genres {
			if g.Name != "" {
				v.Genres = append(v.Genres, g.Name)
			}
		}
		v.Overview = m.Overview
		v.Homepage = m.Homepage
	}
	return v
}
