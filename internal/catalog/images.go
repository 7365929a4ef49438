package catalog

import (
	"strings"

	"github.com/SAACyberV99/VibeFlix/internal/constants"
)

// Images builds media host URLs from the path fragments in catalog payloads.
type Images struct {
	PosterBase   string
	BackdropBase string
	Placeholder  string
	// DetailPlaceholder is the larger placeholder used by the detail overlay.
	DetailPlaceholder string
}

func DefaultImages() Images {
	return Images{
		PosterBase:   constants.TMDBImageBaseURL,
		BackdropBase: constants.TMDBBackdropBaseURL,
		Placeholder:  constants.PlaceholderPosterURL,

		DetailPlaceholder: constants.PlaceholderDetailURL,
	}
}

// PosterURL falls back to the placeholder image when the movie has no poster.
func (i Images) PosterURL(path string) string {
	if path == "" {
		return i.Placeholder
	}
	return strings.TrimRight(i.PosterBase, "/") + path
}

// DetailPosterURL is PosterURL with the detail overlay's placeholder.
func (i Images) DetailPosterURL(path string) string {
	if path == "" {
		return i.DetailPlaceholder
	}
	return i.PosterURL(path)
}

// BackdropURL returns "" when there is no backdrop.
func (i Images) BackdropURL(path string) string {
	if path == "" {
		return ""
	}
	return strings.TrimRight(i.BackdropBase, "/") + path
}
