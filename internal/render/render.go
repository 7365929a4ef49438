// Package render turns view state into HTML. Output depends only on its arguments,
// so the same state always yields the same bytes.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"

	"github.com/SAACyberV99/VibeFlix/internal/browse"
	"github.com/SAACyberV99/VibeFlix/internal/catalog"
	"github.com/SAACyberV99/VibeFlix/internal/constants"
	"github.com/SAACyberV99/VibeFlix/internal/detail"
	"github.com/SAACyberV99/VibeFlix/internal/view"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

type Renderer struct {
	tmpl   *template.Template
	images catalog.Images
}

func New(images catalog.Images) (*Renderer, error) {
	tmpl, err := template.New("vibeflix").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, images: images}, nil
}

// Page is a full document.
type Page struct {
	State   view.State
	Engine  *browse.Engine
	Overlay *detail.Overlay
}

type pageView struct {
	AppName  string
	Setup    bool
	Query    string
	Loading  bool
	Controls controlsView
	Grid     gridView
	Overlay  *OverlayView
	Setting  setupView
}

type controlsView struct {
	Query  string
	Sort   []option
	Genres []option
}

type option struct {
	Value    string
	Label    string
	Selected bool
}

type gridView struct {
	Status     string
	Generation uint64
	Error      string
	Cards      []CardView
	Skeletons  []string
}

type setupView struct {
	SettingsURL string
	Placeholder string
}

// Page renders the whole document for p.
func (r *Renderer) Page(w io.Writer, p Page) error {
	s := p.State
	pv := pageView{
		AppName: constants.AppName,
		Setup:   s.Status == view.Setup,
		Query:   s.Query,
		Loading: s.Status == view.Loading,
		Setting: setupView{SettingsURL: constants.TMDBSettingsURL, Placeholder: constants.PlaceholderAPIKey},
	}
	if !pv.Setup {
		pv.Controls = controls(s)
		pv.Grid = r.grid(s, p.Engine)
	}
	if p.Overlay != nil && p.Overlay.State != detail.Idle {
		ov := r.overlay(*p.Overlay, s)
		ov.Active = true
		pv.Overlay = &ov
	}
	return r.tmpl.ExecuteTemplate(w, "page", pv)
}

// Grid renders the contents of the movie grid for s.
func (r *Renderer) Grid(w io.Writer, s view.State, e *browse.Engine) error {
	return r.tmpl.ExecuteTemplate(w, "grid", r.grid(s, e))
}

// Overlay renders the detail overlay fragment. back is the page state the close control returns to.
func (r *Renderer) Overlay(w io.Writer, o detail.Overlay, back view.State) error {
	return r.tmpl.ExecuteTemplate(w, "overlay", r.overlay(o, back))
}

func (r *Renderer) grid(s view.State, e *browse.Engine) gridView {
	g := gridView{Status: s.Status.String(), Generation: s.Generation}
	switch s.Status {
	case view.Loading:
		g.Skeletons = skeletons()
	case view.Failed:
		g.Error = s.Error
	case view.Ready:
		g.Cards = Cards(s.Visible(e), s.Genres, r.images)
		for i := range g.Cards {
			g.Cards[i].DetailsURL = PageURL(s, g.Cards[i].ID)
		}
	}
	return g
}

func (r *Renderer) overlay(o detail.Overlay, back view.State) OverlayView {
	v := overlayView(o, r.images)
	v.CloseURL = PageURL(back, 0)
	q := pageValues(back, o.MovieID)
	q.Set("retry", "1")
	v.RetryURL = encodePage(q)
	v.Dismissible = o.CanDismiss()
	return v
}

func skeletons() []string {
	delays := make([]string, constants.SkeletonCards)
	for i := range delays {
		delays[i] = staggerDelay(i)
	}
	return delays
}

func controls(s view.State) controlsView {
	c := controlsView{Query: s.Query}
	for _, o := range browse.SortOptions() {
		c.Sort = append(c.Sort, option{Value: string(o.Key), Label: o.Label, Selected: o.Key == s.Sort})
	}
	c.Genres = append(c.Genres, option{Value: browse.AllGenres.String(), Label: "All Genres", Selected: s.Genre.IsAll()})
	for _, g := range s.Genres.All() {
		f := browse.GenreFilter(g.ID)
		c.Genres = append(c.Genres, option{Value: f.String(), Label: g.Name, Selected: f == s.Genre})
	}
	return c
}

// PageURL links to the page showing s, with movie's overlay open when movie is positive.
func PageURL(s view.State, movie int) string {
	return encodePage(pageValues(s, movie))
}

func pageValues(s view.State, movie int) url.Values {
	q := url.Values{}
	if s.Query != "" {
		q.Set("q", s.Query)
	}
	if s.Sort != "" && s.Sort != browse.SortPopularity {
		q.Set("sort", string(s.Sort))
	}
	if !s.Genre.IsAll() {
		q.Set("genre", s.Genre.String())
	}
	if movie > 0 {
		q.Set("movie", fmt.Sprint(movie))
	}
	return q
}

func encodePage(q url.Values) string {
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
