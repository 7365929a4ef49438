package catalog

import "github.com/SAACyberV99/VibeFlix/internal/models"

// GenreSet is the fetched genre list, kept in catalog order, with id lookup.
// The zero value is an empty set.
type GenreSet struct {
	genres []models.Genre
	byID   map[int]string
}

func NewGenreSet(genres []models.Genre) GenreSet {
	set := GenreSet{
		genres: make([]models.Genre, 0, len(genres)),
		byID:   make(map[int]string, len(genres)),
	}
	for _, g := range genres {
		if _, dup := set.byID[g.ID]; dup {
			continue
		}
		set.genres = append(set.genres, g)
		set.byID[g.ID] = g.Name
	}
	return set
}

// All returns the genres in catalog order.
func (s GenreSet) All() []models.Genre {
	out := make([]models.Genre, len(s.genres))
	copy(out, s.genres)
	return out
}

func (s GenreSet) Len() int { return len(s.genres) }

// Name resolves id, reporting false for unknown ids.
func (s GenreSet) Name(id int) (string, bool) {
	name, ok := s.byID[id]
	return name, ok && name != ""
}

// Names resolves ids in order, skipping unknown ones, and stops after limit names (limit <= 0 means no limit).
func (s GenreSet) Names(ids []int, limit int) []string {
	var names []string
	for _, id := range ids {
		if limit > 0 && len(names) == limit {
			break
		}
		if name, ok := s.Name(id); ok {
			names = append(names, name)
		}
	}
	return names
}
