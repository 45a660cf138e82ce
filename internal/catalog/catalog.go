// Package catalog is the read-only registry of movies, theatres and
// showtimes.  The data is compiled in; there is no mutation and no
// lifecycle, so a single Catalog can be shared by every request.
package catalog

import (
	"errors"
	"time"

	"github.com/iliyamo/cinebook/internal/model"
)

var (
	// ErrMovieNotFound is returned when a movie id is absent from the catalog.
	ErrMovieNotFound = errors.New("movie not found")
	// ErrTheatreNotFound is returned when a theatre id is absent from the catalog.
	ErrTheatreNotFound = errors.New("theatre not found")
)

// DateLayout is the wire format of show dates.
const DateLayout = "2006-01-02"

// Catalog serves lookups over the compiled-in data.  Returned values are
// copies; callers may modify them freely.
type Catalog struct {
	movies    []model.Movie
	theatres  []model.Theatre
	slides    []model.HeroSlide
	byMovie   map[string]int
	byTheatre map[string]int
}

// New returns the default catalog.
func New() *Catalog {
	return NewWith(movies, theatres, heroSlides)
}

// NewWith builds a catalog from explicit data.  Tests use it to run against
// a reduced fixture.
func NewWith(ms []model.Movie, ts []model.Theatre, hs []model.HeroSlide) *Catalog {
	c := &Catalog{
		movies:    ms,
		theatres:  ts,
		slides:    hs,
		byMovie:   make(map[string]int, len(ms)),
		byTheatre: make(map[string]int, len(ts)),
	}
	for i, m := range ms {
		c.byMovie[m.ID] = i
	}
	for i, t := range ts {
		c.byTheatre[t.ID] = i
	}
	return c
}

// Movies lists all movies in catalog order.
func (c *Catalog) Movies() []model.Movie {
	out := make([]model.Movie, len(c.movies))
	for i, m := range c.movies {
		out[i] = copyMovie(m)
	}
	return out
}

// Movie looks up a movie by id.
func (c *Catalog) Movie(id string) (model.Movie, error) {
	i, ok := c.byMovie[id]
	if !ok {
		return model.Movie{}, ErrMovieNotFound
	}
	return copyMovie(c.movies[i]), nil
}

// Theatres lists all theatres in catalog order.
func (c *Catalog) Theatres() []model.Theatre {
	out := make([]model.Theatre, len(c.theatres))
	for i, t := range c.theatres {
		out[i] = copyTheatre(t)
	}
	return out
}

// Theatre looks up a theatre by id.
func (c *Catalog) Theatre(id string) (model.Theatre, error) {
	i, ok := c.byTheatre[id]
	if !ok {
		return model.Theatre{}, ErrTheatreNotFound
	}
	return copyTheatre(c.theatres[i]), nil
}

// HasShowTime reports whether the theatre lists the given showtime.
func (c *Catalog) HasShowTime(theatreID, showTime string) bool {
	t, err := c.Theatre(theatreID)
	if err != nil {
		return false
	}
	for _, st := range t.ShowTimes {
		if st == showTime {
			return true
		}
	}
	return false
}

// HeroSlides lists the featured slides.
func (c *Catalog) HeroSlides() []model.HeroSlide {
	return append([]model.HeroSlide(nil), c.slides...)
}

// ShowDates returns n consecutive dates starting with the calendar day of
// now, formatted with DateLayout.
func ShowDates(now time.Time, n int) []string {
	if n <= 0 {
		return []string{}
	}
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, start.AddDate(0, 0, i).Format(DateLayout))
	}
	return out
}

func copyMovie(m model.Movie) model.Movie {
	m.Cast = append([]string(nil), m.Cast...)
	m.Languages = append([]string(nil), m.Languages...)
	return m
}

func copyTheatre(t model.Theatre) model.Theatre {
	t.ShowTimes = append([]string(nil), t.ShowTimes...)
	return t
}
