package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinebook/internal/catalog"
	"github.com/iliyamo/cinebook/internal/model"
)

// ShowDays is how many upcoming dates a movie page offers.
const ShowDays = 5

// catalogRoot is where clients are sent when an id is not in the catalog.
const catalogRoot = "/v1/movies"

func notInCatalog(c echo.Context, err error) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error(), "redirect": catalogRoot})
}

// BrowseHandler serves the read-only catalog: hero carousel, movie list,
// movie detail and theatres.
type BrowseHandler struct {
	Catalog *catalog.Catalog
	Rotator *catalog.Rotator
	Now     func() time.Time
}

func NewBrowseHandler(cat *catalog.Catalog, rot *catalog.Rotator, now func() time.Time) *BrowseHandler {
	if cat == nil || rot == nil {
		panic("nil dependency passed to NewBrowseHandler")
	}
	if now == nil {
		now = time.Now
	}
	return &BrowseHandler{Catalog: cat, Rotator: rot, Now: now}
}

type heroResp struct {
	Slide model.HeroSlide `json:"slide"`
	Index int             `json:"index"`
	Total int             `json:"total"`
	Movie *model.Movie    `json:"movie,omitempty"`
}

// Hero returns the slide currently shown by the rotator.
func (h *BrowseHandler) Hero(c echo.Context) error {
	slide, idx, ok := h.Rotator.Current()
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no hero slides"})
	}
	resp := heroResp{Slide: slide, Index: idx, Total: len(h.Catalog.HeroSlides())}
	if m, err := h.Catalog.Movie(slide.MovieID); err == nil {
		resp.Movie = &m
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BrowseHandler) Movies(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.Movies())
}

type movieDetail struct {
	Movie    model.Movie     `json:"movie"`
	Dates    []string        `json:"dates"`
	Theatres []model.Theatre `json:"theatres"`
}

// Movie returns one movie with the dates and theatres it can be booked for.
func (h *BrowseHandler) Movie(c echo.Context) error {
	m, err := h.Catalog.Movie(c.Param("id"))
	if errors.Is(err, catalog.ErrMovieNotFound) {
		return notInCatalog(c, err)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "catalog error"})
	}
	return c.JSON(http.StatusOK, movieDetail{
		Movie:    m,
		Dates:    catalog.ShowDates(h.Now(), ShowDays),
		Theatres: h.Catalog.Theatres(),
	})
}

func (h *BrowseHandler) Theatres(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Catalog.Theatres())
}
