// Package seatmap derives per-visit seat availability for a showtime.
//
// The booked set is a random stand-in for a real availability store: it is
// drawn fresh on every seat-selection visit, is never persisted and carries
// no authority.  Two customers looking at the same showtime see unrelated
// maps, and nothing prevents the same seat being "sold" twice.
package seatmap

import (
	"errors"    // sentinel values for identifier validation
	"math/rand" // injected random source
	"sort"      // stable ordering for Booked()
	"strconv"   // column numbers
	"strings"   // identifier normalisation
	"time"      // default seed
)

const (
	DefaultRows  = 8  // rows A..H
	DefaultCols  = 12 // seats per row
	DefaultDraws = 20 // random booking marks per visit
)

// ErrInvalidSeat is returned by ParseSeat for identifiers that are not a
// row letter followed by a positive column number.
var ErrInvalidSeat = errors.New("invalid seat identifier")

// Status is the display state of one seat.
type Status string

const (
	Available Status = "AVAILABLE"
	Booked    Status = "BOOKED"
	Selected  Status = "SELECTED"
)

// Seat is one cell of the layout returned by Rows.
type Seat struct {
	ID     string `json:"id"`
	Number int    `json:"number"`
	Status Status `json:"status"`
}

// Row groups the seats of a single row label.
type Row struct {
	Label string `json:"label"`
	Seats []Seat `json:"seats"`
}

// Map is the availability for one visit.  It is immutable once generated.
type Map struct {
	rows   int
	cols   int
	booked map[string]struct{}
}

// NewSource returns a random source seeded from the clock.  Production code
// uses it; tests pass rand.New(rand.NewSource(seed)) instead.
func NewSource() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Generate draws `draws` seats uniformly (row and column picked
// independently, with replacement) and unions them into the booked set.
// Collisions are kept, so the realized booked count can be below draws.
func Generate(rng *rand.Rand, rows, cols, draws int) *Map {
	if rng == nil {
		rng = NewSource()
	}
	m := &Map{rows: rows, cols: cols, booked: make(map[string]struct{}, draws)}
	if rows <= 0 || cols <= 0 {
		return m
	}
	for i := 0; i < draws; i++ {
		r := rng.Intn(rows)
		c := rng.Intn(cols) + 1
		m.booked[SeatID(r, c)] = struct{}{}
	}
	return m
}

// GenerateDefault is Generate with the 8x12 grid and 20 draws.
func GenerateDefault(rng *rand.Rand) *Map {
	return Generate(rng, DefaultRows, DefaultCols, DefaultDraws)
}

// SeatID builds the identifier for a zero-based row index and a 1-based column.
func SeatID(row, col int) string {
	return rowLabel(row) + strconv.Itoa(col)
}

// rowLabel converts a zero-based index to A, B, ... Z, AA, AB.
func rowLabel(i int) string {
	if i < 0 {
		return ""
	}
	res := []rune{}
	for {
		res = append(res, rune('A'+i%26))
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	for j, k := 0, len(res)-1; j < k; j, k = j+1, k-1 {
		res[j], res[k] = res[k], res[j]
	}
	return string(res)
}

// ParseSeat splits an identifier such as "c7" into its upper-cased row
// label and column.  The returned id is normalised ("C7").
func ParseSeat(raw string) (id, row string, col int, err error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	i := 0
	for i < len(s) && s[i] >= 'A' && s[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(s) {
		return "", "", 0, ErrInvalidSeat
	}
	col, convErr := strconv.Atoi(s[i:])
	if convErr != nil || col <= 0 {
		return "", "", 0, ErrInvalidSeat
	}
	row = s[:i]
	return row + strconv.Itoa(col), row, col, nil
}

// Contains reports whether id names a seat inside this grid.
func (m *Map) Contains(id string) bool {
	_, row, col, err := ParseSeat(id)
	if err != nil || col > m.cols {
		return false
	}
	for r := 0; r < m.rows; r++ {
		if rowLabel(r) == row {
			return true
		}
	}
	return false
}

// IsBooked reports whether id was drawn as booked for this visit.
func (m *Map) IsBooked(id string) bool {
	norm, _, _, err := ParseSeat(id)
	if err != nil {
		return false
	}
	_, ok := m.booked[norm]
	return ok
}

// Booked returns the booked identifiers in row-major order.
func (m *Map) Booked() []string {
	out := make([]string, 0, len(m.booked))
	for id := range m.booked {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return lessSeat(out[i], out[j]) })
	return out
}

// Capacity is rows × cols.
func (m *Map) Capacity() int { return m.rows * m.cols }

// Rows returns the full layout.  Seats present in selected are marked
// SELECTED unless they are booked.
func (m *Map) Rows(selected []string) []Row {
	sel := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		sel[s] = struct{}{}
	}
	out := make([]Row, 0, m.rows)
	for r := 0; r < m.rows; r++ {
		row := Row{Label: rowLabel(r), Seats: make([]Seat, 0, m.cols)}
		for c := 1; c <= m.cols; c++ {
			id := SeatID(r, c)
			st := Available
			if _, ok := m.booked[id]; ok {
				st = Booked
			} else if _, ok := sel[id]; ok {
				st = Selected
			}
			row.Seats = append(row.Seats, Seat{ID: id, Number: c, Status: st})
		}
		out = append(out, row)
	}
	return out
}

func lessSeat(a, b string) bool {
	_, ra, ca, _ := ParseSeat(a)
	_, rb, cb, _ := ParseSeat(b)
	if len(ra) != len(rb) {
		return len(ra) < len(rb)
	}
	if ra != rb {
		return ra < rb
	}
	return ca < cb
}
