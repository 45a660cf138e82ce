package seatmap

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SeededIsReproducible(t *testing.T) {
	a := GenerateDefault(rand.New(rand.NewSource(42)))
	b := GenerateDefault(rand.New(rand.NewSource(42)))
	assert.Equal(t, a.Booked(), b.Booked())
	assert.NotEmpty(t, a.Booked())
}

func TestGenerate_AtMostDrawCount(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		m := GenerateDefault(rand.New(rand.NewSource(seed)))
		booked := m.Booked()
		assert.LessOrEqual(t, len(booked), DefaultDraws)
		assert.GreaterOrEqual(t, len(booked), 1)
		for _, id := range booked {
			assert.True(t, m.Contains(id), "seed %d produced out-of-grid seat %s", seed, id)
		}
	}
}

func TestGenerate_IndependentVisits(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	first := GenerateDefault(rng)
	second := GenerateDefault(rng)
	assert.NotEqual(t, first.Booked(), second.Booked())
}

func TestGenerate_ZeroDraws(t *testing.T) {
	m := Generate(rand.New(rand.NewSource(1)), 8, 12, 0)
	assert.Empty(t, m.Booked())
	assert.Equal(t, 96, m.Capacity())
}

func TestParseSeat(t *testing.T) {
	id, row, col, err := ParseSeat(" c7 ")
	require.NoError(t, err)
	assert.Equal(t, "C7", id)
	assert.Equal(t, "C", row)
	assert.Equal(t, 7, col)

	for _, bad := range []string{"", "7", "C", "C0", "C-1", "7C", "C7x"} {
		_, _, _, err := ParseSeat(bad)
		assert.ErrorIs(t, err, ErrInvalidSeat, bad)
	}
}

func TestContains(t *testing.T) {
	m := Generate(rand.New(rand.NewSource(1)), 8, 12, 0)
	assert.True(t, m.Contains("A1"))
	assert.True(t, m.Contains("H12"))
	assert.False(t, m.Contains("I1"))
	assert.False(t, m.Contains("A13"))
	assert.False(t, m.Contains("junk"))
}

func TestRows_Layout(t *testing.T) {
	m := GenerateDefault(rand.New(rand.NewSource(3)))
	booked := m.Booked()
	require.NotEmpty(t, booked)

	rows := m.Rows([]string{"A1", booked[0]})
	require.Len(t, rows, 8)
	assert.Equal(t, "A", rows[0].Label)
	assert.Equal(t, "H", rows[7].Label)
	for _, r := range rows {
		assert.Len(t, r.Seats, 12)
	}

	status := map[string]Status{}
	for _, r := range rows {
		for _, s := range r.Seats {
			status[s.ID] = s.Status
		}
	}
	assert.Equal(t, Booked, status[booked[0]], "booked wins over selected")
	if !m.IsBooked("A1") {
		assert.Equal(t, Selected, status["A1"])
	}
}

func TestSeatID(t *testing.T) {
	assert.Equal(t, "A1", SeatID(0, 1))
	assert.Equal(t, "H12", SeatID(7, 12))
	assert.Equal(t, "AA3", SeatID(26, 3))
}
