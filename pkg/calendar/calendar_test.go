package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToShamsi(t *testing.T) {
	// 2024-03-20 is 1403-01-01 (Nowruz)
	g := time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "1403-01-01", ToShamsi(g))
}

func TestRoundTrip(t *testing.T) {
	g, err := ToGregorian("1403-01-01")
	assert.NoError(t, err)
	assert.Equal(t, "1403-01-01", ToShamsi(g))

	y, m, d := g.Date()
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.March, m)
	assert.Equal(t, 20, d)
}

func TestToGregorianInvalid(t *testing.T) {
	_, err := ToGregorian("not-a-date")
	assert.Error(t, err)

	_, err = ToGregorian("1403-13-01")
	assert.Error(t, err)
}
