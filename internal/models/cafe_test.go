package models_test

import (
	"testing"

	"cafes/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCafe_ApplyMapsFieldsByName(t *testing.T) {
	cafe := models.Cafe{ID: 3, Name: "old", Seats: "0-10"}
	in := models.CafeInput{
		Name:         "A",
		MapURL:       "B",
		ImgURL:       "C",
		Location:     "D",
		HasSockets:   true,
		HasToilet:    false,
		HasWifi:      true,
		CanTakeCalls: false,
		Seats:        "10-20",
		CoffeePrice:  "$3",
	}

	cafe.Apply(in)

	assert.Equal(t, uint(3), cafe.ID)
	assert.True(t, cafe.HasWifi)
	assert.False(t, cafe.CanTakeCalls)
	assert.Equal(t, "10-20", cafe.Seats)
	assert.Equal(t, "$3", cafe.CoffeePrice)
	assert.Equal(t, in, cafe.Input())
}

func TestSeatBuckets(t *testing.T) {
	assert.Equal(t, []string{"0-10", "10-20", "20-30", "30-40", "40-50", "50+"}, models.SeatBuckets)
}
