package export_test

import (
	"bytes"
	"testing"

	"cafes/internal/export"
	"cafes/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	cafes := []models.Cafe{
		{ID: 1, Name: "Blue Bottle", MapURL: "https://m/1", ImgURL: "https://i/1", Location: "Cairo", HasWifi: true, Seats: "20-30", CoffeePrice: "$3"},
		{ID: 2, Name: "Science Gallery", MapURL: "https://m/2", ImgURL: "https://i/2", Location: "London", HasToilet: true, Seats: "50+", CoffeePrice: "£2.40"},
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, cafes))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, []string{"1", "Blue Bottle", "https://m/1", "https://i/1", "Cairo", "No", "No", "Yes", "No", "20-30", "$3"}, rows[1])
	assert.Equal(t, "Science Gallery", rows[2][1])
	assert.Equal(t, "50+", rows[2][9])
}

func TestWriteXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
