package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/dataset-explorer/internal/domain"
)

func sightingsFromCSV(t *testing.T, rows ...string) *Table {
	t.Helper()
	csv := "date_time,duration_secs,month,ufo_shape\n" + strings.Join(rows, "\n") + "\n"
	table, err := Load(strings.NewReader(csv), Options{Variant: Sightings})
	require.NoError(t, err)
	return table
}

func TestBuildHistogram(t *testing.T) {
	table := sightingsFromCSV(t,
		"2004-01-01,0,1,disk",
		"2004-01-01,10,1,disk",
		"2004-03-01,20,3,light",
		"2004-12-01,30,12,light",
		"2004-12-01,40,12,disk",
		"2004-12-01,,12,disk",
	)

	t.Run("single series", func(t *testing.T) {
		h, err := BuildHistogram(table, domain.DurationSecsColumn, "", 4)
		require.NoError(t, err)

		assert.Equal(t, []float64{0, 10, 20, 30, 40}, h.Edges)
		require.Len(t, h.Series, 1)
		assert.Equal(t, []int{1, 1, 1, 2}, h.Series[0].Counts, "the maximum lands in the last bin")
		assert.Equal(t, 5, h.Series[0].Total)
		assert.Equal(t, 1, h.Skipped)
	})

	t.Run("split by shape", func(t *testing.T) {
		h, err := BuildHistogram(table, domain.DurationSecsColumn, domain.ShapeColumn, 2)
		require.NoError(t, err)

		require.Len(t, h.Series, 2)
		assert.Equal(t, "disk", h.Series[0].Category)
		assert.Equal(t, []int{2, 1}, h.Series[0].Counts)
		assert.Equal(t, "light", h.Series[1].Category)
		assert.Equal(t, []int{0, 2}, h.Series[1].Counts)
	})

	t.Run("months in calendar order", func(t *testing.T) {
		h, err := BuildHistogram(table, domain.DurationSecsColumn, domain.MonthColumn, 2)
		require.NoError(t, err)

		var names []string
		for _, s := range h.Series {
			names = append(names, s.Category)
		}
		assert.Equal(t, []string{"January", "March", "December"}, names)
	})

	t.Run("invalid bins", func(t *testing.T) {
		_, err := BuildHistogram(table, domain.DurationSecsColumn, "", 0)
		assert.Error(t, err)
	})

	t.Run("missing column", func(t *testing.T) {
		_, err := BuildHistogram(table, "price", "", 3)
		assert.ErrorIs(t, err, domain.ErrSchema)
	})
}

func TestBuildHistogram_Degenerate(t *testing.T) {
	t.Run("constant values", func(t *testing.T) {
		table := sightingsFromCSV(t, "2004-01-01,5,1,disk", "2004-01-01,5,1,disk")
		h, err := BuildHistogram(table, domain.DurationSecsColumn, "", 3)
		require.NoError(t, err)
		require.Len(t, h.Series, 1)
		assert.Equal(t, 2, h.Series[0].Total)
		assert.Equal(t, 2, h.Series[0].Counts[0])
	})

	t.Run("no values", func(t *testing.T) {
		table := sightingsFromCSV(t, "2004-01-01,,1,disk")
		h, err := BuildHistogram(table, domain.DurationSecsColumn, "", 3)
		require.NoError(t, err)
		assert.Empty(t, h.Series)
		assert.Nil(t, h.Edges)
		assert.Equal(t, 1, h.Skipped)
	})
}

func TestPoints(t *testing.T) {
	table := loadSightings(t)

	points, err := Points(table, PointSpec{
		X:     domain.DurationDaysColumn,
		Y:     domain.AgeColumn,
		Label: domain.CountryColumn,
		Text:  domain.ShapeColumn,
	})
	require.NoError(t, err)
	require.Len(t, points, 5, "the row without an age is not plotted")
	assert.Equal(t, "United States", points[0].Label)
	assert.Equal(t, "Cylinder", points[0].Text)
	assert.Nil(t, points[0].Size)

	mapped, err := Points(table, PointSpec{
		X:    domain.LongitudeColumn,
		Y:    domain.LatitudeColumn,
		Size: domain.DurationSecsColumn,
	})
	require.NoError(t, err)
	require.Len(t, mapped, 6)
	require.NotNil(t, mapped[0].Size)
	assert.Equal(t, 2700.0, *mapped[0].Size)
	assert.InDelta(t, -97.9411111, mapped[0].X, 1e-9)
}
