package suggest_launch_date

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	t.Run("full query", func(t *testing.T) {
		query := url.Values{}
		query.Set("category", "Food,Restaurants,Sushi")
		query.Set("entityName", "SushiGo")
		query.Set("durationDays", "5")
		query.Set("searchFrom", "2026-04-01")
		query.Set("excludeReservationId", "42")

		req, err := ParseQuery(query)
		require.NoError(t, err)

		assert.Equal(t, []string{"Food", "Restaurants", "Sushi"}, req.CategorySegments)
		require.NotNil(t, req.EntityName)
		assert.Equal(t, "SushiGo", *req.EntityName)
		require.NotNil(t, req.DurationDays)
		assert.Equal(t, 5, *req.DurationDays)
		// Дата остаётся тем же календарным днём, что прислал клиент
		assert.Equal(t, "2026-04-01", req.SearchFrom.String())
		require.NotNil(t, req.ExcludeReservationID)
		assert.Equal(t, int64(42), *req.ExcludeReservationID)
	})

	t.Run("searchFrom is optional", func(t *testing.T) {
		query := url.Values{}
		query.Set("category", "Food")

		req, err := ParseQuery(query)
		require.NoError(t, err)
		assert.True(t, req.SearchFrom.IsZero())
		assert.Nil(t, req.EntityName)
		assert.Nil(t, req.DurationDays)
	})

	t.Run("category is required", func(t *testing.T) {
		_, err := ParseQuery(url.Values{})
		assert.Error(t, err)
	})

	t.Run("malformed duration", func(t *testing.T) {
		query := url.Values{}
		query.Set("category", "Food")
		query.Set("durationDays", "week")

		_, err := ParseQuery(query)
		assert.Error(t, err)
	})

	t.Run("malformed date", func(t *testing.T) {
		query := url.Values{}
		query.Set("category", "Food")
		query.Set("searchFrom", "01.04.2026")

		_, err := ParseQuery(query)
		assert.Error(t, err)
	})
}
