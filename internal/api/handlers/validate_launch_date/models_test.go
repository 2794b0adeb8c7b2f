package validate_launch_date

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToUseCaseRequest(t *testing.T) {
	t.Run("date stays the same civil day", func(t *testing.T) {
		httpReq := &ValidateRequest{
			Category:  []string{"Food", "Restaurants", "Sushi"},
			StartDate: "2026-03-20",
		}

		req, err := httpReq.ToUseCaseRequest()
		require.NoError(t, err)

		// День из запроса не должен уехать на сутки при конверсии
		// через часовой пояс площадки
		assert.Equal(t, "2026-03-20", req.StartDate.String())
		assert.Equal(t, []string{"Food", "Restaurants", "Sushi"}, req.CategorySegments)
	})

	t.Run("malformed date", func(t *testing.T) {
		httpReq := &ValidateRequest{
			Category:  []string{"Food"},
			StartDate: "20.03.2026",
		}

		_, err := httpReq.ToUseCaseRequest()
		assert.Error(t, err)
	})
}
