package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validPolicy() SchedulePolicy {
	return DefaultSchedulePolicy()
}

func TestSchedulePolicy_Validate(t *testing.T) {
	t.Run("default policy is valid", func(t *testing.T) {
		p := validPolicy()
		assert.NoError(t, p.Validate())
	})

	t.Run("rejects inverted capacity band", func(t *testing.T) {
		p := validPolicy()
		p.Capacity = CapacityPolicy{MinPerDay: 13, MaxPerDay: 8}
		assert.Error(t, p.Validate())
	})

	t.Run("rejects non-positive duration", func(t *testing.T) {
		p := validPolicy()
		p.DefaultDurationDays = 0
		assert.Error(t, p.Validate())
	})

	t.Run("rejects unknown exception kind", func(t *testing.T) {
		p := validPolicy()
		p.Exceptions = []EntityException{{EntityName: "SushiGo", Kind: "weekly_limit", Value: 2}}
		assert.Error(t, p.Validate())
	})

	t.Run("rejects duplicate exceptions case-insensitively", func(t *testing.T) {
		p := validPolicy()
		p.Exceptions = []EntityException{
			{EntityName: "SushiGo", Kind: ExceptionCooldownDays, Value: 10},
			{EntityName: "sushigo", Kind: ExceptionCooldownDays, Value: 20},
		}
		assert.Error(t, p.Validate())
	})

	t.Run("allows same entity with different kinds", func(t *testing.T) {
		p := validPolicy()
		p.Exceptions = []EntityException{
			{EntityName: "SushiGo", Kind: ExceptionCooldownDays, Value: 10},
			{EntityName: "SushiGo", Kind: ExceptionDurationDays, Value: 14},
		}
		assert.NoError(t, p.Validate())
	})

	t.Run("cooldown exception of zero is allowed", func(t *testing.T) {
		p := validPolicy()
		p.Exceptions = []EntityException{
			{EntityName: "SushiGo", Kind: ExceptionCooldownDays, Value: 0},
		}
		assert.NoError(t, p.Validate())
	})
}

func TestEntityException_Matches(t *testing.T) {
	exc := EntityException{EntityName: "SushiGo", Kind: ExceptionCooldownDays, Value: 10}

	assert.True(t, exc.Matches("sushigo", ExceptionCooldownDays))
	assert.True(t, exc.Matches("SUSHIGO", ExceptionCooldownDays))
	assert.False(t, exc.Matches("SushiGo", ExceptionDurationDays))
	assert.False(t, exc.Matches("Sushi", ExceptionCooldownDays))
}
