package timesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundingPolicyIsValid(t *testing.T) {
	assert.True(t, RoundingNone.IsValid())
	assert.True(t, RoundingNearest5.IsValid())
	assert.True(t, RoundingNearest15.IsValid())
	assert.False(t, RoundingPolicy("NEAREST_10").IsValid())
	assert.False(t, RoundingPolicy("").IsValid())
}

func TestRoundingPolicyApply(t *testing.T) {
	t.Run("none is identity", func(t *testing.T) {
		assert.Equal(t, 0, RoundingNone.Apply(0))
		assert.Equal(t, 1, RoundingNone.Apply(1))
		assert.Equal(t, 52, RoundingNone.Apply(52))
		assert.Equal(t, 165, RoundingNone.Apply(165))
	})

	t.Run("nearest 5 rounds to closest multiple", func(t *testing.T) {
		assert.Equal(t, 50, RoundingNearest5.Apply(52))
		assert.Equal(t, 55, RoundingNearest5.Apply(53))
		assert.Equal(t, 0, RoundingNearest5.Apply(2))
		assert.Equal(t, 5, RoundingNearest5.Apply(3))
		assert.Equal(t, 60, RoundingNearest5.Apply(60))
	})

	t.Run("nearest 15 rounds to closest multiple", func(t *testing.T) {
		assert.Equal(t, 45, RoundingNearest15.Apply(52))
		assert.Equal(t, 60, RoundingNearest15.Apply(53))
		assert.Equal(t, 0, RoundingNearest15.Apply(7))
		assert.Equal(t, 15, RoundingNearest15.Apply(8))
		assert.Equal(t, 165, RoundingNearest15.Apply(165))
	})

	t.Run("boundary between steps", func(t *testing.T) {
		assert.Equal(t, 15, RoundingNearest15.Apply(22))
		assert.Equal(t, 30, RoundingNearest15.Apply(23))
	})

	t.Run("negatives clamp to zero", func(t *testing.T) {
		assert.Equal(t, 0, RoundingNone.Apply(-5))
		assert.Equal(t, 0, RoundingNearest15.Apply(-30))
	})

	t.Run("unknown policy is identity", func(t *testing.T) {
		assert.Equal(t, 52, RoundingPolicy("bogus").Apply(52))
	})
}
