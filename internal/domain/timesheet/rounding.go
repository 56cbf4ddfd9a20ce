package timesheet

import "math"

// RoundingPolicy controls how raw entry durations are rounded when they are
// surfaced in summaries. The stored duration is never rounded - the ledger
// keeps ground truth.
type RoundingPolicy string

const (
	RoundingNone      RoundingPolicy = "NONE"
	RoundingNearest5  RoundingPolicy = "NEAREST_5"
	RoundingNearest15 RoundingPolicy = "NEAREST_15"
)

// IsValid checks if the policy is a known rounding policy
func (p RoundingPolicy) IsValid() bool {
	switch p {
	case RoundingNone, RoundingNearest5, RoundingNearest15:
		return true
	}
	return false
}

// String returns the string representation of the policy
func (p RoundingPolicy) String() string {
	return string(p)
}

// step returns the rounding step in minutes, 0 for identity
func (p RoundingPolicy) step() int {
	switch p {
	case RoundingNearest5:
		return 5
	case RoundingNearest15:
		return 15
	}
	return 0
}

// Apply rounds minutes to the nearest multiple of the policy's step,
// half rounding up. RoundingNone (and any unknown policy) is identity.
// Negative inputs are clamped to zero.
func (p RoundingPolicy) Apply(minutes int) int {
	if minutes < 0 {
		minutes = 0
	}
	step := p.step()
	if step == 0 {
		return minutes
	}
	return int(math.Round(float64(minutes)/float64(step))) * step
}
