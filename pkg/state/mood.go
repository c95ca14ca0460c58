package state

import "math"

// Mood bounds. Valence and arousal are clamped to [-1, 1] after every
// effect application.
const (
	MoodMin = -1.0
	MoodMax = 1.0
)

// neutralBand is the half-width of the region around the origin that
// reads as "neutral" instead of a quadrant tag.
const neutralBand = 0.2

// Mood is a valence/arousal pair. Valence is pleasant/unpleasant,
// arousal is energized/calm.
type Mood struct {
	Valence float64 `json:"valence"`
	Arousal float64 `json:"arousal"`
}

// Clamp forces both components into [MoodMin, MoodMax] and reports
// whether either component was out of range.
func (m *Mood) Clamp() bool {
	clamped := false
	if m.Valence < MoodMin || m.Valence > MoodMax {
		m.Valence = math.Max(MoodMin, math.Min(MoodMax, m.Valence))
		clamped = true
	}
	if m.Arousal < MoodMin || m.Arousal > MoodMax {
		m.Arousal = math.Max(MoodMin, math.Min(MoodMax, m.Arousal))
		clamped = true
	}
	return clamped
}

// Tags derives mood tags from the valence/arousal quadrant. A mood near
// the origin is "neutral"; otherwise the quadrant tag applies.
func (m Mood) Tags() []string {
	if math.Abs(m.Valence) < neutralBand && math.Abs(m.Arousal) < neutralBand {
		return []string{"neutral"}
	}
	switch {
	case m.Valence >= 0 && m.Arousal >= 0:
		return []string{"excited"}
	case m.Valence >= 0:
		return []string{"content"}
	case m.Arousal >= 0:
		return []string{"stressed"}
	default:
		return []string{"gloomy"}
	}
}
