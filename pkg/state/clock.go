package state

import "math"

// SecondsPerDay is the length of one simulated day.
const SecondsPerDay = 86400.0

// Time-of-day buckets, each a six-hour span.
const (
	BucketNight     = "night"     // [00:00, 06:00)
	BucketMorning   = "morning"   // [06:00, 12:00)
	BucketAfternoon = "afternoon" // [12:00, 18:00)
	BucketEvening   = "evening"   // [18:00, 24:00)
)

// SecondsOfDay reduces a world time to its position within the day.
func SecondsOfDay(worldTime float64) float64 {
	s := math.Mod(worldTime, SecondsPerDay)
	if s < 0 {
		s += SecondsPerDay
	}
	return s
}

// MinutesOfDay reduces a world time to minutes past midnight.
func MinutesOfDay(worldTime float64) float64 {
	return SecondsOfDay(worldTime) / 60.0
}

// TimeOfDayBucket returns the bucket name for a world time.
func TimeOfDayBucket(worldTime float64) string {
	switch h := SecondsOfDay(worldTime) / 3600.0; {
	case h < 6:
		return BucketNight
	case h < 12:
		return BucketMorning
	case h < 18:
		return BucketAfternoon
	default:
		return BucketEvening
	}
}
