package domain

import "time"

// Slot candidate start time at a post
type Slot struct {
	StartAt     time.Time
	EndAt       time.Time
	IsAvailable bool
}

// Overlaps проверяет пересечение полуинтервалов [aStart, aEnd) и [bStart, bEnd).
// Касание границами пересечением не считается.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
