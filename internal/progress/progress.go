// Package progress вычисляет прогресс обслуживания из текущего времени
// и записанного момента начала. Пакет не хранит состояния.
package progress

import (
	"math"
	"time"
)

// Label стадия обслуживания
type Label string

const (
	LabelStarting   Label = "starting"
	LabelInProgress Label = "in progress"
	LabelFinishing  Label = "finishing"
	LabelReady      Label = "ready"
)

// Progress результат вычисления
type Progress struct {
	Elapsed          time.Duration
	RemainingMinutes int
	Fraction         float64
	Label            Label
}

// Compute считает прогресс для (now, start, total).
// elapsed = clamp(now-start, 0, total), fraction = elapsed/total,
// remaining = ceil((total-elapsed) / 1m). При total <= 0 обслуживание считается завершенным.
func Compute(now, start time.Time, total time.Duration) Progress {
	if total <= 0 {
		return Progress{Fraction: 1, Label: LabelReady}
	}

	elapsed := now.Sub(start)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > total {
		elapsed = total
	}

	fraction := float64(elapsed) / float64(total)
	remaining := int(math.Ceil(float64(total-elapsed) / float64(time.Minute)))

	return Progress{
		Elapsed:          elapsed,
		RemainingMinutes: remaining,
		Fraction:         fraction,
		Label:            labelFor(fraction),
	}
}

func labelFor(fraction float64) Label {
	switch {
	case fraction >= 1:
		return LabelReady
	case fraction >= 0.7:
		return LabelFinishing
	case fraction >= 0.3:
		return LabelInProgress
	default:
		return LabelStarting
	}
}
