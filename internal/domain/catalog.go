package domain

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-PostBookingService/pkg/types"
)

// Service purchasable offering of the business
type Service struct {
	ID              int64
	Name            string
	Price           float64
	DurationMinutes int
	Category        *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Duration длительность услуги
func (s *Service) Duration() time.Duration {
	return time.Duration(s.DurationMinutes) * time.Minute
}

// Post bookable physical resource (service bay) with its own working hours
type Post struct {
	ID              int64
	Name            string
	IsEnabled       bool
	WorkStart       types.TimeString
	WorkEnd         types.TimeString
	IntervalMinutes int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Interval шаг сетки слотов
func (p *Post) Interval() time.Duration {
	return time.Duration(p.IntervalMinutes) * time.Minute
}

// Window рабочее окно поста на календарную дату date в часовом поясе бизнеса loc
func (p *Post) Window(date time.Time, loc *time.Location) (start, end time.Time, err error) {
	start, err = p.WorkStart.On(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("post %d: work start: %w", p.ID, err)
	}
	end, err = p.WorkEnd.On(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("post %d: work end: %w", p.ID, err)
	}
	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("post %d: work end %s is not after work start %s", p.ID, p.WorkEnd, p.WorkStart)
	}
	return start, end, nil
}

// Fits returns true if [start, end) lies inside the post working window of the start's local date
func (p *Post) Fits(start, end time.Time, loc *time.Location) (bool, error) {
	windowStart, windowEnd, err := p.Window(start.In(loc), loc)
	if err != nil {
		return false, err
	}
	return !start.Before(windowStart) && !end.After(windowEnd), nil
}
