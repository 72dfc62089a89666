package timeslot

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrInvalidInterval = errors.New("slot interval must be positive")
	ErrInvalidHours    = errors.New("opening time must be before closing time")
)

// Key uniquely identifies one bookable unit of capacity: one restaurant,
// one calendar date, one time of day.
type Key struct {
	RestaurantID uuid.UUID
	Date         Date
	Time         TimeOfDay
}

// Slot is a capacity row. AvailableSeats is mutated only through the
// inventory repository's conditional reserve/release statements; the entity
// itself is a plan/readback value, not a live counter.
type Slot struct {
	Key            Key
	TotalCapacity  int
	AvailableSeats int
	IsOpen         bool
}

func NewSlot(key Key, capacity int) (Slot, error) {
	if capacity <= 0 {
		return Slot{}, ErrInvalidCapacity
	}
	return Slot{
		Key:            key,
		TotalCapacity:  capacity,
		AvailableSeats: capacity,
		IsOpen:         true,
	}, nil
}

// GenerationPlan describes a regeneration run for one restaurant: slot rows
// for every day in [From, From+Days] at IntervalMin granularity between
// Opening (inclusive) and Closing (exclusive).
type GenerationPlan struct {
	RestaurantID uuid.UUID
	From         Date
	Days         int
	Opening      TimeOfDay
	Closing      TimeOfDay
	IntervalMin  int
	Capacity     int
}

// Build expands the plan into slot rows. Re-running the generator for an
// existing slot key overwrites capacity at the persistence layer (upsert),
// so Build itself is pure.
func (p GenerationPlan) Build() ([]Slot, error) {
	if p.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if p.IntervalMin <= 0 {
		return nil, ErrInvalidInterval
	}
	if !p.Opening.Before(p.Closing) {
		return nil, ErrInvalidHours
	}

	times := make([]TimeOfDay, 0)
	for t := p.Opening; t.Before(p.Closing); t = t.AddMinutes(p.IntervalMin) {
		times = append(times, t)
	}

	slots := make([]Slot, 0, (p.Days+1)*len(times))
	for offset := 0; offset <= p.Days; offset++ {
		date := p.From.AddDays(offset)
		for _, t := range times {
			slot, err := NewSlot(Key{RestaurantID: p.RestaurantID, Date: date, Time: t}, p.Capacity)
			if err != nil {
				return nil, err
			}
			slots = append(slots, slot)
		}
	}
	return slots, nil
}
