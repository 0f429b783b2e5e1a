package model

import "math/rand"

// Passenger is a single trip request from Origin to Destination.
// TicksElapsed counts every tick spent waiting on a floor or riding a car.
type Passenger struct {
	ID           int `json:"id"`
	Origin       int `json:"origin"`
	Destination  int `json:"destination"`
	TicksElapsed int `json:"ticks_elapsed"`
}

// NewPassenger creates a passenger starting at origin with a destination drawn
// uniformly from [0, topFloor], resampling until it differs from origin.
// topFloor must be at least 1.
func NewPassenger(rng *rand.Rand, origin, topFloor int) *Passenger {
	if topFloor < 1 {
		panic("model: a building needs at least two floors")
	}
	dest := origin
	for dest == origin {
		dest = rng.Intn(topFloor + 1)
	}
	return &Passenger{Origin: origin, Destination: dest}
}

// Direction reports which way the passenger wants to travel.
func (p *Passenger) Direction() Direction {
	if p.Destination > p.Origin {
		return Up
	}
	return Down
}

// Tick advances the elapsed counter by one.
func (p *Passenger) Tick() {
	p.TicksElapsed++
}
