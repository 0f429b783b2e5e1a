package model

import "math/rand"

// Floor holds separate FIFO queues for upward- and downward-bound passengers.
type Floor struct {
	Index         int   `json:"index"`
	WaitingUp     Queue `json:"-"`
	WaitingDown   Queue `json:"-"`
	TotalArrivals int   `json:"total_arrivals"`
	TotalBoarded  int   `json:"total_boarded"`
}

// NewFloor builds an empty floor whose queues use the given structure.
func NewFloor(index int, s Structure) *Floor {
	return &Floor{
		Index:       index,
		WaitingUp:   NewQueue(s),
		WaitingDown: NewQueue(s),
	}
}

// Waiting returns the queue of passengers travelling in direction d.
func (f *Floor) Waiting(d Direction) Queue {
	if d == Down {
		return f.WaitingDown
	}
	return f.WaitingUp
}

// Enqueue appends a passenger to the queue matching its direction.
func (f *Floor) Enqueue(p *Passenger) {
	if p == nil {
		return
	}
	f.TotalArrivals++
	f.Waiting(p.Direction()).Push(p)
}

// SpawnArrival runs one Bernoulli trial with the given probability. On success a
// new passenger is created at this floor, enqueued and returned; otherwise nil.
func (f *Floor) SpawnArrival(rng *rand.Rand, probability float64, topFloor int) *Passenger {
	if rng.Float64() >= probability {
		return nil
	}
	p := NewPassenger(rng, f.Index, topFloor)
	f.Enqueue(p)
	return p
}

// AgeWaiting ticks every passenger waiting in either queue.
func (f *Floor) AgeWaiting() {
	f.WaitingUp.Each((*Passenger).Tick)
	f.WaitingDown.Each((*Passenger).Tick)
}

// WaitingCount returns the number of passengers waiting in both directions.
func (f *Floor) WaitingCount() int {
	return f.WaitingUp.Len() + f.WaitingDown.Len()
}
