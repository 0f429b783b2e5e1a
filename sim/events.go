package sim

import (
	"liftsim/config"
	"liftsim/model"
)

// Event is a marker for all simulation events.
type Event interface{ isEvent() }

// Observer receives events as the simulation produces them.
type Observer func(Event)

// InitEvent signals the start of a run.
type InitEvent struct {
	Seed   int64         `json:"seed"`
	Config config.Config `json:"config"`
}

func (InitEvent) isEvent() {}

// TickEvent opens a new tick.
type TickEvent struct {
	Tick int `json:"tick"`
}

func (TickEvent) isEvent() {}

// ArrivalEvent reports a passenger appearing on a floor.
type ArrivalEvent struct {
	Tick        int `json:"tick"`
	PassengerID int `json:"passenger_id"`
	Origin      int `json:"origin"`
	Destination int `json:"destination"`
}

func (ArrivalEvent) isEvent() {}

// FloorStatusEvent carries one floor's queue sizes as seen by a car right
// before its dispatch step.
type FloorStatusEvent struct {
	Tick        int `json:"tick"`
	CarID       int `json:"car_id"`
	Floor       int `json:"floor"`
	WaitingUp   int `json:"waiting_up"`
	WaitingDown int `json:"waiting_down"`
}

func (FloorStatusEvent) isEvent() {}

// MoveEvent indicates a car travelling between floors.
type MoveEvent struct {
	Tick      int             `json:"tick"`
	CarID     int             `json:"car_id"`
	From      int             `json:"from"`
	To        int             `json:"to"`
	Direction model.Direction `json:"direction"`
}

func (MoveEvent) isEvent() {}

// DeliverEvent indicates passengers leaving a car at their destination.
type DeliverEvent struct {
	Tick          int     `json:"tick"`
	CarID         int     `json:"car_id"`
	Floor         int     `json:"floor"`
	Delivered     int     `json:"delivered"`
	TicksTraveled []int   `json:"ticks_traveled"`
	Onboard       int     `json:"onboard"`
	Occupancy     float64 `json:"occupancy"`
	Served        int64   `json:"served"`
}

func (DeliverEvent) isEvent() {}

// BoardEvent indicates passengers entering a car.
type BoardEvent struct {
	Tick        int     `json:"tick"`
	CarID       int     `json:"car_id"`
	Floor       int     `json:"floor"`
	Boarded     int     `json:"boarded"`
	Onboard     int     `json:"onboard"`
	Occupancy   float64 `json:"occupancy"`
	WaitingUp   int     `json:"waiting_up"`
	WaitingDown int     `json:"waiting_down"`
}

func (BoardEvent) isEvent() {}

// DirectionEvent indicates a car turning around at the end of the shaft.
type DirectionEvent struct {
	Tick      int             `json:"tick"`
	CarID     int             `json:"car_id"`
	Floor     int             `json:"floor"`
	Direction model.Direction `json:"direction"`
}

func (DirectionEvent) isEvent() {}

// DoneEvent signals completion and carries the run summary.
type DoneEvent struct {
	Summary Summary `json:"summary"`
}

func (DoneEvent) isEvent() {}
