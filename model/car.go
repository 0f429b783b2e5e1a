package model

// MaxStride is the furthest a car travels in a single tick.
const MaxStride = 5

// Recorder receives the elapsed ticks of every delivered passenger.
type Recorder interface {
	Record(ticksTraveled int)
}

// Car is an elevator car. It carries passengers in the collection matching its
// current direction; the other collection stays empty under the
// one-direction-at-a-time policy.
type Car struct {
	ID             int       `json:"id"`
	Capacity       int       `json:"capacity"`
	Floor          int       `json:"floor"`
	Direction      Direction `json:"direction"`
	TotalBoarded   int       `json:"total_boarded"`
	TotalDelivered int       `json:"total_delivered"`

	onboard [2]*Onboard // indexed by Direction
}

// NewCar returns a car parked at floor 0 heading up.
func NewCar(id, capacity int) *Car {
	return &Car{
		ID:        id,
		Capacity:  capacity,
		Direction: Up,
		onboard:   [2]*Onboard{Up: NewOnboardFor(Up), Down: NewOnboardFor(Down)},
	}
}

// Onboard returns the collection used while travelling in direction d.
func (c *Car) Onboard(d Direction) *Onboard { return c.onboard[d] }

// Active returns the collection matching the current direction.
func (c *Car) Active() *Onboard { return c.onboard[c.Direction] }

// Occupancy is the number of passengers in both collections.
func (c *Car) Occupancy() int {
	return c.onboard[Up].Len() + c.onboard[Down].Len()
}

// RemainingCapacity returns how many more passengers can board.
func (c *Car) RemainingCapacity() int {
	rem := c.Capacity - c.Occupancy()
	if rem < 0 {
		return 0
	}
	return rem
}

// OccupancyRatio returns the fraction (0..1) of capacity in use.
func (c *Car) OccupancyRatio() float64 {
	if c.Capacity <= 0 {
		return 0
	}
	return float64(c.Occupancy()) / float64(c.Capacity)
}

// AgeOnboard ticks every passenger in the active collection.
func (c *Car) AgeOnboard() {
	c.Active().Each((*Passenger).Tick)
}

// NextFloor computes where the car goes this tick. An empty car runs up to
// MaxStride floors toward the end of the shaft in its direction; a loaded car
// heads for its nearest stop, covering at most MaxStride floors.
func (c *Car) NextFloor(topFloor int) int {
	next := c.Active().Peek()
	switch c.Direction {
	case Up:
		if next == nil || next.Destination-c.Floor > MaxStride {
			return min(c.Floor+MaxStride, topFloor)
		}
	case Down:
		if next == nil || c.Floor-next.Destination > MaxStride {
			return max(c.Floor-MaxStride, 0)
		}
	}
	return next.Destination
}

// Unload removes the passengers at the front of the active collection whose
// destination is the current floor, reporting each one to rec (which may be
// nil). It stops at the first passenger headed elsewhere.
func (c *Car) Unload(rec Recorder) []*Passenger {
	active := c.Active()
	var delivered []*Passenger
	for active.Len() > 0 && active.Peek().Destination == c.Floor {
		p := active.Pop()
		if rec != nil {
			rec.Record(p.TicksElapsed)
		}
		delivered = append(delivered, p)
	}
	c.TotalDelivered += len(delivered)
	return delivered
}

// Load boards passengers from the floor's queue for the current direction, in
// queue order, until the car is full or the queue is empty. Passengers waiting
// to travel the other way stay on the floor.
func (c *Car) Load(f *Floor) []*Passenger {
	if f == nil {
		return nil
	}
	queue := f.Waiting(c.Direction)
	active := c.Active()
	var boarded []*Passenger
	for c.Occupancy() < c.Capacity && queue.Len() > 0 {
		p := queue.Pop()
		active.Insert(p)
		boarded = append(boarded, p)
	}
	c.TotalBoarded += len(boarded)
	f.TotalBoarded += len(boarded)
	return boarded
}

// UpdateDirection turns the car around at the top and bottom floors.
func (c *Car) UpdateDirection(topFloor int) {
	switch c.Floor {
	case topFloor:
		c.Direction = Down
	case 0:
		c.Direction = Up
	}
}

// StepResult describes one dispatch step.
type StepResult struct {
	From      int
	To        int
	Delivered []*Passenger
	Boarded   []*Passenger
	Turned    bool
}

// Step runs one dispatch step: age riders, move, unload at the new floor, load
// from it, then turn around if the car reached either end of the shaft.
// floors is indexed by floor number and must hold at least two floors.
func (c *Car) Step(floors []*Floor, rec Recorder) StepResult {
	top := len(floors) - 1
	res := StepResult{From: c.Floor}
	c.AgeOnboard()
	c.Floor = c.NextFloor(top)
	res.To = c.Floor
	res.Delivered = c.Unload(rec)
	res.Boarded = c.Load(floors[c.Floor])
	dir := c.Direction
	c.UpdateDirection(top)
	res.Turned = dir != c.Direction
	return res
}
