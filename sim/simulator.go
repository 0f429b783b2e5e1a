package sim

import (
	"math/rand"

	"github.com/rs/zerolog"

	"liftsim/config"
	"liftsim/model"
)

// Simulator owns the floors and cars of one run and advances them tick by tick.
type Simulator struct {
	Config      config.Config
	Floors      []*model.Floor
	Cars        []*model.Car
	RNG         *rand.Rand
	Seed        int64
	Tick        int
	PassengerID int
	Generated   int
	Stats       *Stats

	observer Observer
	log      zerolog.Logger
}

// Option customises a Simulator.
type Option func(*Simulator)

// WithObserver registers a callback for every event of the run.
func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observer = o }
}

// WithLogger sets the logger used for run progress.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Simulator) { s.log = l }
}

// NewSimulator builds the floors and cars described by cfg. Every car starts
// at the ground floor heading up.
func NewSimulator(cfg config.Config, seed int64, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulator{
		Config: cfg,
		Floors: make([]*model.Floor, cfg.Floors),
		Cars:   make([]*model.Car, cfg.Elevators),
		RNG:    rand.New(rand.NewSource(seed)),
		Seed:   seed,
		Stats:  &Stats{},
		log:    zerolog.Nop(),
	}
	for i := range s.Floors {
		s.Floors[i] = model.NewFloor(i, cfg.Structure)
	}
	for i := range s.Cars {
		s.Cars[i] = model.NewCar(i+1, cfg.ElevatorCapacity)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Done reports whether the configured number of ticks has elapsed.
func (s *Simulator) Done() bool { return s.Tick >= s.Config.Duration }

// Step advances the simulation by one tick: arrivals and aging on every floor
// first, then one dispatch step per car in id order.
func (s *Simulator) Step() {
	s.Tick++
	s.emit(TickEvent{Tick: s.Tick})
	s.generateArrivals()
	for _, car := range s.Cars {
		s.emitFloorStatus(car.ID)
		s.dispatch(car)
	}
}

// Run steps until the configured duration and returns the summary.
func (s *Simulator) Run() Summary {
	s.log.Info().
		Int64("seed", s.Seed).
		Int("floors", s.Config.Floors).
		Int("elevators", s.Config.Elevators).
		Int("duration", s.Config.Duration).
		Msg("simulation started")
	s.emit(InitEvent{Seed: s.Seed, Config: s.Config})
	for !s.Done() {
		s.Step()
	}
	return s.Finish()
}

// Finish emits the closing event and returns the summary.
func (s *Simulator) Finish() Summary {
	sum := s.Summary()
	s.log.Info().
		Int64("delivered", sum.Delivered).
		Int("generated", sum.Generated).
		Int("ticks", sum.Ticks).
		Msg("simulation finished")
	s.emit(DoneEvent{Summary: sum})
	return sum
}

func (s *Simulator) dispatch(car *model.Car) {
	res := car.Step(s.Floors, s.Stats)
	if res.To != res.From {
		dir := car.Direction
		if res.Turned {
			dir = dir.Opposite()
		}
		s.emit(MoveEvent{Tick: s.Tick, CarID: car.ID, From: res.From, To: res.To, Direction: dir})
	}
	if n := len(res.Delivered); n > 0 {
		ticks := make([]int, n)
		for i, p := range res.Delivered {
			ticks[i] = p.TicksElapsed
			s.log.Debug().Int("car", car.ID).Int("floor", res.To).Int("passenger", p.ID).Int("ticks", p.TicksElapsed).Msg("delivered")
		}
		s.emit(DeliverEvent{Tick: s.Tick, CarID: car.ID, Floor: res.To, Delivered: n, TicksTraveled: ticks, Onboard: car.Occupancy(), Occupancy: car.OccupancyRatio(), Served: s.Stats.Count})
	}
	if len(res.Boarded) > 0 {
		f := s.Floors[res.To]
		s.emit(BoardEvent{Tick: s.Tick, CarID: car.ID, Floor: res.To, Boarded: len(res.Boarded), Onboard: car.Occupancy(), Occupancy: car.OccupancyRatio(), WaitingUp: f.WaitingUp.Len(), WaitingDown: f.WaitingDown.Len()})
	}
	if res.Turned {
		s.emit(DirectionEvent{Tick: s.Tick, CarID: car.ID, Floor: res.To, Direction: car.Direction})
	}
}

func (s *Simulator) emitFloorStatus(carID int) {
	if s.observer == nil {
		return
	}
	for _, f := range s.Floors {
		s.emit(FloorStatusEvent{Tick: s.Tick, CarID: carID, Floor: f.Index, WaitingUp: f.WaitingUp.Len(), WaitingDown: f.WaitingDown.Len()})
	}
}

func (s *Simulator) emit(e Event) {
	if s.observer != nil {
		s.observer(e)
	}
}

// Waiting counts passengers still queued on any floor.
func (s *Simulator) Waiting() int {
	n := 0
	for _, f := range s.Floors {
		n += f.WaitingCount()
	}
	return n
}

// Onboard counts passengers still riding any car.
func (s *Simulator) Onboard() int {
	n := 0
	for _, c := range s.Cars {
		n += c.Occupancy()
	}
	return n
}

// Summary snapshots the run's counters and travel-time statistics.
func (s *Simulator) Summary() Summary {
	sum := Summary{
		Seed:      s.Seed,
		Ticks:     s.Tick,
		Generated: s.Generated,
		Waiting:   s.Waiting(),
		Onboard:   s.Onboard(),
		Stats:     *s.Stats,
	}
	sum.fill()
	return sum
}
