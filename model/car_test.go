package model

import (
	"math/rand"
	"slices"
	"testing"
)

type sampleRecorder struct{ samples []int }

func (r *sampleRecorder) Record(ticks int) { r.samples = append(r.samples, ticks) }

func buildFloors(n int) []*Floor {
	floors := make([]*Floor, n)
	for i := range floors {
		floors[i] = NewFloor(i, Linked)
	}
	return floors
}

func TestNewCar(t *testing.T) {
	c := NewCar(1, 10)
	if c.Floor != 0 || c.Direction != Up || c.Occupancy() != 0 || c.RemainingCapacity() != 10 {
		t.Errorf("unexpected initial car %+v", c)
	}
}

func TestOccupancyRatio(t *testing.T) {
	c := NewCar(1, 4)
	if r := c.OccupancyRatio(); r != 0 {
		t.Errorf("empty car ratio %g", r)
	}
	c.Active().Insert(&Passenger{Origin: 0, Destination: 3})
	if r := c.OccupancyRatio(); r != 0.25 {
		t.Errorf("ratio %g, want 0.25", r)
	}
	if r := (&Car{}).OccupancyRatio(); r != 0 {
		t.Errorf("zero-capacity car ratio %g", r)
	}
}

func TestUnloadRemovesMatchingPrefix(t *testing.T) {
	c := NewCar(1, 10)
	c.Floor = 5
	for i, d := range []int{8, 5, 5} {
		c.Active().Insert(&Passenger{ID: i, Destination: d, TicksElapsed: 10 + i})
	}
	rec := &sampleRecorder{}
	delivered := c.Unload(rec)
	if len(delivered) != 2 {
		t.Fatalf("delivered %d, want 2", len(delivered))
	}
	if got := c.Active().Destinations(); !slices.Equal(got, []int{8}) {
		t.Errorf("remaining %v, want [8]", got)
	}
	if !slices.Equal(rec.samples, []int{11, 12}) {
		t.Errorf("recorded %v, want [11 12]", rec.samples)
	}
	if c.TotalDelivered != 2 {
		t.Errorf("TotalDelivered = %d", c.TotalDelivered)
	}
}

func TestUnloadNoMatchAndEmpty(t *testing.T) {
	c := NewCar(1, 4)
	c.Floor = 3
	if got := c.Unload(nil); len(got) != 0 {
		t.Errorf("empty car delivered %d", len(got))
	}
	c.Active().Insert(&Passenger{Destination: 6})
	if got := c.Unload(nil); len(got) != 0 {
		t.Errorf("delivered %d passengers bound for floor 6 at floor 3", len(got))
	}
}

func TestUnloadUsesActiveCollectionOnly(t *testing.T) {
	c := NewCar(1, 4)
	c.Floor = 2
	c.Direction = Down
	c.Onboard(Down).Insert(&Passenger{Destination: 2})
	c.Onboard(Down).Insert(&Passenger{Destination: 0})
	if got := c.Unload(nil); len(got) != 1 {
		t.Fatalf("delivered %d, want 1", len(got))
	}
	if got := c.Onboard(Down).Destinations(); !slices.Equal(got, []int{0}) {
		t.Errorf("remaining %v, want [0]", got)
	}
}

func TestLoadRespectsCapacityAndDirection(t *testing.T) {
	f := NewFloor(0, Array)
	for _, d := range []int{4, 2, 7} {
		f.Enqueue(&Passenger{Origin: 0, Destination: d})
	}
	c := NewCar(1, 2)
	boarded := c.Load(f)
	if len(boarded) != 2 || c.Occupancy() != 2 {
		t.Fatalf("boarded %d occupancy %d, want 2", len(boarded), c.Occupancy())
	}
	if boarded[0].Destination != 4 || boarded[1].Destination != 2 {
		t.Errorf("boarding did not follow queue order: %d %d", boarded[0].Destination, boarded[1].Destination)
	}
	if got := c.Active().Destinations(); !slices.Equal(got, []int{2, 4}) {
		t.Errorf("onboard %v, want [2 4]", got)
	}
	if f.WaitingUp.Len() != 1 || f.WaitingUp.Peek().Destination != 7 {
		t.Error("unboarded passenger lost or reordered")
	}
	if got := c.Load(f); len(got) != 0 {
		t.Errorf("full car boarded %d", len(got))
	}
	if f.TotalBoarded != 2 || c.TotalBoarded != 2 {
		t.Errorf("counters floor=%d car=%d", f.TotalBoarded, c.TotalBoarded)
	}
}

func TestLoadIgnoresOppositeDirection(t *testing.T) {
	f := NewFloor(5, Linked)
	f.Enqueue(&Passenger{Origin: 5, Destination: 1})
	f.Enqueue(&Passenger{Origin: 5, Destination: 2})
	c := NewCar(1, 10)
	c.Floor = 5
	if got := c.Load(f); len(got) != 0 {
		t.Fatalf("up car boarded %d down passengers", len(got))
	}
	c.Direction = Down
	if got := c.Load(f); len(got) != 2 {
		t.Fatalf("down car boarded %d, want 2", len(got))
	}
	if c.Onboard(Up).Len() != 0 {
		t.Error("down passengers landed in the up collection")
	}
	if got := c.Onboard(Down).Destinations(); !slices.Equal(got, []int{2, 1}) {
		t.Errorf("onboard %v, want [2 1]", got)
	}
}

func TestNextFloor(t *testing.T) {
	const top = 31
	tests := []struct {
		name  string
		floor int
		dir   Direction
		dests []int
		want  int
	}{
		{"empty up", 0, Up, nil, 5},
		{"empty up clamps to top", 29, Up, nil, 31},
		{"empty up at top", 31, Up, nil, 31},
		{"empty down", 20, Down, nil, 15},
		{"empty down clamps to ground", 3, Down, nil, 0},
		{"up far stop", 2, Up, []int{20}, 7},
		{"up stop exactly five away", 2, Up, []int{7}, 7},
		{"up near stop", 2, Up, []int{4, 30}, 4},
		{"down far stop", 25, Down, []int{3}, 20},
		{"down near stop", 10, Down, []int{8, 1}, 8},
		{"down stop exactly five away", 10, Down, []int{5}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCar(1, 10)
			c.Floor = tt.floor
			c.Direction = tt.dir
			for _, d := range tt.dests {
				c.Active().Insert(&Passenger{Destination: d})
			}
			if got := c.NextFloor(top); got != tt.want {
				t.Errorf("NextFloor = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUpdateDirection(t *testing.T) {
	const top = 9
	for floor := 0; floor <= top; floor++ {
		for _, dir := range []Direction{Up, Down} {
			c := NewCar(1, 1)
			c.Floor = floor
			c.Direction = dir
			c.UpdateDirection(top)
			want := dir
			switch floor {
			case 0:
				want = Up
			case top:
				want = Down
			}
			if c.Direction != want {
				t.Errorf("floor %d dir %s: got %s, want %s", floor, dir, c.Direction, want)
			}
		}
	}
}

func TestStepSequence(t *testing.T) {
	floors := buildFloors(10)
	rider := &Passenger{ID: 1, Origin: 5, Destination: 8}
	floors[5].Enqueue(rider)
	floors[8].Enqueue(&Passenger{ID: 2, Origin: 8, Destination: 9})
	floors[8].Enqueue(&Passenger{ID: 3, Origin: 8, Destination: 1})
	c := NewCar(1, 4)
	rec := &sampleRecorder{}

	res := c.Step(floors, rec)
	if res.From != 0 || res.To != 5 || len(res.Boarded) != 1 {
		t.Fatalf("tick 1: %+v", res)
	}
	res = c.Step(floors, rec)
	if res.To != 8 || len(res.Delivered) != 1 || len(res.Boarded) != 1 {
		t.Fatalf("tick 2: %+v", res)
	}
	if !slices.Equal(rec.samples, []int{1}) {
		t.Errorf("recorded %v, want [1]", rec.samples)
	}
	res = c.Step(floors, rec)
	if res.To != 9 || !res.Turned || c.Direction != Down || len(res.Delivered) != 1 {
		t.Fatalf("tick 3: %+v dir=%s", res, c.Direction)
	}
	res = c.Step(floors, rec)
	if res.To != 4 || len(res.Boarded) != 0 {
		t.Fatalf("tick 4: %+v", res)
	}
	if floors[8].WaitingDown.Len() != 1 {
		t.Error("down passenger at floor 8 was boarded by an up car")
	}
}

func TestStepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	const n = 16
	floors := buildFloors(n)
	cars := []*Car{NewCar(1, 3), NewCar(2, 1)}
	for tick := 0; tick < 2000; tick++ {
		for _, f := range floors {
			f.SpawnArrival(rng, 0.2, n-1)
			f.AgeWaiting()
		}
		for _, c := range cars {
			prev := c.Floor
			res := c.Step(floors, nil)
			if d := res.To - prev; d > MaxStride || d < -MaxStride {
				t.Fatalf("car %d moved %d floors", c.ID, d)
			}
			if c.Floor < 0 || c.Floor >= n {
				t.Fatalf("car %d left the shaft: %d", c.ID, c.Floor)
			}
			if c.Occupancy() > c.Capacity {
				t.Fatalf("car %d over capacity", c.ID)
			}
			if c.Onboard(Up).Len() > 0 && c.Onboard(Down).Len() > 0 {
				t.Fatalf("car %d carries passengers in both collections", c.ID)
			}
			if !c.Onboard(Up).Sorted() || !c.Onboard(Down).Sorted() {
				t.Fatalf("car %d onboard collection unsorted", c.ID)
			}
			if res.Turned && c.Floor != 0 && c.Floor != n-1 {
				t.Fatalf("car %d turned at floor %d", c.ID, c.Floor)
			}
		}
	}
}
