package model

import (
	"math/rand"
	"testing"
)

func TestNewPassengerDestinationInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, top := range []int{1, 2, 9, 31} {
		for origin := 0; origin <= top; origin++ {
			for i := 0; i < 200; i++ {
				p := NewPassenger(rng, origin, top)
				if p.Destination == p.Origin {
					t.Fatalf("top=%d origin=%d: destination equals origin", top, origin)
				}
				if p.Destination < 0 || p.Destination > top {
					t.Fatalf("top=%d origin=%d: destination %d out of range", top, origin, p.Destination)
				}
			}
		}
	}
}

func TestNewPassengerTwoFloors(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if p := NewPassenger(rng, 0, 1); p.Destination != 1 || p.Direction() != Up {
		t.Errorf("from ground: got %+v", p)
	}
	if p := NewPassenger(rng, 1, 1); p.Destination != 0 || p.Direction() != Down {
		t.Errorf("from top: got %+v", p)
	}
}

func TestNewPassengerPanicsOnSingleFloor(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for a one-floor building")
		}
	}()
	NewPassenger(rand.New(rand.NewSource(1)), 0, 0)
}

func TestPassengerTick(t *testing.T) {
	p := &Passenger{Origin: 2, Destination: 4}
	for i := 0; i < 3; i++ {
		p.Tick()
	}
	if p.TicksElapsed != 3 {
		t.Errorf("TicksElapsed = %d, want 3", p.TicksElapsed)
	}
}

func TestDirectionString(t *testing.T) {
	if Up.String() != "up" || Down.String() != "down" {
		t.Errorf("unexpected names %q %q", Up, Down)
	}
	if Up.Opposite() != Down || Down.Opposite() != Up {
		t.Error("Opposite is not an involution")
	}
	b, _ := Down.MarshalText()
	if string(b) != "down" {
		t.Errorf("MarshalText = %s", b)
	}
}
