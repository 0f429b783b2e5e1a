package model

import "fmt"

// Direction is the travel direction of a car or of a trip request.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Up {
		return Down
	}
	return Up
}

// MarshalText encodes the direction as "up" or "down".
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
