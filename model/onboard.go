package model

import (
	"slices"
	"sort"
)

// Onboard is a collection of riding passengers kept ordered by destination.
// The order is set by a comparator so one type serves both travel directions:
// the front is always the next stop in the car's direction.
type Onboard struct {
	before func(a, b int) bool
	items  []*Passenger
}

// Ascending orders destinations lowest first.
func Ascending(a, b int) bool { return a < b }

// Descending orders destinations highest first.
func Descending(a, b int) bool { return a > b }

// NewOnboard returns an empty collection ordered by before.
func NewOnboard(before func(a, b int) bool) *Onboard {
	return &Onboard{before: before}
}

// NewOnboardFor returns the collection used while travelling in direction d.
func NewOnboardFor(d Direction) *Onboard {
	if d == Down {
		return NewOnboard(Descending)
	}
	return NewOnboard(Ascending)
}

// Insert places p after every passenger whose destination does not come after
// p's, so equal destinations keep their boarding order.
func (o *Onboard) Insert(p *Passenger) {
	i := sort.Search(len(o.items), func(i int) bool {
		return o.before(p.Destination, o.items[i].Destination)
	})
	o.items = slices.Insert(o.items, i, p)
}

// Peek returns the front passenger or nil.
func (o *Onboard) Peek() *Passenger {
	if len(o.items) == 0 {
		return nil
	}
	return o.items[0]
}

// Pop removes and returns the front passenger or nil.
func (o *Onboard) Pop() *Passenger {
	if len(o.items) == 0 {
		return nil
	}
	p := o.items[0]
	o.items[0] = nil
	o.items = o.items[1:]
	return p
}

func (o *Onboard) Len() int { return len(o.items) }

// Each visits passengers front to back.
func (o *Onboard) Each(fn func(p *Passenger)) {
	for _, p := range o.items {
		fn(p)
	}
}

// Destinations lists destinations in collection order.
func (o *Onboard) Destinations() []int {
	out := make([]int, len(o.items))
	for i, p := range o.items {
		out[i] = p.Destination
	}
	return out
}

// Sorted reports whether the collection respects its ordering.
func (o *Onboard) Sorted() bool {
	for i := 1; i < len(o.items); i++ {
		if o.before(o.items[i].Destination, o.items[i-1].Destination) {
			return false
		}
	}
	return true
}
