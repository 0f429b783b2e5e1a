package model

import (
	"container/list"
	"fmt"
)

// Structure selects the representation backing a floor's waiting queues.
type Structure string

const (
	Linked Structure = "linked"
	Array  Structure = "array"
)

// ParseStructure validates a structure name.
func ParseStructure(s string) (Structure, error) {
	switch Structure(s) {
	case Linked, Array:
		return Structure(s), nil
	}
	return "", fmt.Errorf("unknown structure %q (want linked or array)", s)
}

// Queue is a FIFO of waiting passengers.
type Queue interface {
	Push(p *Passenger)
	// Pop removes and returns the front passenger, or nil when empty.
	Pop() *Passenger
	Peek() *Passenger
	Len() int
	// Each visits passengers front to back.
	Each(fn func(p *Passenger))
}

// NewQueue returns an empty queue with the given representation.
// Unknown structures fall back to Linked.
func NewQueue(s Structure) Queue {
	if s == Array {
		return &arrayQueue{}
	}
	return &linkedQueue{l: list.New()}
}

type linkedQueue struct {
	l *list.List
}

func (q *linkedQueue) Push(p *Passenger) { q.l.PushBack(p) }

func (q *linkedQueue) Pop() *Passenger {
	e := q.l.Front()
	if e == nil {
		return nil
	}
	return q.l.Remove(e).(*Passenger)
}

func (q *linkedQueue) Peek() *Passenger {
	e := q.l.Front()
	if e == nil {
		return nil
	}
	return e.Value.(*Passenger)
}

func (q *linkedQueue) Len() int { return q.l.Len() }

func (q *linkedQueue) Each(fn func(p *Passenger)) {
	for e := q.l.Front(); e != nil; e = e.Next() {
		fn(e.Value.(*Passenger))
	}
}

// arrayQueue keeps passengers in a slice with a moving head; the backing
// array is compacted once the consumed prefix dominates.
type arrayQueue struct {
	items []*Passenger
	head  int
}

func (q *arrayQueue) Push(p *Passenger) { q.items = append(q.items, p) }

func (q *arrayQueue) Pop() *Passenger {
	if q.head >= len(q.items) {
		return nil
	}
	p := q.items[q.head]
	q.items[q.head] = nil
	q.head++
	if q.head == len(q.items) {
		q.items = q.items[:0]
		q.head = 0
	} else if q.head > 32 && q.head*2 > len(q.items) {
		n := copy(q.items, q.items[q.head:])
		clear(q.items[n:])
		q.items = q.items[:n]
		q.head = 0
	}
	return p
}

func (q *arrayQueue) Peek() *Passenger {
	if q.head >= len(q.items) {
		return nil
	}
	return q.items[q.head]
}

func (q *arrayQueue) Len() int { return len(q.items) - q.head }

func (q *arrayQueue) Each(fn func(p *Passenger)) {
	for _, p := range q.items[q.head:] {
		fn(p)
	}
}
