package feather2d

import (
	"github.com/akmonengine/feather2d/actor"
	"github.com/akmonengine/feather2d/constraint"
)

const (
	COLLISION_ENTER EventType = iota
	COLLISION_STAY
	COLLISION_EXIT
)

type pairKey struct {
	bodyA *actor.Polygon
	bodyB *actor.Polygon
}

// makePairKey creates a normalized pair key, ordered by registry index
func makePairKey(bodyA, bodyB *actor.Polygon) pairKey {
	if bodyB.Index < bodyA.Index {
		bodyA, bodyB = bodyB, bodyA
	}

	return pairKey{bodyA: bodyA, bodyB: bodyB}
}

type EventType uint8

func (t EventType) String() string {
	switch t {
	case COLLISION_ENTER:
		return "COLLISION_ENTER"
	case COLLISION_STAY:
		return "COLLISION_STAY"
	case COLLISION_EXIT:
		return "COLLISION_EXIT"
	default:
		return "UNKNOWN"
	}
}

// Event interface - all events implement this
type Event interface {
	Type() EventType
}

// CollisionEnterEvent is sent on the first step two bodies touch.
// Contact holds the values computed before the solver ran.
type CollisionEnterEvent struct {
	BodyA   *actor.Polygon
	BodyB   *actor.Polygon
	Contact constraint.Contact
}

func (e CollisionEnterEvent) Type() EventType { return COLLISION_ENTER }

type CollisionStayEvent struct {
	BodyA   *actor.Polygon
	BodyB   *actor.Polygon
	Contact constraint.Contact
}

func (e CollisionStayEvent) Type() EventType { return COLLISION_STAY }

type CollisionExitEvent struct {
	BodyA *actor.Polygon
	BodyB *actor.Polygon
}

func (e CollisionExitEvent) Type() EventType { return COLLISION_EXIT }

// EventListener - callback for events
type EventListener func(event Event)

// Events manager
type Events struct {
	// Listeners by event type
	listeners map[EventType][]EventListener

	// Event buffer to send at flush
	buffer []Event

	// Contacts of the current step, in narrow phase order
	currentContacts []constraint.Contact
	// Pairs touching during the previous step, in the order they were recorded
	previousPairs []pairKey
	previousSet   map[pairKey]bool
	currentSet    map[pairKey]bool
}

func NewEvents() Events {
	return Events{
		listeners:   make(map[EventType][]EventListener),
		buffer:      make([]Event, 0, 256),
		previousSet: make(map[pairKey]bool),
		currentSet:  make(map[pairKey]bool),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]EventListener)
	}
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

// recordContacts keeps the contacts of the step, they are compared with the previous step at flush
func (e *Events) recordContacts(contacts []constraint.Contact) {
	e.currentContacts = append(e.currentContacts[:0], contacts...)
}

// forget drops a removed body from the pair tracking, no exit event is sent for it
func (e *Events) forget(body *actor.Polygon) {
	n := 0
	for _, pair := range e.previousPairs {
		if pair.bodyA == body || pair.bodyB == body {
			delete(e.previousSet, pair)
			continue
		}
		e.previousPairs[n] = pair
		n++
	}
	e.previousPairs = e.previousPairs[:n]
}

// processCollisionEvents compares current and previous pairs to detect Enter/Stay/Exit.
// Enter and Stay follow the contact order, Exit follows the order of the previous step.
func (e *Events) processCollisionEvents() {
	if e.previousSet == nil || e.currentSet == nil {
		e.previousSet = make(map[pairKey]bool)
		e.currentSet = make(map[pairKey]bool)
	}

	currentPairs := make([]pairKey, 0, len(e.currentContacts))

	for _, contact := range e.currentContacts {
		pair := makePairKey(contact.BodyA, contact.BodyB)
		if e.currentSet[pair] {
			continue
		}
		e.currentSet[pair] = true
		currentPairs = append(currentPairs, pair)

		if e.previousSet[pair] {
			e.buffer = append(e.buffer, CollisionStayEvent{
				BodyA:   pair.bodyA,
				BodyB:   pair.bodyB,
				Contact: contact,
			})
		} else {
			e.buffer = append(e.buffer, CollisionEnterEvent{
				BodyA:   pair.bodyA,
				BodyB:   pair.bodyB,
				Contact: contact,
			})
		}
	}

	for _, pair := range e.previousPairs {
		if !e.currentSet[pair] {
			e.buffer = append(e.buffer, CollisionExitEvent{
				BodyA: pair.bodyA,
				BodyB: pair.bodyB,
			})
		}
	}

	// Swap for next step and clear current
	e.previousSet, e.currentSet = e.currentSet, e.previousSet
	clear(e.currentSet)
	e.previousPairs = currentPairs
	clear(e.currentContacts)
	e.currentContacts = e.currentContacts[:0]
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	e.processCollisionEvents()

	for _, event := range e.buffer {
		for _, listener := range e.listeners[event.Type()] {
			listener(event)
		}
	}

	clear(e.buffer)
	e.buffer = e.buffer[:0]
}
