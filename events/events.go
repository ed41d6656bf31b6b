package events

import (
	"encoding/binary"
	"sync"

	"github.com/nestera-labs/nestera"
	"github.com/tendermint/tendermint/libs/common"
)

// Event is a single notification: what happened, who caused it and the
// identifier of the affected record.
type Event struct {
	Kind      string
	Principal nestera.Address
	ID        uint64
	Payload   []common.KVPair
}

// Sink receives published events.
type Sink interface {
	Publish(ctx nestera.Context, e Event)
}

// Pair builds a payload entry.
func Pair(key string, value []byte) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: value}
}

// Tags returns the event as a list of result tags, the way delivered
// transactions are indexed.
func (e Event) Tags() []common.KVPair {
	id := make([]byte, 8)
	binary.BigEndian.PutUint64(id, e.ID)
	tags := []common.KVPair{
		Pair(e.Kind, id),
		Pair(e.Kind+".principal", []byte(e.Principal.String())),
	}
	for _, p := range e.Payload {
		tags = append(tags, Pair(e.Kind+"."+string(p.Key), p.Value))
	}
	return tags
}

// Discard is a Sink that drops everything.
var Discard Sink = discard{}

type discard struct{}

func (discard) Publish(nestera.Context, Event) {}

// Fanout publishes every event to all given sinks, in order.
func Fanout(sinks ...Sink) Sink {
	return fanout(sinks)
}

type fanout []Sink

func (f fanout) Publish(ctx nestera.Context, e Event) {
	for _, s := range f {
		s.Publish(ctx, e)
	}
}

// Recorder keeps all published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Sink = (*Recorder)(nil)

func (r *Recorder) Publish(_ nestera.Context, e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of all recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Drain returns all recorded events and forgets them.
func (r *Recorder) Drain() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	evs := r.events
	r.events = nil
	return evs
}
