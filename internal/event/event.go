// Package event implements the MIDI-derived note event queue (spec.md
// §4.7): events are tagged with a delta-frame offset into the current
// render block, kept sorted by that offset, and delivered to the voice
// manager sample-accurately as the block is rendered.
package event

import "sort"

// Kind is what a queued event asks the voice manager to do.
type Kind int

const (
	KindNoteOn Kind = iota
	KindNoteOff
)

// Event is one queued MIDI-derived event.
type Event struct {
	DeltaFrames int // offset, in samples, from the start of the current block
	Kind        Kind
	Pitch       uint8
	Velocity    uint8
}

// DecodeMIDI turns a raw 3-byte MIDI message into an Event, following the
// status-nibble decode in original_source/octasine/src/audio/mod.rs's
// process_midi_event: note-off is status nibble 0b1000, and a note-on
// (0b1001) with velocity 0 is treated as a note-off rather than an
// audible zero-velocity note, per the MIDI spec's running-status
// convention.
func DecodeMIDI(deltaFrames int, status, data1, data2 byte) (Event, bool) {
	nibble := status >> 4

	switch nibble {
	case 0b1000:
		return Event{DeltaFrames: deltaFrames, Kind: KindNoteOff, Pitch: data1, Velocity: data2}, true
	case 0b1001:
		if data2 == 0 {
			return Event{DeltaFrames: deltaFrames, Kind: KindNoteOff, Pitch: data1, Velocity: 0}, true
		}
		return Event{DeltaFrames: deltaFrames, Kind: KindNoteOn, Pitch: data1, Velocity: data2}, true
	default:
		return Event{}, false
	}
}

// Queue holds pending events for the block currently being rendered (or a
// future one), sorted by DeltaFrames so they can be delivered in order as
// the block is generated sample by sample.
type Queue struct {
	pending []Event
}

// Enqueue adds events to the queue and re-sorts by DeltaFrames, mirroring
// AudioState::enqueue_midi_events.
func (q *Queue) Enqueue(events ...Event) {
	q.pending = append(q.pending, events...)
	sort.SliceStable(q.pending, func(i, j int) bool {
		return q.pending[i].DeltaFrames < q.pending[j].DeltaFrames
	})
}

// Drain removes and returns every event whose DeltaFrames equals frame,
// i.e. the events due to fire at this exact sample within the block,
// mirroring process_events_for_sample.
func (q *Queue) Drain(frame int) []Event {
	i := 0
	for i < len(q.pending) && q.pending[i].DeltaFrames == frame {
		i++
	}
	if i == 0 {
		return nil
	}
	due := q.pending[:i]
	q.pending = q.pending[i:]
	return due
}

// Pending reports how many events remain queued.
func (q *Queue) Pending() int { return len(q.pending) }

// Rebase shifts every remaining event's DeltaFrames back by frames,
// called once per rendered block so offsets stay relative to the start of
// the next block.
func (q *Queue) Rebase(frames int) {
	for i := range q.pending {
		q.pending[i].DeltaFrames -= frames
	}
}
