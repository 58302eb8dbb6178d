package ecs

import (
	"iter"
)

type messageBuffer interface {
	advance()
}

type messageInstance[T any] struct {
	seq uint64
	msg T
}

// Messages is a double-buffered queue of messages of type T, stored as a singleton.
// A message sent during frame N can be read during frame N (by systems running after the
// sender) and frame N+1 (by every system); it is dropped when frame N+1 ends.
type Messages[T any] struct {
	previous []messageInstance[T]
	current  []messageInstance[T]
	nextSeq  uint64
}

// Send queues a message.
func (m *Messages[T]) Send(msg T) {
	m.current = append(m.current, messageInstance[T]{seq: m.nextSeq, msg: msg})
	m.nextSeq++
}

// Len returns the number of messages still buffered.
func (m *Messages[T]) Len() int {
	return len(m.previous) + len(m.current)
}

func (m *Messages[T]) advance() {
	m.previous, m.current = m.current, m.previous[:0]
}

// since yields buffered messages with a sequence number of at least seq.
func (m *Messages[T]) since(seq uint64) iter.Seq2[uint64, T] {
	return func(yield func(uint64, T) bool) {
		for _, buffer := range [][]messageInstance[T]{m.previous, m.current} {
			for _, inst := range buffer {
				if inst.seq < seq {
					continue
				}
				if !yield(inst.seq, inst.msg) {
					return
				}
			}
		}
	}
}

func messagesFor[T any](storage *Storage) *Messages[T] {
	return NewSingleton[Messages[T]](storage).Get()
}

// SendMessage queues a message from outside a system, e.g. from setup code or tests.
func SendMessage[T any](storage *Storage, msg T) {
	messagesFor[T](storage).Send(msg)
}

// MessageWriter is a system field used to send messages of type T.
type MessageWriter[T any] struct {
	messages *Messages[T]
}

// Init binds the writer to the storage's message buffer.
// Called by the Scheduler during system registration.
func (w *MessageWriter[T]) Init(storage *Storage) {
	w.messages = messagesFor[T](storage)
}

// Send queues a message.
func (w *MessageWriter[T]) Send(msg T) {
	w.messages.Send(msg)
}

// MessageReader is a system field used to receive messages of type T. Each reader keeps its
// own cursor, so every reader sees every message exactly once.
type MessageReader[T any] struct {
	messages *Messages[T]
	next     uint64
}

// NewMessageReader creates a reader bound to the storage, positioned before any buffered message.
func NewMessageReader[T any](storage *Storage) *MessageReader[T] {
	r := &MessageReader[T]{}
	r.Init(storage)
	return r
}

// Init binds the reader to the storage's message buffer.
// Called by the Scheduler during system registration.
func (r *MessageReader[T]) Init(storage *Storage) {
	r.messages = messagesFor[T](storage)
	r.next = 0
}

// Read yields messages not yet seen by this reader and advances the cursor past them.
func (r *MessageReader[T]) Read() iter.Seq[T] {
	return func(yield func(T) bool) {
		for seq, msg := range r.messages.since(r.next) {
			r.next = seq + 1
			if !yield(msg) {
				return
			}
		}
	}
}

// Drain returns all unread messages as a slice.
func (r *MessageReader[T]) Drain() []T {
	var out []T
	for msg := range r.Read() {
		out = append(out, msg)
	}
	return out
}
