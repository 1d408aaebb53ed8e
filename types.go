package kafunk

import "sync"

// TopicPartitionAssignment names one partition this member is responsible
// for fetching within a generation, along with its resolved initial offset.
type TopicPartitionAssignment struct {
	Topic         string
	Partition     int32
	InitialOffset int64
}

// BrokerRef is an opaque reference to the group coordinator broker, returned
// by Connection.GetGroupCoordinator and otherwise unexamined by this
// package; the connection layer is responsible for its shape.
type BrokerRef interface{}

// closedLatch is a one-shot, compare-and-set latch: it starts open and
// transitions to closed exactly once. It realizes spec.md §3 invariant 2
// and §9's "one-shot latch with compare-and-set semantics" design note.
type closedLatch struct {
	once sync.Once
	ch   chan struct{}
}

func newClosedLatch() *closedLatch {
	return &closedLatch{ch: make(chan struct{})}
}

// trip closes the latch if it has not already fired, and reports whether
// this call was the one that closed it.
func (l *closedLatch) trip() bool {
	tripped := false
	l.once.Do(func() {
		tripped = true
		close(l.ch)
	})
	return tripped
}

// isClosed reports the current state without blocking.
func (l *closedLatch) isClosed() bool {
	select {
	case <-l.ch:
		return true
	default:
		return false
	}
}

// done exposes the latch as a channel for use in select statements, e.g.
// awaiting close alongside a timer.
func (l *closedLatch) done() <-chan struct{} {
	return l.ch
}

// ifClosed realizes the peekTask(f, latch, action) primitive from spec.md
// §9: the latch is checked once, non-blocking, at entry. If it has already
// fired, f is invoked and action is never run. Otherwise action runs
// in-flight work is never interrupted mid-call by a concurrent close; the
// next suspension point is where the generation's loops notice.
func ifClosed(l *closedLatch, onClosed func(), action func()) {
	if l.isClosed() {
		onClosed()
		return
	}
	action()
}

// GenerationState is the per-generation state owned exclusively by the Join/
// Sync Coordinator (C6) and the Generation Engine (C7). Per-partition
// streams, the heartbeat loop, and commit actions hold only a read
// reference for observing Closed and for tagging requests with
// (GenerationID, MemberID).
type GenerationState struct {
	GenerationID int32
	MemberID     string
	LeaderID     string
	Assignments  []TopicPartitionAssignment

	closed *closedLatch
}

func newGenerationState(id int32, memberID, leaderID string, assignments []TopicPartitionAssignment) *GenerationState {
	return &GenerationState{
		GenerationID: id,
		MemberID:     memberID,
		LeaderID:     leaderID,
		Assignments:  assignments,
		closed:       newClosedLatch(),
	}
}

// Close trips the generation's closed latch. It is safe to call
// concurrently and safe to call more than once; only the first call has any
// effect, satisfying "closed transitions open->closed exactly once".
func (g *GenerationState) Close() {
	if g.closed.trip() {
		logInfof("generation %d: closed", g.GenerationID)
	}
}

// Closed reports whether this generation has been torn down.
func (g *GenerationState) Closed() bool {
	return g.closed.isClosed()
}

// Done exposes the closed latch as a channel, for select-based waits.
func (g *GenerationState) Done() <-chan struct{} {
	return g.closed.done()
}
