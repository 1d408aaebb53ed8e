package kafunk

import (
	"time"

	"github.com/eapache/go-resiliency/breaker"
)

// joinBreaker wraps the JoinGroup retry path in an eapache/go-resiliency
// circuit breaker so a coordinator stuck in a failure storm does not get
// hot-looped by repeated rejoin attempts; this mirrors the same dependency
// sarama itself carries (present as an indirect dependency in the wider
// example pack's go.mod files) for broker-retry backoff.
type joinBreaker struct {
	b *breaker.Breaker
}

// newJoinBreaker trips open after consecutiveFailures errors within the
// given window, and allows one trial call after timeout.
func newJoinBreaker(consecutiveFailures int, timeout time.Duration) *joinBreaker {
	return &joinBreaker{b: breaker.New(consecutiveFailures, 1, timeout)}
}

// run executes fn through the breaker, surfacing breaker.ErrBreakerOpen when
// the coordinator is presumed down and we should not hammer it.
func (jb *joinBreaker) run(fn func() error) error {
	return jb.b.Run(fn)
}
