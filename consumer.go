package kafunk

import (
	"context"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// ConsumeHandler processes one fetched message set for a (topic, partition)
// and is responsible for calling commit at its preferred checkpoint.
type ConsumeHandler func(ctx context.Context, topic string, partition int32, ms MessageSet, commit CommitAction) error

// CommitAfterHandler processes one fetched message set; ConsumeCommitAfter
// calls commit automatically once the handler returns successfully.
type CommitAfterHandler func(ctx context.Context, topic string, partition int32, ms MessageSet) error

// Consumer is the downstream-facing handle wrapping the generation
// sequence, per spec.md §6. Call Close to stop it; a Consumer that is not
// closed leaks its background goroutines, mirroring the teacher's
// "you MUST call Close()" convention.
type Consumer struct {
	conn    Connection
	conf    *ConsumerConfig
	metrics *groupMetrics

	generations chan *Generation
	fatal       chan error

	cancel context.CancelFunc
	done   chan struct{}

	closeOnce sync.Once
}

// NewConsumer validates config and starts the Generation Engine in the
// background. The returned Consumer is immediately ready to drive via
// Generations, Consume, or ConsumeCommitAfter.
func NewConsumer(conn Connection, conf *ConsumerConfig) (*Consumer, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		select {
		case <-conn.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	m := newGroupMetrics(conf.MetricRegistry, conf.GroupID)
	jc := newJoinCoordinator(conn, conf, m)

	c := &Consumer{
		conn:        conn,
		conf:        conf,
		metrics:     m,
		generations: make(chan *Generation),
		fatal:       make(chan error, 1),
		cancel:      cancel,
		done:        make(chan struct{}),
	}

	go func() {
		defer close(c.done)
		runGenerationEngine(ctx, jc, conf, m, c.generations, c.fatal)
	}()

	return c, nil
}

// Generations exposes the raw generation sequence for callers that want to
// drive per-partition streams themselves instead of using Consume.
func (c *Consumer) Generations() <-chan *Generation {
	return c.generations
}

// Close stops the generation engine and waits for its background goroutine
// to exit.
func (c *Consumer) Close() error {
	c.closeOnce.Do(func() {
		c.cancel()
	})
	<-c.done
	return nil
}

// Consume runs handler over every message set in every partition of every
// generation until ctx is done or an error is returned. Per generation,
// every assigned partition runs its handler invocations in parallel with
// each other; within one partition, invocations are sequential. It returns
// ctx.Err() when ctx is done, the handler errors of a generation joined
// with multierror, or an error the generation engine reports: a failed join
// (including a transport failure on any call the join makes) or a malformed
// broker response. Other broker errors and transport failures outside the
// join are absorbed into generation close and retried via the next
// generation.
func (c *Consumer) Consume(ctx context.Context, handler ConsumeHandler) error {
	return c.drive(ctx, func(ctx context.Context, ps PartitionStream) error {
		for batch := range ps.Batches {
			if err := handler(ctx, batch.Topic, batch.Partition, batch.Messages, batch.Commit); err != nil {
				return err
			}
		}
		return nil
	})
}

// ConsumeCommitAfter is Consume's specialization that commits automatically
// after every successful handler invocation.
func (c *Consumer) ConsumeCommitAfter(ctx context.Context, handler CommitAfterHandler) error {
	return c.drive(ctx, func(ctx context.Context, ps PartitionStream) error {
		for batch := range ps.Batches {
			if err := handler(ctx, batch.Topic, batch.Partition, batch.Messages); err != nil {
				return err
			}
			if err := batch.Commit(ctx); err != nil {
				return err
			}
		}
		return nil
	})
}

// drive is the shared fan-out machinery behind Consume/ConsumeCommitAfter:
// for every generation, run perPartition over each assigned partition
// stream in parallel, joining any errors it returns with multierror before
// deciding whether to continue to the next generation.
func (c *Consumer) drive(ctx context.Context, perPartition func(context.Context, PartitionStream) error) error {
	for {
		select {
		case err := <-c.fatal:
			return err
		case <-ctx.Done():
			return ctx.Err()
		case gen, ok := <-c.generations:
			if !ok {
				select {
				case err := <-c.fatal:
					return err
				default:
					return nil
				}
			}

			if err := c.driveGeneration(ctx, gen, perPartition); err != nil {
				return err
			}
		}
	}
}

func (c *Consumer) driveGeneration(ctx context.Context, gen *Generation, perPartition func(context.Context, PartitionStream) error) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs *multierror.Error

	// The partition streams end only when the generation closes, so close it
	// when ctx is done or a partition returns an error.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			gen.state.Close()
		case <-stop:
		}
	}()

	for _, ps := range gen.Partitions {
		wg.Add(1)
		go func(ps PartitionStream) {
			defer wg.Done()
			if err := perPartition(ctx, ps); err != nil {
				mu.Lock()
				errs = multierror.Append(errs, err)
				mu.Unlock()
				gen.state.Close()
			}
		}(ps)
	}
	wg.Wait()

	return errs.ErrorOrNil()
}
