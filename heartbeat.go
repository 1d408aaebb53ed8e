package kafunk

import "context"

// runHeartbeatLoop implements C4. It is started once per generation by C6
// immediately after the generation state is constructed, and runs until the
// generation closes. At most one heartbeat is ever in flight, satisfying
// spec.md §3 invariant 3, since the loop issues one Heartbeat, waits for its
// reply, then sleeps before issuing the next.
func runHeartbeatLoop(ctx context.Context, conn Connection, conf *ConsumerConfig, m *groupMetrics, gen *GenerationState) {
	interval := conf.heartbeatInterval()

	for {
		var stop bool
		ifClosed(gen.closed, func() { stop = true }, func() {
			resp, err := conn.Heartbeat(ctx, &HeartbeatRequest{
				GroupID:      conf.GroupID,
				GenerationID: gen.GenerationID,
				MemberID:     gen.MemberID,
			})
			if err != nil {
				m.heartbeatsFailed.Mark(1)
				logWarnf("heartbeat: generation %d: transport failure: %v", gen.GenerationID, err)
				gen.Close()
				stop = true
				return
			}

			switch classifyGroupError(resp.Err) {
			case classOK:
				m.heartbeatsSent.Mark(1)
			default:
				m.heartbeatsFailed.Mark(1)
				logInfof("heartbeat: generation %d: %v, closing", gen.GenerationID, resp.Err)
				gen.Close()
				stop = true
			}
		})

		if stop {
			return
		}

		sleepInterruptible(ctx, interval, gen.closed)
		if gen.Closed() {
			return
		}
	}
}
