package worker

import (
	"context"
	"time"
)

// consensusTimeout bounds a full consensus pass, fetches and announcements
// included.
const consensusTimeout = 30 * time.Second

// consensusOperations reconciles the chain with the network on a schedule.
func (w *Worker) consensusOperations() {
	w.evHandler("worker: consensusOperations: G started")
	defer w.evHandler("worker: consensusOperations: G completed")

	for {
		select {
		case <-w.ticker.C:
			if !w.isShutdown() {
				w.runConsensusOperation()
			}
		case <-w.shut:
			w.evHandler("worker: consensusOperations: received shut signal")
			return
		}
	}
}

// runConsensusOperation runs one longest-chain resolution pass against the
// known peers, then announces this node to them.
func (w *Worker) runConsensusOperation() {
	w.evHandler("worker: runConsensusOperation: started")
	defer w.evHandler("worker: runConsensusOperation: completed")

	ctx, cancel := context.WithTimeout(context.Background(), consensusTimeout)
	defer cancel()

	replaced, blocks := w.state.ResolveConflicts(ctx)
	if replaced {
		w.evHandler("worker: runConsensusOperation: chain replaced: length[%d]", len(blocks))
	}

	// Being known is what gets this node consulted during the other side's
	// passes. Failures are logged and retried on the next tick.
	for _, pr := range w.state.RetrieveKnownPeers() {
		if err := w.state.NetAnnounce(ctx, pr); err != nil {
			w.evHandler("worker: runConsensusOperation: announce: peer[%s]: WARNING: %s", pr.Host, err)
		}
	}
}
