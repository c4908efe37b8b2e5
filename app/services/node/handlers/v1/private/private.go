// Package private maintains the group of handlers for node to node access.
package private

import (
	"context"
	"errors"
	"net/http"

	"github.com/tallychain/tallychain/business/web/errs"
	"github.com/tallychain/tallychain/foundation/ledger/block"
	"github.com/tallychain/tallychain/foundation/ledger/peer"
	"github.com/tallychain/tallychain/foundation/ledger/state"
	"github.com/tallychain/tallychain/foundation/web"
	"go.uber.org/zap"
)

// Handlers manages the set of node to node endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
}

// Status returns the current status of the node so peers can decide
// whether a chain sync is worth performing.
func (h Handlers) Status(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	latest, err := h.State.RetrieveLatestBlock()
	if err != nil {
		return errs.NewTrusted(err, http.StatusInternalServerError)
	}

	status := peer.Status{
		LatestBlockHash:   latest.Hash(),
		LatestBlockNumber: latest.Index,
		KnownPeers:        h.State.RetrieveKnownPeers(),
	}

	return web.Respond(ctx, w, status, http.StatusOK)
}

// Chain returns the full chain so a peer can run consensus against it.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	chain := h.State.RetrieveChain()

	resp := struct {
		Length int           `json:"length"`
		Chain  []block.Block `json:"chain"`
	}{
		Length: len(chain),
		Chain:  chain,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RegisterPeer adds the calling node to this node's peer table.
func (h Handlers) RegisterPeer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var p peer.Peer
	if err := web.Decode(r, &p); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	if p.Host == "" {
		return errs.NewTrusted(errors.New("missing peer host"), http.StatusBadRequest)
	}

	if h.State.AddKnownPeer(p) {
		h.Log.Infow("adding peer", "traceid", v.TraceID, "host", p.Host)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "peer registered",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
