// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tallychain/tallychain/business/web/errs"
	"github.com/tallychain/tallychain/foundation/events"
	"github.com/tallychain/tallychain/foundation/ledger/block"
	"github.com/tallychain/tallychain/foundation/ledger/peer"
	"github.com/tallychain/tallychain/foundation/ledger/state"
	"github.com/tallychain/tallychain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// Genesis returns the chain origin settings.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Chain returns the full chain from genesis to tip.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blocks := h.State.RetrieveChain()

	info := chainInfo{
		Length: len(blocks),
		Chain:  blocks,
	}

	return web.Respond(ctx, w, info, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions in arrival order.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	txs := h.State.RetrieveMempool()
	return web.Respond(ctx, w, txs, http.StatusOK)
}

// SubmitTransaction adds a new transaction to the mempool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var userTx tx
	if err := web.Decode(r, &userTx); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	blockNum := h.State.SubmitTransaction(block.Tx{
		Sender:    userTx.Sender,
		Recipient: userTx.Recipient,
		Amount:    userTx.Amount,
	})

	h.Log.Infow("add tran", "traceid", v.TraceID, "sender", userTx.Sender, "recipient", userTx.Recipient, "amount", userTx.Amount, "block", blockNum)

	resp := submitInfo{
		Status: "transaction added to mempool",
		Block:  blockNum,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// SignalMining signals the worker to mine the mempool into the next block.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.State.SignalMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Resolve runs a consensus pass against the known peers right away rather
// than waiting for the next scheduled one.
func (h Handlers) Resolve(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	replaced, blocks := h.State.ResolveConflicts(ctx)

	resp := resolveInfo{
		Replaced: replaced,
		Length:   len(blocks),
		Chain:    blocks,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// RegisterPeers adds peer addresses to the known peer set.
func (h Handlers) RegisterPeers(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var rp registerPeers
	if err := web.Decode(r, &rp); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	var added int
	for _, address := range rp.Peers {
		host, err := peerHost(address)
		if err != nil {
			return errs.NewTrusted(fmt.Errorf("invalid peer address %q: %w", address, err), http.StatusBadRequest)
		}

		if h.State.AddKnownPeer(peer.New(host)) {
			added++
		}
	}

	h.Log.Infow("register peers", "traceid", v.TraceID, "submitted", len(rp.Peers), "added", added)

	resp := peersInfo{
		Status:     "peers registered",
		Added:      added,
		KnownPeers: h.State.RetrieveKnownPeers(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Peers returns the known peer set.
func (h Handlers) Peers(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := peersInfo{
		KnownPeers: h.State.RetrieveKnownPeers(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// peerHost extracts the host:port network location from a peer address. A
// bare host:port without a scheme is accepted.
func peerHost(address string) (string, error) {
	if !strings.Contains(address, "//") {
		address = "http://" + address
	}

	u, err := url.Parse(address)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", errors.New("address has no host")
	}

	return u.Host, nil
}
