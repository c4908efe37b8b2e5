package state

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/tallychain/tallychain/foundation/ledger/block"
	"github.com/tallychain/tallychain/foundation/ledger/peer"
)

const baseURL = "http://%s/v1/node"

// netFetchChain is the production Fetcher. It asks the peer's node API for
// its full chain and reported length.
func (s *State) netFetchChain(ctx context.Context, pr peer.Peer) (int, []block.Block, error) {
	url := fmt.Sprintf("%s/chain/list", fmt.Sprintf(baseURL, pr.Host))

	var doc struct {
		Length int           `json:"length"`
		Chain  []block.Block `json:"chain"`
	}
	if err := send(ctx, http.MethodGet, url, nil, &doc); err != nil {
		return 0, nil, err
	}

	// A length that disagrees with the blocks actually delivered is a
	// malformed document. The peer is skipped like any other fetch failure.
	if doc.Length != len(doc.Chain) {
		return 0, nil, fmt.Errorf("peer reported length %d but sent %d blocks", doc.Length, len(doc.Chain))
	}

	return doc.Length, doc.Chain, nil
}

// NetRequestPeerStatus asks the specified peer for its view of the ledger:
// latest block and the peers it knows about.
func (s *State) NetRequestPeerStatus(ctx context.Context, pr peer.Peer) (peer.Status, error) {
	s.evHandler("state: NetRequestPeerStatus: started: %s", pr.Host)
	defer s.evHandler("state: NetRequestPeerStatus: completed: %s", pr.Host)

	url := fmt.Sprintf("%s/status", fmt.Sprintf(baseURL, pr.Host))

	var ps peer.Status
	if err := send(ctx, http.MethodGet, url, nil, &ps); err != nil {
		return peer.Status{}, err
	}

	s.evHandler("state: NetRequestPeerStatus: peer[%s]: latest block[%d] peers[%d]", pr.Host, ps.LatestBlockNumber, len(ps.KnownPeers))

	return ps, nil
}

// NetAnnounce tells the specified peer this node exists, so resolution
// flows in both directions once one side learns about the other.
func (s *State) NetAnnounce(ctx context.Context, pr peer.Peer) error {
	url := fmt.Sprintf("%s/peers/register", fmt.Sprintf(baseURL, pr.Host))

	return send(ctx, http.MethodPost, url, peer.New(s.host), nil)
}

// =============================================================================

// send is a helper function to send an HTTP request to a node.
func send(ctx context.Context, method string, url string, dataSend any, dataRecv any) error {
	var body io.Reader

	if dataSend != nil {
		data, err := json.Marshal(dataSend)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return err
	}

	var client http.Client
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if resp.StatusCode != http.StatusOK {
		msg, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		return errors.New(string(msg))
	}

	if dataRecv != nil {
		if err := json.NewDecoder(resp.Body).Decode(dataRecv); err != nil {
			return err
		}
	}

	return nil
}
