// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/meterio/nft-auction/api/utils"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/xenv"
)

// LedgerInfo reports the progress of the local ledger.
type LedgerInfo interface {
	ChainTag() byte
	Best() xenv.LedgerContext
}

type Status struct {
	GenesisID  meter.Bytes32 `json:"genesisID"`
	ChainTag   byte          `json:"chainTag"`
	BestLedger uint32        `json:"bestLedger"`
	BestTime   uint64        `json:"bestTime"`
}

type Node struct {
	ledger    LedgerInfo
	genesisID meter.Bytes32
}

func New(ledger LedgerInfo, genesisID meter.Bytes32) *Node {
	return &Node{
		ledger,
		genesisID,
	}
}

func (n *Node) Status() *Status {
	best := n.ledger.Best()
	return &Status{
		GenesisID:  n.genesisID,
		ChainTag:   n.ledger.ChainTag(),
		BestLedger: best.Number,
		BestTime:   best.Time,
	}
}

func (n *Node) handleStatus(w http.ResponseWriter, req *http.Request) error {
	return utils.WriteJSON(w, n.Status())
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/status").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(n.handleStatus))
}
