// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/meterio/nft-auction/api/utils"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/script/auction"
	"github.com/meterio/nft-auction/state"
	"github.com/pkg/errors"
)

// StateViewer gives serialized read access to the latest state.
type StateViewer interface {
	View(fn func(st *state.State) error) error
}

type Auctions struct {
	viewer StateViewer
}

func New(viewer StateViewer) *Auctions {
	return &Auctions{
		viewer,
	}
}

// toHTTPError maps lookup failures to 404.
func toHTTPError(err error) error {
	switch err {
	case auction.AuctionNotFound, auction.MissingHighestBid:
		return utils.NotFound(err)
	}
	return err
}

func parseUint(req *http.Request, name string) (uint64, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, name))
	}
	return v, nil
}

func auctionID(req *http.Request) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(req)["id"], 10, 64)
	if err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "id"))
	}
	return id, nil
}

func (a *Auctions) handleGetActiveAuctions(w http.ResponseWriter, req *http.Request) error {
	start, err := parseUint(req, "start")
	if err != nil {
		return err
	}
	limit, err := parseUint(req, "limit")
	if err != nil {
		return err
	}
	var list []*meter.NFTAuction
	if err := a.viewer.View(func(st *state.State) error {
		list = auction.GetActiveAuctions(st, start, limit)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAuctionList(list))
}

func (a *Auctions) handleGetAuction(w http.ResponseWriter, req *http.Request) error {
	id, err := auctionID(req)
	if err != nil {
		return err
	}
	var found *meter.NFTAuction
	if err := a.viewer.View(func(st *state.State) (err error) {
		found, err = auction.GetAuction(st, id)
		return
	}); err != nil {
		return toHTTPError(err)
	}
	return utils.WriteJSON(w, convertAuction(found))
}

func (a *Auctions) handleGetHighestBid(w http.ResponseWriter, req *http.Request) error {
	id, err := auctionID(req)
	if err != nil {
		return err
	}
	var bid *meter.HighestBid
	if err := a.viewer.View(func(st *state.State) (err error) {
		bid, err = auction.GetHighestBid(st, id)
		return
	}); err != nil {
		return toHTTPError(err)
	}
	return utils.WriteJSON(w, &HighestBid{Amount: bid.Amount, Bidder: bid.Bidder})
}

func (a *Auctions) handleGetAuctionsBySeller(w http.ResponseWriter, req *http.Request) error {
	seller, err := meter.ParseAddress(mux.Vars(req)["address"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "address"))
	}
	var list []*meter.NFTAuction
	if err := a.viewer.View(func(st *state.State) (err error) {
		list, err = auction.GetAuctionsBySeller(st, seller)
		return
	}); err != nil {
		return toHTTPError(err)
	}
	return utils.WriteJSON(w, convertAuctionList(list))
}

func (a *Auctions) handleGetConfig(w http.ResponseWriter, req *http.Request) error {
	var config *meter.AuctionConfig
	if err := a.viewer.View(func(st *state.State) error {
		config = auction.GetConfig(st)
		return nil
	}); err != nil {
		return err
	}
	return utils.WriteJSON(w, convertConfig(config))
}

func (a *Auctions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()
	sub.Path("").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetActiveAuctions))
	sub.Path("/config").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetConfig))
	sub.Path("/seller/{address}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetAuctionsBySeller))
	sub.Path("/{id}").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetAuction))
	sub.Path("/{id}/highest-bid").Methods("GET").HandlerFunc(utils.WrapHandlerFunc(a.handleGetHighestBid))
}
