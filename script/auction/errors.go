// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"fmt"
)

// ContractError is the closed set of failures reported by the auction module.
type ContractError uint32

const (
	Unauthorized            ContractError = 0
	AuctionNotFound         ContractError = 1
	IDMismatch              ContractError = 2
	BidNotEnough            ContractError = 3
	AuctionNotFinished      ContractError = 4
	NotEnoughBalance        ContractError = 5
	InvalidInputs           ContractError = 6
	AuctionNotActive        ContractError = 7
	MinPriceNotReached      ContractError = 8
	MissingHighestBid       ContractError = 9
	AuctionNotPaused        ContractError = 10
	PaymentProcessingFailed ContractError = 11
	NoBuyNowOption          ContractError = 12
	AlreadyInitialized      ContractError = 13
	InvalidBidder           ContractError = 14
	ItemNotApproved         ContractError = 15
	AuctionHasBids          ContractError = 16
)

var contractErrorNames = map[ContractError]string{
	Unauthorized:            "Unauthorized",
	AuctionNotFound:         "AuctionNotFound",
	IDMismatch:              "IDMismatch",
	BidNotEnough:            "BidNotEnough",
	AuctionNotFinished:      "AuctionNotFinished",
	NotEnoughBalance:        "NotEnoughBalance",
	InvalidInputs:           "InvalidInputs",
	AuctionNotActive:        "AuctionNotActive",
	MinPriceNotReached:      "MinPriceNotReached",
	MissingHighestBid:       "MissingHighestBid",
	AuctionNotPaused:        "AuctionNotPaused",
	PaymentProcessingFailed: "PaymentProcessingFailed",
	NoBuyNowOption:          "NoBuyNowOption",
	AlreadyInitialized:      "AlreadyInitialized",
	InvalidBidder:           "InvalidBidder",
	ItemNotApproved:         "ItemNotApproved",
	AuctionHasBids:          "AuctionHasBids",
}

func (e ContractError) Name() string {
	if name, ok := contractErrorNames[e]; ok {
		return name
	}
	return "Unknown"
}

// Code returns the numeric error code.
func (e ContractError) Code() uint32 {
	return uint32(e)
}

func (e ContractError) Error() string {
	return fmt.Sprintf("auction error #%d: %s", e.Code(), e.Name())
}

// ParseContractError recovers a ContractError from its Error() text.
func ParseContractError(msg string) (ContractError, bool) {
	var (
		code uint32
		name string
	)
	if _, err := fmt.Sscanf(msg, "auction error #%d: %s", &code, &name); err != nil {
		return 0, false
	}
	e := ContractError(code)
	if e.Name() != name {
		return 0, false
	}
	return e, true
}
