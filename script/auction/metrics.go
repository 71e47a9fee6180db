// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package auction

import (
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/tx"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	auctionOpsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auction_ops_total",
		Help: "Counter of auction operation attempts by opcode and result",
	}, []string{"op", "result"})
	auctionsCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "auctions_created_total",
		Help: "Counter of committed auction creations",
	})
	auctionsSettledCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "auctions_settled_total",
		Help: "Counter of committed auctions reaching a terminal status, by outcome",
	}, []string{"outcome"})
	lastAuctionIDGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "auction_last_id",
		Help: "Highest assigned auction id",
	})
)

func init() {
	prometheus.MustRegister(auctionOpsCounter)
	prometheus.MustRegister(auctionsCreatedCounter)
	prometheus.MustRegister(auctionsSettledCounter)
	prometheus.MustRegister(lastAuctionIDGauge)
}

func observeOp(op uint32, err error) {
	result := "ok"
	if err != nil {
		if ce, ok := err.(ContractError); ok {
			result = ce.Name()
		} else {
			result = "error"
		}
	}
	auctionOpsCounter.WithLabelValues(meter.GetOpName(op), result).Inc()
}

// settlement outcome by event signature
var outcomeByEvent = map[meter.Bytes32]string{
	AuctionSettledEvent:   "settled",
	AuctionEndedEvent:     "ended",
	AuctionBoughtEvent:    "bought",
	AuctionCancelledEvent: "cancelled",
}

// ObserveEvents updates the auction metrics from the events of a committed
// transaction.
func ObserveEvents(events tx.Events) {
	for _, ev := range events {
		if ev.Address != meter.NFTAuctionModuleAddr || len(ev.Topics) < 2 {
			continue
		}
		sig := ev.Topics[0]
		if sig == AuctionCreatedEvent {
			auctionsCreatedCounter.Inc()
			lastAuctionIDGauge.Set(float64(meter.BytesToUint64(ev.Topics[1][:])))
			continue
		}
		if outcome, ok := outcomeByEvent[sig]; ok {
			auctionsSettledCounter.WithLabelValues(outcome).Inc()
		}
	}
}
