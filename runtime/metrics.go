// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	txCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "runtime_txs_total",
		Help: "Transactions handled by the ledger, by result.",
	}, []string{"result"})
	txDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "runtime_tx_duration_seconds",
		Help:    "Time spent executing and committing one transaction.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
	})
	bestLedgerGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "runtime_best_ledger",
		Help: "Number of the latest ledger.",
	})
)

func init() {
	prometheus.MustRegister(txCounter, txDuration, bestLedgerGauge)
}
