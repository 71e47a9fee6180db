// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/meterio/nft-auction/api/auction"
	"github.com/meterio/nft-auction/api/events"
	"github.com/meterio/nft-auction/api/node"
	"github.com/meterio/nft-auction/api/transactions"
	"github.com/meterio/nft-auction/api/transfers"
	"github.com/meterio/nft-auction/api/utils"
	"github.com/meterio/nft-auction/logdb"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/runtime"
)

// requestID tags every request with an id, keeping one supplied by the caller.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(utils.RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
			req.Header.Set(utils.RequestIDHeader, id)
		}
		w.Header().Set(utils.RequestIDHeader, id)
		next.ServeHTTP(w, req)
	})
}

// New return api router
func New(ledger *runtime.Ledger, logDB *logdb.LogDB, genesisID meter.Bytes32, allowedOrigins string) http.HandlerFunc {
	origins := strings.Split(strings.TrimSpace(allowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()
	router.Use(requestID)

	transactions.New(ledger).
		Mount(router, "/transactions")
	events.New(logDB).
		Mount(router, "/logs/event")
	transfers.New(logDB).
		Mount(router, "/logs/transfer")
	auction.New(ledger).
		Mount(router, "/auctions")
	node.New(ledger, genesisID).
		Mount(router, "/node")

	return handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedHeaders([]string{"content-type", strings.ToLower(utils.RequestIDHeader)}),
		handlers.ExposedHeaders([]string{utils.RequestIDHeader}))(router).ServeHTTP
}
