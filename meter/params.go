// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

// Constants of the ledger.
const (
	LedgerInterval uint64 = 5 // seconds between two consecutive ledgers.

	// entry lifetime, counted in ledgers
	DayInLedgers      uint32 = 17280
	BumpAmount        uint32 = 7 * DayInLedgers
	LifetimeThreshold uint32 = BumpAmount - DayInLedgers
)

// Addresses of the native contracts.
var (
	NFTAuctionModuleAddr = BytesToAddress([]byte("nft-auction"))
	ParamsAddr           = BytesToAddress([]byte("Params"))
	LedgerAddr           = BytesToAddress([]byte("Ledger"))
)

// Keys of engine params.
var (
	KeyInitialized     = BytesToBytes32([]byte("initialized"))
	KeyAdminAddress    = BytesToBytes32([]byte("admin"))
	KeySettlementAsset = BytesToBytes32([]byte("settlement-asset"))
	KeyAuctionFee      = BytesToBytes32([]byte("auction-fee"))
)

// Keys of ledger progress, stored under LedgerAddr.
var (
	KeyBestLedger = BytesToBytes32([]byte("best-ledger"))
	KeyBestTime   = BytesToBytes32([]byte("best-time"))
)
