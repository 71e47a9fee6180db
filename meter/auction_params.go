// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

const (
	OP_INIT         = uint32(1)
	OP_CREATE       = uint32(2)
	OP_BID          = uint32(3)
	OP_FINALIZE     = uint32(4)
	OP_BUY_NOW      = uint32(5)
	OP_PAUSE        = uint32(6)
	OP_UNPAUSE      = uint32(7)
	OP_CANCEL       = uint32(8)
	OP_UPDATE_ADMIN = uint32(9)
)

// pagination defaults of the active auction listing
const (
	AUCTION_DEFAULT_START = uint64(1)
	AUCTION_DEFAULT_LIMIT = uint64(10)
)

func GetOpName(op uint32) string {
	switch op {
	case OP_INIT:
		return "Initialize"
	case OP_CREATE:
		return "Create"
	case OP_BID:
		return "Bid"
	case OP_FINALIZE:
		return "Finalize"
	case OP_BUY_NOW:
		return "BuyNow"
	case OP_PAUSE:
		return "Pause"
	case OP_UNPAUSE:
		return "Unpause"
	case OP_CANCEL:
		return "Cancel"
	case OP_UPDATE_ADMIN:
		return "UpdateAdmin"
	default:
		return "Unknown"
	}
}
