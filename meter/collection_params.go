// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package meter

// opcodes of the collection module
const (
	OP_SET_APPROVAL  = uint32(1)
	OP_TRANSFER_ITEM = uint32(2)
)

func GetCollectionOpName(op uint32) string {
	switch op {
	case OP_SET_APPROVAL:
		return "SetApprovalForAll"
	case OP_TRANSFER_ITEM:
		return "TransferItem"
	default:
		return "Unknown"
	}
}
