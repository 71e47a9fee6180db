// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package collection

import (
	"errors"

	"github.com/inconshreveable/log15"
	"github.com/meterio/nft-auction/builtin"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/script/auction"
	setypes "github.com/meterio/nft-auction/script/types"
)

var (
	log = log15.New("pkg", "collection")

	ErrUnauthorized  = errors.New("caller is not the item owner")
	ErrInvalidInputs = errors.New("invalid collection inputs")
	ErrItemListed    = errors.New("item units are on auction")
	errUnknownOpcode = errors.New("unknown collection opcode")
)

// event signatures, used as the first topic
var (
	ApprovalForAllEvent = meter.Blake2b([]byte("ApprovalForAll(address,address,bool)"))
	TransferSingleEvent = meter.Blake2b([]byte("TransferSingle(address,address,address,uint64,uint64)"))
)

// Collection is the script module that lets owners manage their items.
type Collection struct {
	logger log15.Logger
}

func NewCollection() *Collection {
	return &Collection{
		logger: log15.New("pkg", "collection"),
	}
}

// Handle decodes a collection payload and runs the matching operation.
func (c *Collection) Handle(senv *setypes.ScriptEnv, payload []byte, to *meter.Address) (seOutput *setypes.ScriptEngineOutput, err error) {
	cb, err := DecodeFromBytes(payload)
	if err != nil {
		log.Error("Decode script message failed", "error", err)
		return nil, err
	}
	defer func() {
		if err != nil {
			senv.SetReturnData([]byte(err.Error()))
		}
		seOutput = senv.GetOutput()
	}()

	log.Debug("received collection op", "body", cb)
	switch cb.Opcode {
	case meter.OP_SET_APPROVAL:
		err = c.SetApprovalForAll(senv, cb.Registry, cb.Owner, cb.Operator, cb.Approved)
	case meter.OP_TRANSFER_ITEM:
		err = c.TransferItem(senv, cb.Registry, cb.Owner, cb.To, cb.ItemID, cb.Amount)
	default:
		log.Error("unknown Opcode", "Opcode", cb.Opcode)
		err = errUnknownOpcode
	}
	return
}

func authorize(env *setypes.ScriptEnv, owner meter.Address) error {
	if env.GetTxCtx().Origin != owner {
		return ErrUnauthorized
	}
	return nil
}

// SetApprovalForAll grants or revokes operator permission over every item
// the owner holds in registry.
func (c *Collection) SetApprovalForAll(env *setypes.ScriptEnv, registry, owner, operator meter.Address, approved bool) error {
	if err := authorize(env, owner); err != nil {
		return err
	}
	if registry.IsZero() || operator.IsZero() {
		return ErrInvalidInputs
	}
	if err := builtin.Collection(registry).Native(env.GetState()).SetApprovalForAll(owner, operator, approved); err != nil {
		return err
	}
	var flag []byte
	if approved {
		flag = []byte{1}
	}
	env.AddEvent(registry, []meter.Bytes32{ApprovalForAllEvent, meter.BytesToBytes32(owner.Bytes()), meter.BytesToBytes32(operator.Bytes())}, flag)
	c.logger.Info("approval set", "registry", registry, "owner", owner, "operator", operator, "approved", approved)
	return nil
}

// TransferItem moves units the owner holds. Units on a live auction cannot move.
func (c *Collection) TransferItem(env *setypes.ScriptEnv, registry, from, to meter.Address, id, amount uint64) error {
	if err := authorize(env, from); err != nil {
		return err
	}
	if registry.IsZero() || amount == 0 {
		return ErrInvalidInputs
	}
	st := env.GetState()
	reg := builtin.Collection(registry).Native(st)
	balance := reg.BalanceOf(from, id)
	listed := auction.ListedQuantity(st, from, registry, id)
	if balance >= amount && (balance < listed || balance-listed < amount) {
		return ErrItemListed
	}
	if err := reg.SafeTransferFrom(from, from, to, id, amount); err != nil {
		return err
	}
	env.AddEvent(registry, []meter.Bytes32{TransferSingleEvent, meter.BytesToBytes32(from.Bytes()), meter.BytesToBytes32(to.Bytes())},
		append(meter.Uint64Bytes(id), meter.Uint64Bytes(amount)...))
	c.logger.Info("item transferred", "registry", registry, "from", from, "to", to, "id", id, "amount", amount)
	return nil
}
