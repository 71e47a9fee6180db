// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"sort"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/inconshreveable/log15"
	"github.com/meterio/nft-auction/builtin"
	"github.com/meterio/nft-auction/kv"
	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/script/auction"
	setypes "github.com/meterio/nft-auction/script/types"
	"github.com/meterio/nft-auction/state"
	"github.com/meterio/nft-auction/tx"
	"github.com/meterio/nft-auction/xenv"
	"github.com/pkg/errors"
)

var (
	log = log15.New("pkg", "genesis")

	// KeyGenesisID records which genesis the ledger was built from.
	KeyGenesisID = meter.BytesToBytes32([]byte("genesis-id"))

	ErrGenesisMismatch = errors.New("ledger was built from another genesis")
)

type Genesis struct {
	config *Config
	id     meter.Bytes32
}

// New makes a genesis from a validated config.
func New(config *Config) (*Genesis, error) {
	if err := config.validate(); err != nil {
		return nil, err
	}
	id, err := computeID(config)
	if err != nil {
		return nil, err
	}
	return &Genesis{config, id}, nil
}

func computeID(config *Config) (id meter.Bytes32, err error) {
	data, err := rlp.EncodeToBytes(canonical(config))
	if err != nil {
		return id, errors.Wrap(err, "encode genesis")
	}
	return meter.Blake2b(data), nil
}

// canonical flattens the config into a deterministic rlp value.
func canonical(config *Config) []interface{} {
	var engine []interface{}
	if config.Engine != nil {
		engine = []interface{}{config.Engine.Admin, config.Engine.Asset, config.Engine.Fee}
	}
	assets := make([]interface{}, 0, len(config.Assets))
	for _, asset := range config.Assets {
		owners := make([]string, 0, len(asset.Balances))
		for owner := range asset.Balances {
			owners = append(owners, owner)
		}
		sort.Strings(owners)
		balances := make([]interface{}, 0, len(owners))
		for _, owner := range owners {
			balances = append(balances, []interface{}{owner, asset.Balances[owner]})
		}
		assets = append(assets, []interface{}{asset.Address, balances})
	}
	colls := make([]interface{}, 0, len(config.Collections))
	for _, coll := range config.Collections {
		mints := make([]interface{}, 0, len(coll.Mints))
		for _, m := range coll.Mints {
			mints = append(mints, []interface{}{m.Owner, m.ID, m.Amount, m.ApproveEngine})
		}
		colls = append(colls, []interface{}{coll.Address, coll.URI, mints})
	}
	return []interface{}{config.Name, config.LaunchTime, engine, assets, colls}
}

func (g *Genesis) ID() meter.Bytes32 {
	return g.id
}

func (g *Genesis) Name() string {
	return g.config.Name
}

// ChainTag is the last byte of the genesis id.
func (g *Genesis) ChainTag() byte {
	return g.id[len(g.id)-1]
}

func (g *Genesis) LaunchTime() uint64 {
	return g.config.LaunchTime
}

// Build applies the genesis allocations to the ledger in kv. It is a no-op
// when the ledger was already built from the same genesis.
func (g *Genesis) Build(kv kv.BatchGetPutter) (tx.Events, error) {
	st := state.New(kv)
	if raw := st.GetStorage(meter.LedgerAddr, KeyGenesisID); len(raw) > 0 {
		if meter.BytesToBytes32(raw) != g.id {
			return nil, ErrGenesisMismatch
		}
		return nil, nil
	}

	events, err := g.apply(st)
	if err != nil {
		return nil, err
	}
	st.SetStorage(meter.LedgerAddr, KeyGenesisID, g.id.Bytes())
	builtin.Ledger.Native(st).SetUint64(meter.KeyBestTime, g.config.LaunchTime)
	if err := st.Commit(); err != nil {
		return nil, errors.Wrap(err, "commit genesis")
	}
	log.Info("genesis built", "name", g.config.Name, "id", g.id)
	return events, nil
}

func (g *Genesis) apply(st *state.State) (tx.Events, error) {
	for _, asset := range g.config.Assets {
		tk := builtin.Token(meter.MustParseAddress(asset.Address)).Native(st)
		for owner, amount := range asset.Balances {
			v, err := parseAmount(amount)
			if err != nil {
				return nil, err
			}
			if err := tk.Mint(meter.MustParseAddress(owner), v); err != nil {
				return nil, errors.Wrap(err, "mint asset")
			}
		}
	}

	for _, coll := range g.config.Collections {
		c := builtin.Collection(meter.MustParseAddress(coll.Address)).Native(st)
		if coll.URI != "" {
			c.SetURI(coll.URI)
		}
		for _, m := range coll.Mints {
			owner := meter.MustParseAddress(m.Owner)
			if err := c.Mint(owner, m.ID, m.Amount); err != nil {
				return nil, errors.Wrap(err, "mint item")
			}
			if m.ApproveEngine {
				if err := c.SetApprovalForAll(owner, meter.NFTAuctionModuleAddr, true); err != nil {
					return nil, errors.Wrap(err, "approve engine")
				}
			}
		}
	}

	if g.config.Engine == nil {
		return nil, nil
	}
	admin := meter.MustParseAddress(g.config.Engine.Admin)
	to := meter.NFTAuctionModuleAddr
	env := setypes.NewScriptEnv(st,
		&xenv.LedgerContext{Number: 0, Time: g.config.LaunchTime},
		&xenv.TransactionContext{Origin: admin},
		&to)
	err := auction.NewAuction().Initialize(env, admin, meter.MustParseAddress(g.config.Engine.Asset), g.config.Engine.Fee)
	if err != nil {
		return nil, errors.Wrap(err, "initialize engine")
	}
	return env.GetEvents(), nil
}
