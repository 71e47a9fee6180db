// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"bytes"
	"encoding/hex"
	"log/slog"

	"github.com/meterio/nft-auction/meter"
	"github.com/meterio/nft-auction/script/auction"
	"github.com/meterio/nft-auction/script/collection"
	setypes "github.com/meterio/nft-auction/script/types"
	"github.com/pkg/errors"
)

var minScriptDataLen = len(ScriptPrefix) + len(ScriptPattern) + 1

// ScriptEngine dispatches script clauses to native modules.
type ScriptEngine struct {
	logger *slog.Logger
	modReg Registry
}

func NewScriptEngine() *ScriptEngine {
	se := &ScriptEngine{
		logger: slog.Default().With("pkg", "se"),
	}
	se.StartAllModules()
	return se
}

func (se *ScriptEngine) StartAllModules() {
	ModuleAuctionInit(se)
	ModuleCollectionInit(se)
}

// Modules lists the registered modules.
func (se *ScriptEngine) Modules() []*Module {
	return se.modReg.Modules()
}

// IsScriptData tells whether clause data should be handled by the script engine.
func IsScriptData(data []byte) bool {
	return len(data) > minScriptDataLen && bytes.Equal(data[:len(ScriptPrefix)], ScriptPrefix[:])
}

// HandleScriptData dispatches script data, without ScriptPrefix, to its module.
func (se *ScriptEngine) HandleScriptData(senv *setypes.ScriptEnv, data []byte, to *meter.Address) (*setypes.ScriptEngineOutput, error) {
	if len(data) < len(ScriptPattern) || !bytes.Equal(data[:len(ScriptPattern)], ScriptPattern[:]) {
		err := errors.Errorf("pattern mismatch, pattern = %v", hex.EncodeToString(data[:min(len(data), len(ScriptPattern))]))
		se.logger.Info("script rejected", "err", err)
		return nil, err
	}
	script, err := DecodeScriptData(data[len(ScriptPattern):])
	if err != nil {
		se.logger.Info("script rejected", "err", err)
		return nil, err
	}

	mod, ok := se.modReg.Find(script.Header.ModID)
	if !ok {
		err := errors.Errorf("could not address module %v", script.Header.ModID)
		se.logger.Info("script rejected", "err", err)
		return nil, err
	}
	se.logger.Debug("dispatch script", "header", script.Header, "module", mod)
	return mod.Handler(senv, script.Payload, to)
}

// EncodeScriptData builds the clause data carrying body.
func EncodeScriptData(body interface{}) ([]byte, error) {
	switch body.(type) {
	case auction.AuctionBody, *auction.AuctionBody:
		return NewBuilder(NFT_AUCTION_MODULE_ID).Body(body).Encode()
	case collection.CollectionBody, *collection.CollectionBody:
		return NewBuilder(COLLECTION_MODULE_ID).Body(body).Encode()
	}
	return nil, errors.New("unrecognized body")
}
