// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

// Builder assembles the clause data of a module call.
type Builder struct {
	header  ScriptHeader
	payload []byte
	err     error
}

func NewBuilder(modID uint32) *Builder {
	return &Builder{header: ScriptHeader{ModID: modID}}
}

func (b *Builder) Version(v uint32) *Builder {
	b.header.Version = v
	return b
}

func (b *Builder) Payload(p []byte) *Builder {
	b.payload = p
	return b
}

// Body rlp encodes body as the payload.
func (b *Builder) Body(body interface{}) *Builder {
	if b.err != nil {
		return b
	}
	payload, err := rlp.EncodeToBytes(body)
	if err != nil {
		b.err = errors.Wrap(err, "rlp encode body")
		return b
	}
	b.payload = payload
	return b
}

func (b *Builder) Build() (*ScriptData, error) {
	if b.err != nil {
		return nil, b.err
	}
	return &ScriptData{Header: b.header, Payload: b.payload}, nil
}

// Encode returns the clause data carrying the script.
func (b *Builder) Encode() ([]byte, error) {
	sd, err := b.Build()
	if err != nil {
		return nil, err
	}
	return sd.Encode()
}
