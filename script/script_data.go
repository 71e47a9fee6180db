// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package script

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"
)

var (
	// clause data of a script starts with ScriptPrefix, followed by ScriptPattern
	ScriptPrefix  = [4]byte{0xff, 0xff, 0xff, 0xff}
	ScriptPattern = [4]byte{0xde, 0xad, 0xbe, 0xef}
)

type ScriptHeader struct {
	Version uint32
	ModID   uint32
}

func (sh ScriptHeader) String() string {
	return fmt.Sprintf("ScriptHeader(version=%v, mod=%v)", sh.Version, sh.ModID)
}

type ScriptData struct {
	Header  ScriptHeader
	Payload []byte
}

func (s *ScriptData) String() string {
	return fmt.Sprintf("ScriptData(%v, payload=%d bytes)", s.Header, len(s.Payload))
}

// Encode returns prefix, pattern and the rlp encoded script.
func (s *ScriptData) Encode() ([]byte, error) {
	data, err := rlp.EncodeToBytes(s)
	if err != nil {
		return nil, errors.Wrap(err, "rlp encode script data")
	}
	out := make([]byte, 0, len(ScriptPrefix)+len(ScriptPattern)+len(data))
	out = append(out, ScriptPrefix[:]...)
	out = append(out, ScriptPattern[:]...)
	return append(out, data...), nil
}

// DecodeScriptData decodes the rlp part of clause data, after prefix and pattern.
func DecodeScriptData(data []byte) (*ScriptData, error) {
	var script ScriptData
	if err := rlp.DecodeBytes(data, &script); err != nil {
		return nil, errors.Wrap(err, "decode script data")
	}
	return &script, nil
}
