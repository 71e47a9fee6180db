// Copyright (c) 2020 The Meter.io developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/meterio/nft-auction/meter"
)

var (
	ErrUnsigned = errors.New("tx is not signed")
)

// Transaction is an immutable tx type.
type Transaction struct {
	body body

	cache struct {
		signingHash atomic.Value
		signer      atomic.Value
		id          atomic.Value
	}
}

// body describes details of a tx.
type body struct {
	ChainTag   byte
	LedgerRef  uint64
	Expiration uint32
	Clauses    []*Clause
	Nonce      uint64
	Signature  []byte
}

// ChainTag returns chain tag.
func (t *Transaction) ChainTag() byte {
	return t.body.ChainTag
}

// Nonce returns nonce value.
func (t *Transaction) Nonce() uint64 {
	return t.body.Nonce
}

// LedgerRef returns the ledger reference.
func (t *Transaction) LedgerRef() (lr LedgerRef) {
	binary.BigEndian.PutUint64(lr[:], t.body.LedgerRef)
	return
}

// Expiration returns expiration in unit ledger.
// A valid transaction requires:
// ledgerNum in [ledgerRef.Num... ledgerRef.Num + Expiration]
func (t *Transaction) Expiration() uint32 {
	return t.body.Expiration
}

// IsExpired returns whether the tx is expired according to the given ledger number.
func (t *Transaction) IsExpired(ledgerNum uint32) bool {
	return uint64(ledgerNum) > uint64(t.LedgerRef().Number())+uint64(t.body.Expiration) // cast to uint64 to prevent potential overflow
}

// ID returns id of tx.
// ID = hash(signingHash, signer).
// It returns zero Bytes32 if signer not available.
func (t *Transaction) ID() (id meter.Bytes32) {
	if cached := t.cache.id.Load(); cached != nil {
		return cached.(meter.Bytes32)
	}
	defer func() { t.cache.id.Store(id) }()

	signer, err := t.Signer()
	if err != nil {
		return
	}
	hw := meter.NewBlake2b()
	hw.Write(t.SigningHash().Bytes())
	hw.Write(signer.Bytes())
	hw.Sum(id[:0])
	return
}

// SigningHash returns hash of tx excludes signature.
func (t *Transaction) SigningHash() (hash meter.Bytes32) {
	if cached := t.cache.signingHash.Load(); cached != nil {
		return cached.(meter.Bytes32)
	}
	defer func() { t.cache.signingHash.Store(hash) }()

	hw := meter.NewBlake2b()
	err := rlp.Encode(hw, []interface{}{
		t.body.ChainTag,
		t.body.LedgerRef,
		t.body.Expiration,
		t.body.Clauses,
		t.body.Nonce,
	})
	if err != nil {
		return
	}

	hw.Sum(hash[:0])
	return
}

// Clauses returns caluses in tx.
func (t *Transaction) Clauses() []*Clause {
	return append([]*Clause(nil), t.body.Clauses...)
}

// Signature returns signature.
func (t *Transaction) Signature() []byte {
	return append([]byte(nil), t.body.Signature...)
}

// Signer extract signer of tx from signature.
func (t *Transaction) Signer() (signer meter.Address, err error) {
	if len(t.body.Signature) == 0 {
		return meter.Address{}, ErrUnsigned
	}
	if cached := t.cache.signer.Load(); cached != nil {
		return cached.(meter.Address), nil
	}
	defer func() {
		if err == nil {
			t.cache.signer.Store(signer)
		}
	}()

	pub, err := crypto.SigToPub(t.SigningHash().Bytes(), t.body.Signature)
	if err != nil {
		return meter.Address{}, err
	}
	signer = meter.Address(crypto.PubkeyToAddress(*pub))
	return
}

// WithSignature create a new tx with signature set.
func (t *Transaction) WithSignature(sig []byte) *Transaction {
	newTx := Transaction{
		body: t.body,
	}
	// copy sig
	newTx.body.Signature = append([]byte(nil), sig...)
	return &newTx
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*t = Transaction{body: body}
	return nil
}

func (t *Transaction) String() string {
	var (
		from      string
		ledgerRef LedgerRef
	)
	signer, err := t.Signer()
	if err != nil {
		from = "N/A"
	} else {
		from = signer.String()
	}
	binary.BigEndian.PutUint64(ledgerRef[:], t.body.LedgerRef)

	return fmt.Sprintf(`Tx(%v)
	From:           %v
	Clauses:        %v
	ChainTag:       %v
	LedgerRef:      %v-%x
	Expiration:     %v
	Nonce:          %v
	Signature:      0x%x
`, t.ID(), from, t.body.Clauses, t.body.ChainTag, ledgerRef.Number(), ledgerRef[4:],
		t.body.Expiration, t.body.Nonce, t.body.Signature)
}

// Transactions a slice of transactions.
type Transactions []*Transaction
