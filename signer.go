package ordtx

import (
	"encoding/hex"
	"fmt"

	"github.com/libsv/go-bk/bec"
	"github.com/libsv/go-bk/wif"
	"github.com/libsv/go-bt/v2"
	"github.com/libsv/go-bt/v2/bscript"
	"github.com/libsv/go-bt/v2/sighash"
	"github.com/pkg/errors"
)

// SigHashFlags is used for every input these builders sign.
const SigHashFlags = sighash.AllForkID

// Signer produces the unlocking script for one input of tx. The input's
// PreviousTxScript and PreviousTxSatoshis must already be set.
type Signer interface {
	UnlockingScript(tx *bt.Tx, idx uint32, flag sighash.Flag) (*bscript.Script, error)
}

// KeySigner signs with a single private key and unlocks with
// <signature> <compressed pubkey>, whatever the previous script is.
type KeySigner struct {
	PrivateKey *bec.PrivateKey
}

func NewKeySigner(key *bec.PrivateKey) *KeySigner {
	return &KeySigner{PrivateKey: key}
}

func (s *KeySigner) UnlockingScript(tx *bt.Tx, idx uint32, flag sighash.Flag) (*bscript.Script, error) {
	if s == nil || s.PrivateKey == nil {
		return nil, ErrMissingKey
	}
	sh, err := tx.CalcInputSignatureHash(idx, flag)
	if err != nil {
		return nil, errors.Wrapf(err, "sighash input %d", idx)
	}
	sig, err := s.PrivateKey.Sign(sh)
	if err != nil {
		return nil, errors.Wrapf(err, "sign input %d", idx)
	}

	asm := fmt.Sprintf("%x%02x %s", sig.Serialise(), uint8(flag), s.PubKeyHex())
	return bscript.NewFromASM(asm)
}

func (s *KeySigner) PubKeyHex() string {
	return hex.EncodeToString(s.PrivateKey.PubKey().SerialiseCompressed())
}

// PrivateKeyFromWIF decodes a Wallet Import Format private key.
func PrivateKeyFromWIF(w string) (*bec.PrivateKey, error) {
	decoded, err := wif.DecodeWIF(w)
	if err != nil {
		return nil, errors.Wrap(err, "decode wif")
	}
	return decoded.PrivKey, nil
}

// SignerFromWIF is PrivateKeyFromWIF wrapped in a KeySigner.
func SignerFromWIF(w string) (*KeySigner, error) {
	key, err := PrivateKeyFromWIF(w)
	if err != nil {
		return nil, err
	}
	return NewKeySigner(key), nil
}

// AddressCodec turns an address into the locking script that pays it.
type AddressCodec interface {
	LockingScript(address string) (*bscript.Script, error)
}

type P2PKHCodec struct{}

func (P2PKHCodec) LockingScript(address string) (*bscript.Script, error) {
	s, err := bscript.NewP2PKHFromAddress(address)
	if err != nil {
		return nil, errors.Wrapf(err, "address %s", address)
	}
	return s, nil
}
