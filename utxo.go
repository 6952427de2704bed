package ordtx

import (
	"fmt"
)

// Utxo is a spendable output supplied by the caller. Script is the locking
// script hex.
type Utxo struct {
	Satoshis uint64 `json:"satoshis"`
	Txid     string `json:"txid"`
	Vout     uint32 `json:"vout"`
	Script   string `json:"script"`
}

func (u *Utxo) Outpoint() string {
	return fmt.Sprintf("%s:%d", u.Txid, u.Vout)
}

// Output is an extra payment appended by CreateOrdinalTemplate.
type Output struct {
	Address  string `json:"address"`
	Satoshis uint64 `json:"satoshis,omitempty"`
}
