package ordtx

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/GorillaPool/go-junglebus"
	"github.com/GorillaPool/go-junglebus/models"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/libsv/go-bt/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/shruggr/bsv-ord-tx/lib"
)

const DefaultJungleBus = "https://junglebus.gorillapool.io"

// TxSource fetches a raw transaction by id.
type TxSource interface {
	GetTransaction(ctx context.Context, txID string) (*models.Transaction, error)
}

// Loader resolves outpoints into Utxos from previously broadcast
// transactions. Builders never call it; it is a convenience for callers
// that only know txid:vout.
type Loader struct {
	source TxSource
	cache  *lru.Cache[string, *bt.Tx]
	log    *logrus.Entry
}

func NewLoader(jbURL string, cacheSize int) (*Loader, error) {
	if jbURL == "" {
		jbURL = DefaultJungleBus
	}
	client, err := junglebus.New(
		junglebus.WithHTTP(jbURL),
	)
	if err != nil {
		return nil, errors.Wrap(err, "junglebus client")
	}
	return NewLoaderFromSource(client, cacheSize)
}

func NewLoaderFromSource(source TxSource, cacheSize int) (*Loader, error) {
	if cacheSize <= 0 {
		cacheSize = 1000
	}
	cache, err := lru.New[string, *bt.Tx](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Loader{
		source: source,
		cache:  cache,
		log:    lib.GetLoggerEntry("loader"),
	}, nil
}

func (l *Loader) LoadTx(ctx context.Context, txid string) (tx *bt.Tx, err error) {
	if tx, ok := l.cache.Get(txid); ok {
		return tx, nil
	}

	txData, err := l.source.GetTransaction(ctx, txid)
	if err != nil {
		return nil, err
	}
	if txData == nil || len(txData.Transaction) == 0 {
		return nil, &HttpError{
			StatusCode: 404,
			Err:        fmt.Errorf("tx %s not found", txid),
		}
	}
	tx, err = bt.NewTxFromBytes(txData.Transaction)
	if err != nil {
		return nil, errors.Wrapf(err, "parse tx %s", txid)
	}
	l.log.Infof("loaded %s", txid)

	l.cache.Add(txid, tx)
	return tx, nil
}

func (l *Loader) LoadUtxo(ctx context.Context, txid string, vout uint32) (*Utxo, error) {
	tx, err := l.LoadTx(ctx, txid)
	if err != nil {
		return nil, err
	}
	if int(vout) >= len(tx.Outputs) {
		return nil, &HttpError{
			StatusCode: 400,
			Err:        fmt.Errorf("vout out of range"),
		}
	}
	out := tx.Outputs[vout]
	return &Utxo{
		Satoshis: out.Satoshis,
		Txid:     txid,
		Vout:     vout,
		Script:   out.LockingScript.String(),
	}, nil
}

// LoadOrdinalUtxo is LoadUtxo restricted to 1 sat outputs.
func (l *Loader) LoadOrdinalUtxo(ctx context.Context, txid string, vout uint32) (*Utxo, error) {
	u, err := l.LoadUtxo(ctx, txid, vout)
	if err != nil {
		return nil, err
	}
	if u.Satoshis != OrdinalSatoshis {
		return nil, &HttpError{
			StatusCode: 400,
			Err:        fmt.Errorf("vout %d is not 1 satoshi", vout),
		}
	}
	return u, nil
}

// ByteString is a byte array that serializes to hex
type ByteString []byte

// MarshalJSON serializes ByteArray to hex
func (s ByteString) MarshalJSON() ([]byte, error) {
	bytes, err := json.Marshal(fmt.Sprintf("%x", string(s)))
	return bytes, err
}

// UnmarshalJSON deserializes ByteArray to hex
func (s *ByteString) UnmarshalJSON(data []byte) error {
	var x string
	err := json.Unmarshal(data, &x)
	if err == nil {
		str, e := hex.DecodeString(x)
		*s = ByteString([]byte(str))
		err = e
	}

	return err
}
