package ordtx

import (
	"math"

	"github.com/libsv/go-bt/v2"
	"github.com/libsv/go-bt/v2/bscript"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/shruggr/bsv-ord-tx/lib"
)

const (
	// DefaultFeeRate is in satoshis per byte.
	DefaultFeeRate  = 0.1
	OrdinalSatoshis = uint64(1)
)

// Builder assembles ordinal transactions. It holds no per-call state and is
// safe for concurrent use.
type Builder struct {
	Addresses AddressCodec
	log       *logrus.Entry
}

func NewBuilder(codec AddressCodec) *Builder {
	if codec == nil {
		codec = P2PKHCodec{}
	}
	return &Builder{
		Addresses: codec,
		log:       lib.GetLoggerEntry("ordtx"),
	}
}

var defaultBuilder = NewBuilder(P2PKHCodec{})

type CreateOrdinalParams struct {
	Utxo          *Utxo
	Destination   string
	PaymentKey    Signer
	ChangeAddress string
	// FeeRate in satoshis per byte. DefaultFeeRate when zero or negative.
	FeeRate     float64
	Inscription *Inscription
	// Metadata is attached as MAP when it carries app and type.
	Metadata *Metadata
}

type SendOrdinalParams struct {
	PaymentUtxo   *Utxo
	OrdinalUtxo   *Utxo
	PaymentKey    Signer
	ChangeAddress string
	FeeRate       float64
	OrdinalKey    Signer
	Destination   string
	// Reinscription replaces the plain transfer output with a new envelope
	// when it has both a body and a type.
	Reinscription *Inscription
	Metadata      *Metadata
}

type TemplateParams struct {
	Destination string
	Inscription *Inscription
	// Outputs are appended after the inscription, in order.
	Outputs  []Output
	Metadata *Metadata
}

func CreateOrdinal(p *CreateOrdinalParams) (*bt.Tx, error) {
	return defaultBuilder.CreateOrdinal(p)
}

func SendOrdinal(p *SendOrdinalParams) (*bt.Tx, error) {
	return defaultBuilder.SendOrdinal(p)
}

func CreateOrdinalTemplate(p *TemplateParams) (*bt.Tx, error) {
	return defaultBuilder.CreateOrdinalTemplate(p)
}

// CreateOrdinal spends a single utxo into a 1 sat inscription output plus
// change, and signs the input.
func (b *Builder) CreateOrdinal(p *CreateOrdinalParams) (*bt.Tx, error) {
	if p.Utxo == nil {
		return nil, ErrMissingUtxo
	}
	if p.Inscription == nil {
		return nil, ErrMissingData
	}

	tx := bt.NewTx()
	if err := addInput(tx, p.Utxo); err != nil {
		return nil, err
	}

	ins, err := b.inscriptionScript(p.Destination, p.Inscription, p.Metadata)
	if err != nil {
		return nil, err
	}
	tx.AddOutput(&bt.Output{Satoshis: OrdinalSatoshis, LockingScript: ins})

	if err = b.addChange(tx, p.ChangeAddress, p.FeeRate, p.Utxo.Satoshis, OrdinalSatoshis); err != nil {
		return nil, err
	}

	if err = signInput(tx, 0, p.PaymentKey); err != nil {
		return nil, err
	}
	return tx, nil
}

// SendOrdinal moves an ordinal to Destination, paying the fee from a
// separate utxo. Input 0 is the ordinal, input 1 the payment.
func (b *Builder) SendOrdinal(p *SendOrdinalParams) (*bt.Tx, error) {
	if p.OrdinalUtxo == nil || p.PaymentUtxo == nil {
		return nil, ErrMissingUtxo
	}

	tx := bt.NewTx()
	if err := addInput(tx, p.OrdinalUtxo); err != nil {
		return nil, err
	}
	if err := addInput(tx, p.PaymentUtxo); err != nil {
		return nil, err
	}

	var out *bscript.Script
	var err error
	if r := p.Reinscription; r != nil && len(r.Body) > 0 && r.Type != "" {
		out, err = b.inscriptionScript(p.Destination, r, p.Metadata)
	} else {
		out, err = b.Addresses.LockingScript(p.Destination)
	}
	if err != nil {
		return nil, err
	}
	tx.AddOutput(&bt.Output{Satoshis: OrdinalSatoshis, LockingScript: out})

	// the ordinal input funds the ordinal output
	if err = b.addChange(tx, p.ChangeAddress, p.FeeRate, p.PaymentUtxo.Satoshis, 0); err != nil {
		return nil, err
	}

	if err = signInput(tx, 0, p.OrdinalKey); err != nil {
		return nil, err
	}
	if err = signInput(tx, 1, p.PaymentKey); err != nil {
		return nil, err
	}
	return tx, nil
}

// CreateOrdinalTemplate returns an unfunded, unsigned transaction holding the
// inscription output and any extra payment outputs.
func (b *Builder) CreateOrdinalTemplate(p *TemplateParams) (*bt.Tx, error) {
	if p.Inscription == nil {
		return nil, ErrMissingData
	}

	tx := bt.NewTx()
	ins, err := b.inscriptionScript(p.Destination, p.Inscription, p.Metadata)
	if err != nil {
		return nil, err
	}
	tx.AddOutput(&bt.Output{Satoshis: OrdinalSatoshis, LockingScript: ins})

	for _, o := range p.Outputs {
		lock, err := b.Addresses.LockingScript(o.Address)
		if err != nil {
			return nil, err
		}
		tx.AddOutput(&bt.Output{Satoshis: o.Satoshis, LockingScript: lock})
	}
	return tx, nil
}

func (b *Builder) inscriptionScript(address string, ins *Inscription, md *Metadata) (*bscript.Script, error) {
	lock, err := b.Addresses.LockingScript(address)
	if err != nil {
		return nil, err
	}
	return BuildInscription(lock, ins.Body, ins.Type, md)
}

// addChange appends the change output. The fee covers the transaction as it
// stands plus the change output itself; spent is deducted from funds on top
// of the fee.
func (b *Builder) addChange(tx *bt.Tx, address string, rate float64, funds, spent uint64) error {
	lock, err := b.Addresses.LockingScript(address)
	if err != nil {
		return err
	}
	out := &bt.Output{Satoshis: 1, LockingScript: lock}

	size := tx.Size() + len(out.Bytes())
	fee := Fee(rate, size)
	if funds < spent+fee {
		return errors.Wrapf(ErrInsufficientFunds, "have %d, need %d", funds, spent+fee)
	}
	out.Satoshis = funds - spent - fee
	tx.AddOutput(out)

	b.log.WithFields(logrus.Fields{
		"size":   size,
		"fee":    fee,
		"change": out.Satoshis,
	}).Debug("change output")
	return nil
}

// Fee is ceil(rate * size). A rate of zero or less uses DefaultFeeRate.
func Fee(rate float64, size int) uint64 {
	if rate <= 0 {
		rate = DefaultFeeRate
	}
	return uint64(math.Ceil(rate * float64(size)))
}

func addInput(tx *bt.Tx, u *Utxo) error {
	if err := tx.From(u.Txid, u.Vout, u.Script, u.Satoshis); err != nil {
		return errors.Wrapf(err, "input %s", u.Outpoint())
	}
	tx.Inputs[len(tx.Inputs)-1].UnlockingScript = &bscript.Script{}
	return nil
}

func signInput(tx *bt.Tx, idx uint32, s Signer) error {
	if s == nil {
		return ErrMissingKey
	}
	us, err := s.UnlockingScript(tx, idx, SigHashFlags)
	if err != nil {
		return err
	}
	tx.Inputs[idx].UnlockingScript = us
	return nil
}
