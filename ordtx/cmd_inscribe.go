package main

import (
	"fmt"

	"github.com/libsv/go-bt/v2/bscript"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	ordtx "github.com/shruggr/bsv-ord-tx"
)

type inscribeCmdOptions struct {
	Utxo        string
	File        string
	ContentType string
	Destination string
	Change      string
	Meta        []string
}

func newInscribeCommand(a *app) *cobra.Command {
	opts := &inscribeCmdOptions{}

	cmd := &cobra.Command{
		Use:   "inscribe",
		Short: "Inscribe a file onto a new 1 sat output",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.inscribeHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Utxo, "utxo", "", "funding utxo, `txid:vout` or txid:vout:satoshis:script")
	flags.StringVar(&opts.File, "file", "", "file to inscribe")
	flags.StringVar(&opts.ContentType, "type", "", "content type, guessed from the file name when empty")
	flags.StringVar(&opts.Destination, "to", "", "address receiving the inscription")
	flags.StringVar(&opts.Change, "change", "", "change address, defaults to the payment key's address")
	flags.StringArrayVar(&opts.Meta, "meta", nil, "MAP metadata `key=value`, repeatable")
	cmd.MarkFlagRequired("utxo")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("to")

	return cmd
}

func (a *app) inscribeHandler(opts *inscribeCmdOptions, cmd *cobra.Command, _ []string) error {
	signer, err := a.signer(a.cfg.PaymentWIF, "payment-wif")
	if err != nil {
		return err
	}
	change, err := changeAddress(opts.Change, signer)
	if err != nil {
		return err
	}
	ins, err := readInscription(opts.File, opts.ContentType)
	if err != nil {
		return err
	}
	md, err := parseMeta(opts.Meta)
	if err != nil {
		return err
	}
	utxo, err := a.resolveUtxo(cmd.Context(), opts.Utxo, false)
	if err != nil {
		return errors.Wrap(err, "resolve utxo")
	}

	tx, err := a.builder.CreateOrdinal(&ordtx.CreateOrdinalParams{
		Utxo:          utxo,
		Destination:   opts.Destination,
		PaymentKey:    signer,
		ChangeAddress: change,
		FeeRate:       a.cfg.FeeRate,
		Inscription:   ins,
		Metadata:      md,
	})
	if err != nil {
		return err
	}
	a.log.Infof("inscribed %s %s (%d bytes)", tx.TxID(), ins.Type, len(ins.Body))
	fmt.Fprintln(cmd.OutOrStdout(), tx.String())
	return nil
}

func changeAddress(addr string, signer *ordtx.KeySigner) (string, error) {
	if addr != "" {
		return addr, nil
	}
	a, err := bscript.NewAddressFromPublicKey(signer.PrivateKey.PubKey(), true)
	if err != nil {
		return "", errors.Wrap(err, "change address")
	}
	return a.AddressString, nil
}
