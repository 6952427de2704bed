package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	ordtx "github.com/shruggr/bsv-ord-tx"
)

type sendCmdOptions struct {
	PaymentUtxo string
	OrdinalUtxo string
	Destination string
	Change      string
	File        string
	ContentType string
	Meta        []string
}

func newSendCommand(a *app) *cobra.Command {
	opts := &sendCmdOptions{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Transfer an inscribed 1 sat output, optionally reinscribing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.sendHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.PaymentUtxo, "payment-utxo", "", "utxo paying the fee, `txid:vout` or txid:vout:satoshis:script")
	flags.StringVar(&opts.OrdinalUtxo, "ordinal-utxo", "", "1 sat ordinal utxo, `txid:vout` or txid:vout:satoshis:script")
	flags.StringVar(&opts.Destination, "to", "", "address receiving the ordinal")
	flags.StringVar(&opts.Change, "change", "", "change address, defaults to the payment key's address")
	flags.StringVar(&opts.File, "file", "", "reinscribe with this file")
	flags.StringVar(&opts.ContentType, "type", "", "reinscription content type, guessed from the file name when empty")
	flags.StringArrayVar(&opts.Meta, "meta", nil, "MAP metadata `key=value`, repeatable")
	cmd.MarkFlagRequired("payment-utxo")
	cmd.MarkFlagRequired("ordinal-utxo")
	cmd.MarkFlagRequired("to")

	return cmd
}

func (a *app) sendHandler(opts *sendCmdOptions, cmd *cobra.Command, _ []string) error {
	paySigner, err := a.signer(a.cfg.PaymentWIF, "payment-wif")
	if err != nil {
		return err
	}
	ordSigner, err := a.signer(a.cfg.OrdinalWIF, "ordinal-wif")
	if err != nil {
		return err
	}
	change, err := changeAddress(opts.Change, paySigner)
	if err != nil {
		return err
	}

	var reinscription *ordtx.Inscription
	if opts.File != "" {
		if reinscription, err = readInscription(opts.File, opts.ContentType); err != nil {
			return err
		}
	}
	md, err := parseMeta(opts.Meta)
	if err != nil {
		return err
	}

	ordUtxo, err := a.resolveUtxo(cmd.Context(), opts.OrdinalUtxo, true)
	if err != nil {
		return errors.Wrap(err, "resolve ordinal utxo")
	}
	payUtxo, err := a.resolveUtxo(cmd.Context(), opts.PaymentUtxo, false)
	if err != nil {
		return errors.Wrap(err, "resolve payment utxo")
	}

	tx, err := a.builder.SendOrdinal(&ordtx.SendOrdinalParams{
		PaymentUtxo:   payUtxo,
		OrdinalUtxo:   ordUtxo,
		PaymentKey:    paySigner,
		ChangeAddress: change,
		FeeRate:       a.cfg.FeeRate,
		OrdinalKey:    ordSigner,
		Destination:   opts.Destination,
		Reinscription: reinscription,
		Metadata:      md,
	})
	if err != nil {
		return err
	}
	a.log.Infof("sent %s to %s", ordUtxo.Outpoint(), opts.Destination)
	fmt.Fprintln(cmd.OutOrStdout(), tx.String())
	return nil
}
