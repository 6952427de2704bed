package main

import (
	"github.com/libsv/go-bt/v2"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	ordtx "github.com/shruggr/bsv-ord-tx"
)

func newDecodeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <rawtx|txid>",
		Short: "List the inscriptions carried by a transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  a.decodeHandler,
	}
}

func (a *app) decodeHandler(cmd *cobra.Command, args []string) error {
	var tx *bt.Tx
	var err error
	if len(args[0]) == 64 {
		loader, lerr := a.Loader()
		if lerr != nil {
			return lerr
		}
		tx, err = loader.LoadTx(cmd.Context(), args[0])
	} else {
		tx, err = bt.NewTxFromString(args[0])
	}
	if err != nil {
		return errors.Wrap(err, "decode tx")
	}

	outs := ordtx.ParseTx(tx)
	if outs == nil {
		outs = []*ordtx.InscriptionOutput{}
	}
	return writeJSON(cmd.OutOrStdout(), outs)
}
