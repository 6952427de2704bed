package main

import (
	"github.com/spf13/cobra"
)

type utxoCmdOptions struct {
	Ordinal bool
}

func newUtxoCommand(a *app) *cobra.Command {
	opts := &utxoCmdOptions{}

	cmd := &cobra.Command{
		Use:   "utxo <txid:vout>",
		Short: "Resolve an outpoint into the utxo JSON the builders take",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.resolveUtxo(cmd.Context(), args[0], opts.Ordinal)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), u)
		},
	}

	cmd.Flags().BoolVar(&opts.Ordinal, "ordinal", false, "require a 1 sat output")
	return cmd
}
