package main

import (
	"fmt"

	"github.com/spf13/cobra"

	ordtx "github.com/shruggr/bsv-ord-tx"
)

type templateCmdOptions struct {
	File        string
	ContentType string
	Destination string
	Outputs     []string
	Meta        []string
}

func newTemplateCommand(a *app) *cobra.Command {
	opts := &templateCmdOptions{}

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print an unsigned, unfunded inscription transaction",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.templateHandler(opts, cmd, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.File, "file", "", "file to inscribe")
	flags.StringVar(&opts.ContentType, "type", "", "content type, guessed from the file name when empty")
	flags.StringVar(&opts.Destination, "to", "", "address receiving the inscription")
	flags.StringArrayVar(&opts.Outputs, "output", nil, "extra output `address[:satoshis]`, repeatable")
	flags.StringArrayVar(&opts.Meta, "meta", nil, "MAP metadata `key=value`, repeatable")
	cmd.MarkFlagRequired("file")
	cmd.MarkFlagRequired("to")

	return cmd
}

func (a *app) templateHandler(opts *templateCmdOptions, cmd *cobra.Command, _ []string) error {
	ins, err := readInscription(opts.File, opts.ContentType)
	if err != nil {
		return err
	}
	outs, err := parseOutputs(opts.Outputs)
	if err != nil {
		return err
	}
	md, err := parseMeta(opts.Meta)
	if err != nil {
		return err
	}

	tx, err := a.builder.CreateOrdinalTemplate(&ordtx.TemplateParams{
		Destination: opts.Destination,
		Inscription: ins,
		Outputs:     outs,
		Metadata:    md,
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tx.String())
	return nil
}
