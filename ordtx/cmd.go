package main

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	ordtx "github.com/shruggr/bsv-ord-tx"
	"github.com/shruggr/bsv-ord-tx/config"
	"github.com/shruggr/bsv-ord-tx/lib"
)

// app carries what every subcommand needs once config is loaded.
type app struct {
	cfg     *config.Config
	builder *ordtx.Builder
	loader  *ordtx.Loader
	log     *logrus.Entry
}

type rootCmdOptions struct {
	EnvFile  string
	LogLevel string
}

func newRootCommand(a *app) *cobra.Command {
	opts := &rootCmdOptions{}

	cmd := &cobra.Command{
		Use:          "ordtx",
		Short:        "Build and sign 1Sat ordinal transactions",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(opts)
		},
	}

	// Add global flags
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.EnvFile, "env", ".env", "env file to load before reading the environment")
	flags.StringVar(&opts.LogLevel, "log-level", "", "log level, E.g. `debug`")
	flags.Float64("fee-rate", ordtx.DefaultFeeRate, "fee rate in satoshis per byte")
	flags.String("junglebus", ordtx.DefaultJungleBus, "JungleBus url used to resolve outpoints")
	flags.String("payment-wif", "", "WIF of the key funding the transaction")
	flags.String("ordinal-wif", "", "WIF of the key holding the ordinal")

	// Bind flags to configuration
	config.V.BindPFlag("fee_rate", flags.Lookup("fee-rate"))
	config.V.BindPFlag("junglebus", flags.Lookup("junglebus"))
	config.V.BindPFlag("payment_wif", flags.Lookup("payment-wif"))
	config.V.BindPFlag("ordinal_wif", flags.Lookup("ordinal-wif"))

	cmd.AddCommand(
		newInscribeCommand(a),
		newSendCommand(a),
		newTemplateCommand(a),
		newDecodeCommand(a),
		newUtxoCommand(a),
	)
	return cmd
}

func (a *app) load(opts *rootCmdOptions) error {
	cfg, err := config.Load(opts.EnvFile)
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	if opts.LogLevel != "" {
		lib.SetLevel(opts.LogLevel)
	}
	a.cfg = cfg
	if a.builder == nil {
		a.builder = ordtx.NewBuilder(nil)
	}
	a.log = lib.GetLoggerEntry("ordtx")
	return nil
}

func (a *app) Loader() (*ordtx.Loader, error) {
	if a.loader != nil {
		return a.loader, nil
	}
	loader, err := ordtx.NewLoader(a.cfg.JungleBus, a.cfg.TxCacheSize)
	if err != nil {
		return nil, err
	}
	a.loader = loader
	return loader, nil
}

func (a *app) signer(wif, flag string) (*ordtx.KeySigner, error) {
	if wif == "" {
		return nil, errors.Wrapf(ordtx.ErrMissingKey, "--%s or %s", flag, envName(flag))
	}
	return ordtx.SignerFromWIF(wif)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
