package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/shruggr/bsv-ord-tx/lib"
)

type Config struct {
	FeeRate     float64 `mapstructure:"fee_rate"`
	JungleBus   string  `mapstructure:"junglebus"`
	Listen      string  `mapstructure:"listen"`
	LogLevel    string  `mapstructure:"log_level"`
	TxCacheSize int     `mapstructure:"tx_cache_size"`
	PaymentWIF  string  `mapstructure:"payment_wif"`
	OrdinalWIF  string  `mapstructure:"ordinal_wif"`
}

// V is the viper instance Load reads from. Commands bind their flags to it.
var V = viper.New()

func init() {
	V.SetDefault("fee_rate", 0.1)
	V.SetDefault("junglebus", "https://junglebus.gorillapool.io")
	V.SetDefault("listen", "0.0.0.0:8080")
	V.SetDefault("log_level", "info")
	V.SetDefault("tx_cache_size", 1000)
	V.SetDefault("payment_wif", "")
	V.SetDefault("ordinal_wif", "")
}

// Load reads .env files (missing files are ignored), then the environment,
// on top of the defaults. Env keys are the upper-cased setting names, e.g.
// FEE_RATE or JUNGLEBUS.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			lib.Log.Debugf("no env file %s: %v", f, err)
		}
	}

	V.AutomaticEnv()
	V.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{}
	if err := V.Unmarshal(cfg); err != nil {
		return nil, err
	}
	lib.SetLevel(cfg.LogLevel)
	return cfg, nil
}
