// Package config loads the layerx402 configuration from a file and the
// environment.
package config

import (
	"fmt"
	"strings"

	"github.com/layerx402/layerx402/types"
	"github.com/layerx402/layerx402/utils"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. LAYERX402_FEE_BASIS_POINTS.
const EnvPrefix = "LAYERX402"

// Load merges defaults, the optional config file at path (yaml or json) and
// LAYERX402_* environment variables, in increasing order of precedence.
// Networks declared in the file are added to the default solana and
// ethereum rules.
func Load(path string) (*types.Config, error) {
	v := viper.New()
	setDefaults(v, types.DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, &types.X402Error{
				Code:    types.ErrConfigError,
				Message: fmt.Sprintf("failed to read config %s: %v", path, err),
			}
		}
	}

	cfg := &types.Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, &types.X402Error{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("failed to decode config: %v", err),
		}
	}

	if err := utils.ValidateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *types.Config) {
	v.SetDefault("fee_basis_points", cfg.FeeBasisPoints)
	v.SetDefault("unit_symbol", cfg.UnitSymbol)
	v.SetDefault("unit_decimals", cfg.UnitDecimals)
	v.SetDefault("default_expiry_seconds", cfg.DefaultExpirySeconds)
	v.SetDefault("log_level", cfg.LogLevel)
	v.SetDefault("log_environment", cfg.LogEnvironment)
	v.SetDefault("enable_metrics", cfg.EnableMetrics)

	networks := make(map[string]interface{}, len(cfg.Networks))
	for name, rule := range cfg.Networks {
		networks[name.String()] = map[string]interface{}{
			"pattern": rule.Pattern,
			"family":  string(rule.Family),
		}
	}
	v.SetDefault("networks", networks)
}
