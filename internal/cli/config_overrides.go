package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mithrel/dragkit/internal/config"
)

// applyConfigFlagOverrides copies changed flags onto v. Flags named after a
// config key apply directly; extra maps short flag names to config keys.
func applyConfigFlagOverrides(cmd *cobra.Command, v *viper.Viper, extra map[string]string) {
	for _, opt := range config.GetConfigOptions() {
		if changed(cmd, opt.Key) {
			setFromFlag(cmd, v, opt.Key, opt.Key)
		}
	}
	for flagName, key := range extra {
		if changed(cmd, flagName) {
			setFromFlag(cmd, v, flagName, key)
		}
	}
}

func changed(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

func setFromFlag(cmd *cobra.Command, v *viper.Viper, flagName, key string) {
	switch cmd.Flags().Lookup(flagName).Value.Type() {
	case "bool":
		if val, err := cmd.Flags().GetBool(flagName); err == nil {
			v.Set(key, val)
		}
	default:
		if val, err := cmd.Flags().GetString(flagName); err == nil {
			v.Set(key, val)
		}
	}
}
