package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"smp/internal/platform/config"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	var cfgFile string
	v := viper.New()

	root := &cobra.Command{
		Use:           "smp-server",
		Short:         "Service metadata publisher for a four-corner e-delivery network",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (YAML); every key can also be set as SMP_<SECTION>_<KEY>")

	loadConfig := func() (config.Config, error) {
		return config.Load(v, cfgFile)
	}
	root.AddCommand(newServeCmd(v, loadConfig))
	return root
}
