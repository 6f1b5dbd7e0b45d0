package cmd

import (
	"github.com/spf13/cobra"

	"go-landwatch/config"
	"go-landwatch/observability"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:          "landwatch",
	Short:        "Map federal land-policy actions from the Federal Register",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file (optional)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(searchCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, err
	}
	observability.InitLogger("landwatch", cfg.Log.Env, cfg.Log.Level)
	return cfg, nil
}
