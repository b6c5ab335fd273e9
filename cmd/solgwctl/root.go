// Command solgwctl is the operator CLI for running and exercising the
// gateway outside of any canister host: it can serve the dev ingress, push
// RPC calls straight at a cluster or a registered provider, price a call
// before making it, and drive the wallet signing demo.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/web3-fighter/sol-rpc-gateway/internal/config"
	"github.com/web3-fighter/sol-rpc-gateway/internal/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "solgwctl",
	Short: "operate and exercise the Solana RPC gateway",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("reading config file %s: %w", cfgFile, err)
			}
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := logging.SetupLibrary(cfg.LogLevel); err != nil {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a YAML config file; it is read and must parse, but its values are not applied (configuration comes from environment variables)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(costCmd)
	rootCmd.AddCommand(rpcCmd)
	rootCmd.AddCommand(providerCmd)
	rootCmd.AddCommand(walletCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("solgwctl failed", "err", err)
		os.Exit(1)
	}
}
