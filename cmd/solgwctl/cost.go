package main

import (
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/web3-fighter/sol-rpc-gateway/internal/config"
	"github.com/web3-fighter/sol-rpc-gateway/internal/cost"
)

var (
	costRequestBytes     uint64
	costMaxResponseBytes uint64
)

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "price an outcall before making it",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		est := cost.Calculate(costRequestBytes, costMaxResponseBytes, cfg.SubnetSize)
		fmt.Printf("%s %d\n", aurora.Bold("cycles:"), est.Cycles)
		fmt.Printf("%s %d\n", aurora.Bold("cycles_with_collateral:"), est.CyclesWithCollateral)
		return nil
	},
}

func init() {
	costCmd.Flags().Uint64Var(&costRequestBytes, "request-bytes", 0, "size of the JSON-RPC request body")
	costCmd.Flags().Uint64Var(&costMaxResponseBytes, "max-response-bytes", 0, "reserved max response size")
}
