package main

import (
	"encoding/json"
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/web3-fighter/sol-rpc-gateway/internal/consensus"
	"github.com/web3-fighter/sol-rpc-gateway/internal/config"
	"github.com/web3-fighter/sol-rpc-gateway/internal/outcall"
	"github.com/web3-fighter/sol-rpc-gateway/internal/provider"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcclient"
)

var (
	rpcCluster   string
	rpcParams    string
	rpcThreshold int
)

var rpcCmd = &cobra.Command{
	Use:   "rpc [method]",
	Short: "invoke a JSON-RPC method against a cluster and print the agreed-upon result",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		var params json.RawMessage
		if rpcParams != "" {
			params = json.RawMessage(rpcParams)
		}

		cluster := provider.Cluster(rpcCluster)
		if cluster == "" {
			cluster = provider.Cluster(cfg.Cluster)
		}

		strategy := consensus.Equality()
		if rpcThreshold > 0 {
			strategy = consensus.Threshold(rpcThreshold)
		}

		driver := &outcall.Driver{Client: outcall.NewRestyClient(newRestyClient()), SubnetSize: cfg.SubnetSize}
		reg, err := buildRegistry(cfg)
		if err != nil {
			return err
		}
		client := rpcclient.New(reg, driver, cfg.SubnetSize)

		result, err := client.Raw(cmd.Context(), rpcclient.Services{Cluster: cluster}, rpcclient.Config{Consensus: strategy}, args[0], params)
		if err != nil {
			return err
		}

		fmt.Println(aurora.Green(string(result)))
		return nil
	},
}

func init() {
	rpcCmd.Flags().StringVar(&rpcCluster, "cluster", "", "cluster to target (defaults to SOLGW_CLUSTER)")
	rpcCmd.Flags().StringVar(&rpcParams, "params", "", "JSON-encoded params array/object")
	rpcCmd.Flags().IntVar(&rpcThreshold, "threshold", 0, "threshold agreement count; 0 means Equality across every provider")
}
