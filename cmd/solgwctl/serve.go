package main

import (
	"net/http"

	"github.com/ethereum/go-ethereum/log"
	"github.com/spf13/cobra"

	"github.com/web3-fighter/sol-rpc-gateway/internal/config"
	"github.com/web3-fighter/sol-rpc-gateway/internal/devingress"
	"github.com/web3-fighter/sol-rpc-gateway/internal/outcall"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcclient"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "run the local dev ingress, the non-canister stand-in for /rpc and /requestCost",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		reg, err := buildRegistry(cfg)
		if err != nil {
			return err
		}
		driver := &outcall.Driver{Client: outcall.NewRestyClient(newRestyClient()), SubnetSize: cfg.SubnetSize}
		client := rpcclient.New(reg, driver, cfg.SubnetSize)

		router := devingress.NewRouter(&devingress.Server{RPC: client, Registry: reg})

		log.Info("devingress listening", "addr", cfg.ListenAddr)
		return http.ListenAndServe(cfg.ListenAddr, router)
	},
}
