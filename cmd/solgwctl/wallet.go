package main

import (
	"fmt"

	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"

	"github.com/web3-fighter/sol-rpc-gateway/internal/codec"
	"github.com/web3-fighter/sol-rpc-gateway/internal/config"
	"github.com/web3-fighter/sol-rpc-gateway/internal/outcall"
	"github.com/web3-fighter/sol-rpc-gateway/internal/provider"
	"github.com/web3-fighter/sol-rpc-gateway/internal/rpcclient"
	"github.com/web3-fighter/sol-rpc-gateway/internal/wallet"
)

var (
	walletCaller     string
	walletSeed       string
	walletRawTx      string
	walletTransferTo string
	walletLamports   uint64
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "derive addresses and submit transactions with the dev signer",
}

func buildDevWallet(cfg *config.Config) (*wallet.Wallet, error) {
	if walletCaller == "" {
		return nil, fmt.Errorf("--caller is required")
	}
	signer := wallet.NewDevSigner([]byte(walletSeed))

	driver := &outcall.Driver{Client: outcall.NewRestyClient(newRestyClient()), SubnetSize: cfg.SubnetSize}
	reg, err := buildRegistry(cfg)
	if err != nil {
		return nil, err
	}
	rpc := rpcclient.New(reg, driver, cfg.SubnetSize)

	return wallet.New(signer, rpc, wallet.Config{KeyName: cfg.ThresholdKeyName})
}

var walletAddressCmd = &cobra.Command{
	Use:   "address",
	Short: "print the base58 address the dev signer derives for --caller",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		w, err := buildDevWallet(cfg)
		if err != nil {
			return err
		}
		addr, err := w.AddressBase58(cmd.Context(), []byte(walletCaller))
		if err != nil {
			return err
		}
		fmt.Println(aurora.Cyan(addr))
		return nil
	},
}

var walletSendCmd = &cobra.Command{
	Use:   "send",
	Short: "sign and submit a base58-encoded unsigned transaction for --caller",
	RunE: func(cmd *cobra.Command, args []string) error {
		if walletRawTx == "" {
			return fmt.Errorf("--raw-tx is required")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		w, err := buildDevWallet(cfg)
		if err != nil {
			return err
		}
		sig, err := w.SendTransaction(cmd.Context(), []byte(walletCaller), walletRawTx, wallet.SendTransactionParams{
			Services: rpcclient.Services{Cluster: provider.Cluster(cfg.Cluster)},
		})
		if err != nil {
			return err
		}
		fmt.Println(aurora.Green(sig))
		return nil
	},
}

var walletBuildTransferCmd = &cobra.Command{
	Use:   "build-transfer",
	Short: "build a base58-encoded unsigned SOL transfer from --caller's derived address",
	RunE: func(cmd *cobra.Command, args []string) error {
		if walletTransferTo == "" {
			return fmt.Errorf("--to is required")
		}
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		w, err := buildDevWallet(cfg)
		if err != nil {
			return err
		}
		from, err := w.AddressBase58(cmd.Context(), []byte(walletCaller))
		if err != nil {
			return err
		}

		bh, err := w.RPC.GetLatestBlockhash(cmd.Context(), rpcclient.Services{Cluster: provider.Cluster(cfg.Cluster)}, rpcclient.Config{}, rpcclient.Finalized)
		if err != nil {
			return err
		}
		recentBlockhash, err := codec.BlockHashFromBase58(bh.Blockhash)
		if err != nil {
			return err
		}

		tx, err := wallet.BuildTransferTransaction(from, walletTransferTo, walletLamports, recentBlockhash)
		if err != nil {
			return err
		}
		encoded, err := codec.EncodeTransaction(tx, codec.EncodingBase58)
		if err != nil {
			return err
		}
		fmt.Println(aurora.Cyan(encoded))
		return nil
	},
}

func init() {
	walletCmd.PersistentFlags().StringVar(&walletCaller, "caller", "", "bytes identifying the caller whose key is derived")
	walletCmd.PersistentFlags().StringVar(&walletSeed, "dev-seed", "solgwctl-dev-seed", "master seed for the dev signer (never use in production)")
	walletSendCmd.Flags().StringVar(&walletRawTx, "raw-tx", "", "base58-encoded unsigned transaction")
	walletBuildTransferCmd.Flags().StringVar(&walletTransferTo, "to", "", "base58 recipient address")
	walletBuildTransferCmd.Flags().Uint64Var(&walletLamports, "lamports", 0, "amount to transfer, in lamports")
	walletCmd.AddCommand(walletAddressCmd)
	walletCmd.AddCommand(walletSendCmd)
	walletCmd.AddCommand(walletBuildTransferCmd)
}
