package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/logrusorgru/aurora"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/web3-fighter/sol-rpc-gateway/internal/config"
	"github.com/web3-fighter/sol-rpc-gateway/internal/provider"
)

// seedEntry is one row of a provider seed file: a flat YAML list an
// operator hands-writes to pre-populate the registry on startup, instead of
// calling register for every endpoint by hand.
type seedEntry struct {
	ID      string            `yaml:"id"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
	Owner   string            `yaml:"owner"`
}

func loadSeedFile(path string) ([]seedEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}
	var entries []seedEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}
	return entries, nil
}

// buildRegistry constructs a Registry and, if cfg.SeedFile is set, populates
// it from the seed YAML. Each registration is tagged with a fresh
// correlation id for the operator to grep for in logs.
func buildRegistry(cfg *config.Config) (*provider.Registry, error) {
	admins := make(map[string]struct{}, len(cfg.AdminPrincipals))
	for _, p := range cfg.AdminPrincipals {
		admins[p] = struct{}{}
	}
	reg := provider.New(func(caller string) bool {
		_, ok := admins[caller]
		return ok
	})

	if cfg.SeedFile == "" {
		return reg, nil
	}

	entries, err := loadSeedFile(cfg.SeedFile)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		traceID := uuid.New().String()
		owner := e.Owner
		if owner == "" {
			owner = "seed"
		}
		if err := reg.Register(e.ID, provider.RpcApi{URL: e.URL, Headers: e.Headers}, provider.Auth{}, owner); err != nil {
			return nil, fmt.Errorf("seeding provider %s (trace=%s): %w", e.ID, traceID, err)
		}
	}
	return reg, nil
}

var providerCmd = &cobra.Command{
	Use:   "provider",
	Short: "inspect and seed the provider registry",
}

var providerListCmd = &cobra.Command{
	Use:   "list",
	Short: "list the providers a seed file would register, as a tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.SeedFile == "" {
			fmt.Println(aurora.Yellow("no SOLGW_PROVIDER_SEED_FILE configured; nothing to list"))
			return nil
		}
		entries, err := loadSeedFile(cfg.SeedFile)
		if err != nil {
			return err
		}
		fmt.Println(renderProviderTree(entries))
		return nil
	},
}

var providerResolveCmd = &cobra.Command{
	Use:   "resolve [id]",
	Short: "resolve a registered provider id to its auth-applied RpcApi",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		reg, err := buildRegistry(cfg)
		if err != nil {
			return err
		}
		api, err := reg.Resolve(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", aurora.Green("url:"), api.URL)
		for k, v := range api.Headers {
			fmt.Printf("  %s: %s\n", k, v)
		}
		return nil
	},
}

func init() {
	providerCmd.AddCommand(providerListCmd)
	providerCmd.AddCommand(providerResolveCmd)
}

// renderProviderTree is a hand-rolled stand-in for a dedicated tree-printing
// library: one root line per provider id, indented child lines for its url
// and owner.
func renderProviderTree(entries []seedEntry) string {
	var b strings.Builder
	for i, e := range entries {
		branch := "├──"
		if i == len(entries)-1 {
			branch = "└──"
		}
		fmt.Fprintf(&b, "%s %s\n", branch, aurora.Bold(e.ID))
		fmt.Fprintf(&b, "│   url: %s\n", e.URL)
		fmt.Fprintf(&b, "│   owner: %s\n", e.Owner)
	}
	return b.String()
}
