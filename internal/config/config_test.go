package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{Cluster: "Devnet", SubnetSize: 34, ThresholdKeyName: "dev_key_1"}
}

func TestValidateAcceptsKnownCluster(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsUnknownCluster(t *testing.T) {
	cfg := validConfig()
	cfg.Cluster = "Nope"
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidateRejectsZeroSubnetSize(t *testing.T) {
	cfg := validConfig()
	cfg.SubnetSize = 0
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestValidateRejectsEmptyKeyName(t *testing.T) {
	cfg := validConfig()
	cfg.ThresholdKeyName = ""
	require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
