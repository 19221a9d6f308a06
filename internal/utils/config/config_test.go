package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwarvesf/swappy/internal/types/environments"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("FACILITATOR_MODE", "")
	t.Setenv("INDEX_PERIOD", "")
	t.Setenv("PORT", "")
	t.Setenv("BLOCKCHAIN_CHAIN_ID", "")

	cfg := New()
	assert.Equal(t, environments.Test, cfg.Environment)
	assert.Equal(t, ModeSimulated, cfg.Facilitator.Mode)
	assert.Equal(t, "@every 2m", cfg.IndexPeriod)
	assert.Equal(t, "8080", cfg.ApiServer.Port)
	assert.Equal(t, int64(1), cfg.Blockchain.ChainID)
}

func TestNew_ReadsFacilitatorSettings(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("FACILITATOR_MODE", "ONCHAIN")
	t.Setenv("SWAP_ROUTER_ADDRESS", "0x00000000000000000000000000000000000000e5")
	t.Setenv("WETH_ADDRESS", "0x000000000000000000000000000000000000e770")
	t.Setenv("FACILITATOR_AUTO_INITIALIZE", "true")
	t.Setenv("BLOCKCHAIN_CHAIN_ID", "31337")
	t.Setenv("BLOCKCHAIN_INDEX_FROM_BLOCK", "120")

	cfg := New()
	assert.Equal(t, ModeOnchain, cfg.Facilitator.Mode)
	assert.True(t, cfg.Facilitator.AutoInitialize)
	assert.Equal(t, "0x00000000000000000000000000000000000000e5", cfg.Facilitator.RouterAddress)
	assert.Equal(t, int64(31337), cfg.Blockchain.ChainID)
	assert.Equal(t, uint64(120), cfg.Blockchain.IndexFromBlock)
}

func TestAppConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     AppConfig
		wantErr bool
	}{
		{
			name: "simulated without auto initialize",
			cfg:  AppConfig{Facilitator: FacilitatorConfig{Mode: ModeSimulated}},
		},
		{
			name:    "simulated auto initialize needs addresses",
			cfg:     AppConfig{Facilitator: FacilitatorConfig{Mode: ModeSimulated, AutoInitialize: true}},
			wantErr: true,
		},
		{
			name:    "onchain without endpoint",
			cfg:     AppConfig{Facilitator: FacilitatorConfig{Mode: ModeOnchain}},
			wantErr: true,
		},
		{
			name: "onchain with vault signer",
			cfg: AppConfig{
				Facilitator: FacilitatorConfig{Mode: ModeOnchain},
				Blockchain:  BlockchainConfig{RPCEndpoint: "http://localhost:8545", SwappyContractAddr: "0x1"},
				Vault:       VaultConfig{Address: "http://vault:8200"},
			},
		},
		{
			name: "onchain without signer",
			cfg: AppConfig{
				Facilitator: FacilitatorConfig{Mode: ModeOnchain},
				Blockchain:  BlockchainConfig{RPCEndpoint: "http://localhost:8545", SwappyContractAddr: "0x1"},
			},
			wantErr: true,
		},
		{
			name:    "unknown mode",
			cfg:     AppConfig{Facilitator: FacilitatorConfig{Mode: "fork"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}
