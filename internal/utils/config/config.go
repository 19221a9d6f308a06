package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"

	"github.com/dwarvesf/swappy/internal/types/environments"
)

// Facilitator execution modes.
const (
	ModeSimulated = "simulated"
	ModeOnchain   = "onchain"
)

const defaultIndexPeriod = "@every 2m"

type AppConfig struct {
	Environment environments.Environment
	ApiServer   ApiServerConfig
	Postgres    DBConnection
	Facilitator FacilitatorConfig
	Blockchain  BlockchainConfig
	Vault       VaultConfig
	Uptime      UptimeConfig
	IndexPeriod string
}

type ApiServerConfig struct {
	Port           string
	AllowedOrigins string
}

type FacilitatorConfig struct {
	Mode                 string
	Address              string
	RouterAddress        string
	WrappedNativeAddress string
	GenesisFile          string
	AutoInitialize       bool
}

type BlockchainConfig struct {
	RPCEndpoint        string
	ChainID            int64
	SwappyContractAddr string
	QuoterContractAddr string
	SignerPrivateKey   string
	IndexFromBlock     uint64
}

// VaultConfig locates the signer key when it is not given inline.
type VaultConfig struct {
	Address    string
	Token      string
	Role       string
	Path       string
	TransitKey string
}

type UptimeConfig struct {
	HeartbeatURL string
}

type DBConnection struct {
	Host string
	Port string
	User string
	Name string
	Pass string

	SSLMode string

	MaxOpenConns int
	MaxIdleConns int
}

func New() *AppConfig {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// this will not override env variables if they already exist
	godotenv.Load(".env." + env)

	mode := os.Getenv("FACILITATOR_MODE")
	if mode == "" {
		mode = ModeSimulated
	}

	indexPeriod := os.Getenv("INDEX_PERIOD")
	if indexPeriod == "" {
		indexPeriod = defaultIndexPeriod
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &AppConfig{
		Environment: environments.Parse(env),
		ApiServer: ApiServerConfig{
			Port:           port,
			AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		},
		Postgres: DBConnection{
			Host:    os.Getenv("DB_HOST"),
			Port:    os.Getenv("DB_PORT"),
			User:    os.Getenv("DB_USER"),
			Name:    os.Getenv("DB_NAME"),
			Pass:    os.Getenv("DB_PASS"),
			SSLMode: os.Getenv("DB_SSL_MODE"),

			MaxOpenConns: int(envVarAsInt64("DB_MAX_OPEN_CONNS", 10)),
			MaxIdleConns: int(envVarAsInt64("DB_MAX_IDLE_CONNS", 5)),
		},
		Facilitator: FacilitatorConfig{
			Mode:                 strings.ToLower(mode),
			Address:              os.Getenv("FACILITATOR_ADDRESS"),
			RouterAddress:        os.Getenv("SWAP_ROUTER_ADDRESS"),
			WrappedNativeAddress: os.Getenv("WETH_ADDRESS"),
			GenesisFile:          os.Getenv("FACILITATOR_GENESIS_FILE"),
			AutoInitialize:       envVarAsBool("FACILITATOR_AUTO_INITIALIZE"),
		},
		Blockchain: BlockchainConfig{
			RPCEndpoint:        os.Getenv("BLOCKCHAIN_RPC_ENDPOINT"),
			ChainID:            envVarAsInt64("BLOCKCHAIN_CHAIN_ID", 1),
			SwappyContractAddr: os.Getenv("BLOCKCHAIN_SWAPPY_CONTRACT_ADDR"),
			QuoterContractAddr: os.Getenv("BLOCKCHAIN_QUOTER_CONTRACT_ADDR"),
			SignerPrivateKey:   os.Getenv("BLOCKCHAIN_SIGNER_PRIVATE_KEY"),
			IndexFromBlock:     uint64(envVarAsInt64("BLOCKCHAIN_INDEX_FROM_BLOCK", 0)),
		},
		Vault: VaultConfig{
			Address:    os.Getenv("VAULT_ADDR"),
			Token:      os.Getenv("VAULT_TOKEN"),
			Role:       os.Getenv("VAULT_ROLE"),
			Path:       os.Getenv("VAULT_SIGNER_PATH"),
			TransitKey: os.Getenv("VAULT_TRANSIT_KEY"),
		},
		Uptime: UptimeConfig{
			HeartbeatURL: os.Getenv("UPTIME_HEARTBEAT_URL"),
		},
		IndexPeriod: indexPeriod,
	}
}

// Validate reports the first missing setting required by the configured mode.
func (c *AppConfig) Validate() error {
	switch c.Facilitator.Mode {
	case ModeSimulated:
		if c.Facilitator.AutoInitialize {
			if c.Facilitator.RouterAddress == "" || c.Facilitator.WrappedNativeAddress == "" {
				return errors.New("auto initialize needs SWAP_ROUTER_ADDRESS and WETH_ADDRESS")
			}
		}
	case ModeOnchain:
		if c.Blockchain.RPCEndpoint == "" {
			return errors.New("BLOCKCHAIN_RPC_ENDPOINT is required in onchain mode")
		}
		if c.Blockchain.SwappyContractAddr == "" {
			return errors.New("BLOCKCHAIN_SWAPPY_CONTRACT_ADDR is required in onchain mode")
		}
		if c.Blockchain.SignerPrivateKey == "" && c.Vault.Address == "" {
			return errors.New("either BLOCKCHAIN_SIGNER_PRIVATE_KEY or VAULT_ADDR is required in onchain mode")
		}
	default:
		return errors.Errorf("unknown facilitator mode %q", c.Facilitator.Mode)
	}
	return nil
}

func envVarAsInt64(envName string, fallback int64) int64 {
	valueStr := os.Getenv(envName)
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.ParseInt(valueStr, 10, 64)
	if err != nil {
		panic(err)
	}

	return value
}

func envVarAsBool(envName string) bool {
	valueStr := os.Getenv(envName)
	return valueStr == "true"
}
