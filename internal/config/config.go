package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	Gateway GatewayConfig `json:"gateway"`
	Wallet  WalletConfig  `json:"wallet"`
	Stub    StubConfig    `json:"stub"`
	Logging LoggingConfig `json:"logging"`
}

// GatewayConfig points the client at the remote dataset/contribution service.
type GatewayConfig struct {
	BaseURL string        `json:"base_url"`
	Timeout time.Duration `json:"timeout"`
}

// WalletConfig configures the wallet provider boundary. ChainID defaults to
// the Sepolia test network.
type WalletConfig struct {
	RPCURL  string `json:"rpc_url"`
	ChainID uint64 `json:"chain_id"`
	Address string `json:"address"`
}

// StubConfig configures the local stub gateway.
type StubConfig struct {
	ListenAddr string `json:"listen_addr"`
}

// LoggingConfig
type LoggingConfig struct {
	Level string `json:"level"`
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Default config
	config := &Config{
		Gateway: GatewayConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 30 * time.Second,
		},
		Wallet: WalletConfig{
			RPCURL:  "https://rpc.sepolia.org",
			ChainID: 11155111,
		},
		Stub: StubConfig{
			ListenAddr: ":8080",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}

	// Load from file if exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			if err := json.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// Override with environment variables
	overrideWithEnv(config)

	return config, nil
}

func overrideWithEnv(config *Config) {
	if baseURL := os.Getenv("GATEWAY_BASE_URL"); baseURL != "" {
		config.Gateway.BaseURL = baseURL
	}
	if timeout := os.Getenv("GATEWAY_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Gateway.Timeout = d
		}
	}
	if rpcURL := os.Getenv("WALLET_RPC_URL"); rpcURL != "" {
		config.Wallet.RPCURL = rpcURL
	}
	if chainID := os.Getenv("WALLET_CHAIN_ID"); chainID != "" {
		if id, err := strconv.ParseUint(chainID, 10, 64); err == nil {
			config.Wallet.ChainID = id
		}
	}
	if address := os.Getenv("WALLET_ADDRESS"); address != "" {
		config.Wallet.Address = address
	}
	if addr := os.Getenv("STUB_LISTEN_ADDR"); addr != "" {
		config.Stub.ListenAddr = addr
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}
