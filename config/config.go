package config

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"

	"token-bridge/pkg/bridge"
)

// Config holds the application configuration
type Config struct {
	PrivateKey               string
	EthRPCURL                string
	XdaiRPCURL               string
	UniswapAddress           string
	DaiContractAddress       string
	XdaiHomeBridgeAddress    string
	XdaiForeignBridgeAddress string
}

var globalConfig *Config

// Load reads configuration from environment variables and config file
func Load() (*Config, error) {
	viper.SetConfigName(".token-bridge")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("$HOME")
	viper.AddConfigPath(".")

	// Mainnet defaults
	viper.SetDefault("eth_rpc_url", "https://eth.althea.org")
	viper.SetDefault("xdai_rpc_url", "https://dai.althea.org")
	viper.SetDefault("uniswap_address", "0x09cabEC1eAd1c0Ba254B09efb3EE13841712bE14")
	viper.SetDefault("dai_contract_address", "0x89d24A6b4CcB1B6fAA2625fE562bDD9a23260359")
	viper.SetDefault("xdai_home_bridge_address", "0x7301CFA0e1756B71869E93d4e4Dca5c7d0eb0AA6")
	viper.SetDefault("xdai_foreign_bridge_address", "0x4aa42145Aa6Ebf72e164C9bBC74fbD3788045016")

	// Read from environment variables
	viper.SetEnvPrefix("TOKEN_BRIDGE")
	viper.AutomaticEnv()

	// Read config file (optional)
	_ = viper.ReadInConfig()

	// Create config struct
	cfg := &Config{
		PrivateKey:               viper.GetString("private_key"),
		EthRPCURL:                viper.GetString("eth_rpc_url"),
		XdaiRPCURL:               viper.GetString("xdai_rpc_url"),
		UniswapAddress:           viper.GetString("uniswap_address"),
		DaiContractAddress:       viper.GetString("dai_contract_address"),
		XdaiHomeBridgeAddress:    viper.GetString("xdai_home_bridge_address"),
		XdaiForeignBridgeAddress: viper.GetString("xdai_foreign_bridge_address"),
	}

	// Validate signing key
	if cfg.PrivateKey == "" {
		return nil, fmt.Errorf("private key not found. Please set TOKEN_BRIDGE_PRIVATE_KEY environment variable or create a .token-bridge.yaml config file")
	}

	// Validate contract addresses
	for name, addr := range map[string]string{
		"uniswap_address":             cfg.UniswapAddress,
		"dai_contract_address":        cfg.DaiContractAddress,
		"xdai_home_bridge_address":    cfg.XdaiHomeBridgeAddress,
		"xdai_foreign_bridge_address": cfg.XdaiForeignBridgeAddress,
	} {
		if !common.IsHexAddress(addr) {
			return nil, fmt.Errorf("invalid %s: %s", name, addr)
		}
	}

	globalConfig = cfg
	return cfg, nil
}

// EngineConfig converts the loaded configuration into the engine's form
func (c *Config) EngineConfig() bridge.Config {
	return bridge.Config{
		UniswapAddress:           common.HexToAddress(c.UniswapAddress),
		DaiContractAddress:       common.HexToAddress(c.DaiContractAddress),
		XdaiHomeBridgeAddress:    common.HexToAddress(c.XdaiHomeBridgeAddress),
		XdaiForeignBridgeAddress: common.HexToAddress(c.XdaiForeignBridgeAddress),
		PrivateKey:               c.PrivateKey,
		EthRPCURL:                c.EthRPCURL,
		XdaiRPCURL:               c.XdaiRPCURL,
	}
}

// Get returns the global configuration
func Get() *Config {
	if globalConfig == nil {
		cfg, err := Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
			os.Exit(1)
		}
		return cfg
	}
	return globalConfig
}

// Set updates the global configuration
func Set(cfg *Config) {
	globalConfig = cfg
}
