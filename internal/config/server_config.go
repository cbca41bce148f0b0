package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type LoggerServer struct {
	Level              zerolog.Level `json:"level"`
	PrettyPrintConsole bool          `json:"prettyPrintConsole"`
}

type Chain struct {
	// RPCURLs are tried in order; later entries act as fallbacks.
	RPCURLs             []string      `json:"rpcUrls"`
	ExpectedChainID     int64         `json:"expectedChainId"`
	ReceiptPollInterval time.Duration `json:"receiptPollInterval"`
}

type Wallet struct {
	PrivateKey       string `json:"-"`
	KeystorePath     string `json:"keystorePath"`
	KeystorePassword string `json:"-"`
	DerivationPath   string `json:"derivationPath"`
	// AllowAnonymous starts without a signing identity; submissions then answer 401.
	AllowAnonymous   bool   `json:"allowAnonymous"`
}

type Transfer struct {
	BatchPause time.Duration `json:"batchPause"`
	Timeout    time.Duration `json:"timeout"`
}

type NFT struct {
	ContractAddress string `json:"contractAddress"`
	// MintPrice is the ether amount sent along with mint(address).
	MintPrice string `json:"mintPrice"`
}

type EchoServer struct {
	Debug         bool   `json:"debug"`
	ListenAddress string `json:"listenAddress"`
}

type Metrics struct {
	Enabled bool `json:"enabled"`
}

type Server struct {
	Logger   LoggerServer `json:"logger"`
	Chain    Chain        `json:"chain"`
	Wallet   Wallet       `json:"wallet"`
	Transfer Transfer     `json:"transfer"`
	NFT      NFT          `json:"nft"`
	Echo     EchoServer   `json:"echo"`
	Metrics  Metrics      `json:"metrics"`
}

const (
	defaultRPCURL              = "http://127.0.0.1:8545"
	defaultReceiptPollInterval = 2 * time.Second
	defaultBatchPause          = 2 * time.Second
	defaultDerivationPath      = "m/44'/60'/0'/0/0"
	defaultListenAddress       = ":8080"
)

// DefaultServiceConfigFromEnv returns the server config as parsed from environment variables
// and their respective defaults defined below. A .env file in the working directory is
// loaded first if present; variables already set in the environment win.
func DefaultServiceConfigFromEnv() Server {
	_ = gotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("server_logger_level", zerolog.InfoLevel.String())
	v.SetDefault("server_logger_pretty_print_console", false)

	v.SetDefault("chain_rpc_urls", defaultRPCURL)
	v.SetDefault("chain_expected_chain_id", 0)
	v.SetDefault("chain_receipt_poll_interval", defaultReceiptPollInterval)

	v.SetDefault("wallet_private_key", "")
	v.SetDefault("wallet_keystore_path", "")
	v.SetDefault("wallet_keystore_password", "")
	v.SetDefault("wallet_derivation_path", defaultDerivationPath)
	v.SetDefault("wallet_allow_anonymous", false)

	v.SetDefault("transfer_batch_pause", defaultBatchPause)
	v.SetDefault("transfer_timeout", 0)

	v.SetDefault("nft_contract_address", "")
	v.SetDefault("nft_mint_price", "0")

	v.SetDefault("server_echo_debug", false)
	v.SetDefault("server_echo_listen_address", defaultListenAddress)

	v.SetDefault("server_metrics_enabled", true)

	level, err := zerolog.ParseLevel(v.GetString("server_logger_level"))
	if err != nil {
		level = zerolog.InfoLevel
	}

	return Server{
		Logger: LoggerServer{
			Level:              level,
			PrettyPrintConsole: v.GetBool("server_logger_pretty_print_console"),
		},
		Chain: Chain{
			RPCURLs:             ParseRPCURLs(v.GetString("chain_rpc_urls")),
			ExpectedChainID:     v.GetInt64("chain_expected_chain_id"),
			ReceiptPollInterval: v.GetDuration("chain_receipt_poll_interval"),
		},
		Wallet: Wallet{
			PrivateKey:       v.GetString("wallet_private_key"),
			KeystorePath:     v.GetString("wallet_keystore_path"),
			KeystorePassword: v.GetString("wallet_keystore_password"),
			DerivationPath:   v.GetString("wallet_derivation_path"),
			AllowAnonymous:   v.GetBool("wallet_allow_anonymous"),
		},
		Transfer: Transfer{
			BatchPause: v.GetDuration("transfer_batch_pause"),
			Timeout:    v.GetDuration("transfer_timeout"),
		},
		NFT: NFT{
			ContractAddress: v.GetString("nft_contract_address"),
			MintPrice:       v.GetString("nft_mint_price"),
		},
		Echo: EchoServer{
			Debug:         v.GetBool("server_echo_debug"),
			ListenAddress: v.GetString("server_echo_listen_address"),
		},
		Metrics: Metrics{
			Enabled: v.GetBool("server_metrics_enabled"),
		},
	}
}

// ParseRPCURLs splits a comma separated list of RPC URLs, dropping empty entries.
func ParseRPCURLs(raw string) []string {
	parts := strings.Split(raw, ",")
	urls := make([]string, 0, len(parts))
	for _, part := range parts {
		if url := strings.TrimSpace(part); url != "" {
			urls = append(urls, url)
		}
	}

	return urls
}
