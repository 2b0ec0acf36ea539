package types

import "sort"

// X402Version represents the version of the x402 payment protocol
type X402Version int

const (
	X402Version1 X402Version = 1
)

// Network identifies a blockchain network by the tag the payment API uses
type Network string

const (
	NetworkSolana   Network = "solana"
	NetworkEthereum Network = "ethereum"
)

// Subunit conventions for the native Solana asset
const (
	LamportsPerSOL int64  = 1_000_000_000
	SOLDecimals    int32  = 9
	SOLSymbol      string = "SOL"
)

// BasisPointsDenominator is the basis point value that represents 100%
const BasisPointsDenominator int64 = 10_000

// AddressRule describes how wallet addresses for a network are recognised.
type AddressRule struct {
	// Regular expression a wallet address must fully match.
	Pattern string `json:"pattern" mapstructure:"pattern" validate:"required"`

	// Chain family the network belongs to, used to pick a recipient codec.
	Family ChainFamily `json:"family" mapstructure:"family" validate:"required,oneof=evm solana"`
}

// NetworkRules maps a network tag to its address rule.
type NetworkRules map[Network]AddressRule

// DefaultNetworkRules returns the two networks recognised out of the box.
func DefaultNetworkRules() NetworkRules {
	return NetworkRules{
		NetworkSolana: {
			Pattern: `^[1-9A-HJ-NP-Za-km-z]{32,44}$`,
			Family:  ChainSolana,
		},
		NetworkEthereum: {
			Pattern: `^0x[a-fA-F0-9]{40}$`,
			Family:  ChainEVM,
		},
	}
}

// Networks returns the configured network tags in sorted order
func (r NetworkRules) Networks() []Network {
	networks := make([]Network, 0, len(r))
	for n := range r {
		networks = append(networks, n)
	}
	sort.Slice(networks, func(i, j int) bool { return networks[i] < networks[j] })
	return networks
}

// VerifyRequest is the body submitted to the remote /payments/verify endpoint.
type VerifyRequest struct {
	// Opaque base64 payment proof.
	PaymentProof string `json:"payment_proof" validate:"required,paymentproof"`

	// Amount in subunits of the network's native asset.
	Amount int64 `json:"amount" validate:"gt=0"`

	// Recipient wallet address on Network.
	Recipient string `json:"recipient" validate:"required"`

	// Network tag, e.g. "solana".
	Network string `json:"network" validate:"required"`
}

// VerificationResult contains the result of a local pre-submission check
type VerificationResult struct {
	IsValid       bool   `json:"isValid"`
	InvalidReason string `json:"invalidReason,omitempty"`
	Amount        int64  `json:"amount,omitempty"`
	Recipient     string `json:"recipient,omitempty"`
	Network       string `json:"network,omitempty"`
	Fingerprint   string `json:"fingerprint,omitempty"`
}

// SettlementQuote splits a gross amount into platform fee and net payout
type SettlementQuote struct {
	GrossAmount    int64 `json:"gross_amount"`
	FeeAmount      int64 `json:"fee_amount"`
	NetAmount      int64 `json:"net_amount"`
	FeeBasisPoints int64 `json:"fee_basis_points"`
}

// Config contains global configuration for the layerx402 library
type Config struct {
	FeeBasisPoints       int64        `json:"feeBasisPoints" mapstructure:"fee_basis_points" validate:"gte=0,lte=10000"`
	UnitSymbol           string       `json:"unitSymbol" mapstructure:"unit_symbol" validate:"required"`
	UnitDecimals         int32        `json:"unitDecimals" mapstructure:"unit_decimals" validate:"gte=0,lte=18"`
	DefaultExpirySeconds int64        `json:"defaultExpirySeconds" mapstructure:"default_expiry_seconds" validate:"gte=0"`
	Networks             NetworkRules `json:"networks" mapstructure:"networks" validate:"required,min=1,dive,keys,required,endkeys"`
	LogLevel             string       `json:"logLevel,omitempty" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	LogEnvironment       string       `json:"logEnvironment,omitempty" mapstructure:"log_environment" validate:"omitempty,oneof=development production"`
	EnableMetrics        bool         `json:"enableMetrics,omitempty" mapstructure:"enable_metrics"`
}

// DefaultConfig returns the configuration matching the SOL conventions
func DefaultConfig() *Config {
	return &Config{
		FeeBasisPoints:       100,
		UnitSymbol:           SOLSymbol,
		UnitDecimals:         SOLDecimals,
		DefaultExpirySeconds: 3600,
		Networks:             DefaultNetworkRules(),
		LogLevel:             "info",
		LogEnvironment:       "production",
	}
}

// Error types
type X402Error struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e X402Error) Error() string {
	return e.Message
}

// Common error codes
const (
	ErrInvalidProof       = "INVALID_PROOF"
	ErrInvalidAddress     = "INVALID_ADDRESS"
	ErrInvalidAmount      = "INVALID_AMOUNT"
	ErrUnsupportedNetwork = "UNSUPPORTED_NETWORK"
	ErrInvalidPayload     = "INVALID_PAYLOAD"
	ErrConfigError        = "CONFIG_ERROR"
)

func (n Network) String() string {
	return string(n)
}
