// Package layerx402 provides the validation, fee, unit conversion, expiry and
// fingerprint helpers used to prepare payments for the Layerx402 API.
package layerx402

import (
	"fmt"
	"time"

	"github.com/layerx402/layerx402/logger"
	"github.com/layerx402/layerx402/metrics"
	"github.com/layerx402/layerx402/settlement"
	"github.com/layerx402/layerx402/types"
	"github.com/layerx402/layerx402/utils"
	"github.com/layerx402/layerx402/verification"
)

// Layerx402 bundles the payment helpers behind one configuration
type Layerx402 struct {
	validator *verification.Validator
	quoter    *settlement.Quoter
	config    types.Config
	logger    logger.Logger
	metrics   metrics.Recorder
	now       func() time.Time
}

// New creates a new Layerx402 instance with the given configuration.
// A nil config means types.DefaultConfig().
func New(config *types.Config, opts ...Option) (*Layerx402, error) {
	if config == nil {
		config = types.DefaultConfig()
	}

	if err := utils.ValidateConfig(config); err != nil {
		return nil, err
	}

	x := &Layerx402{
		config:  *config,
		logger:  logger.NoopLogger{},
		metrics: metrics.NoopRecorder{},
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(x)
	}

	validator, err := verification.NewValidator(
		config.Networks,
		verification.WithLogger(x.logger),
		verification.WithMetrics(x.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build validator: %w", err)
	}

	quoter, err := settlement.NewQuoter(config.FeeBasisPoints)
	if err != nil {
		return nil, fmt.Errorf("failed to build settlement quoter: %w", err)
	}

	x.validator = validator
	x.quoter = quoter
	x.config.Networks = validator.SupportedNetworks()

	x.logger.Info("layerx402 initialised", map[string]any{
		"networks":         len(x.config.Networks),
		"fee_basis_points": x.config.FeeBasisPoints,
		"unit":             x.config.UnitSymbol,
	})

	return x, nil
}

// NewWithDefaults creates a new Layerx402 instance with default configuration
func NewWithDefaults(opts ...Option) *Layerx402 {
	x, err := New(types.DefaultConfig(), opts...)
	if err != nil {
		panic(fmt.Sprintf("default configuration rejected: %v", err))
	}
	return x
}

// Config returns a copy of the active configuration
func (x *Layerx402) Config() types.Config {
	cfg := x.config
	cfg.Networks = x.validator.SupportedNetworks()
	return cfg
}

// ValidatePaymentProof reports whether proof is a syntactically valid payment proof
func (x *Layerx402) ValidatePaymentProof(proof string) bool {
	return x.validator.ValidatePaymentProof(proof)
}

// ValidateWalletAddress reports whether address is valid on network
func (x *Layerx402) ValidateWalletAddress(address, network string) bool {
	return x.validator.ValidateWalletAddress(address, network)
}

// IsNetworkSupported checks if a network is configured
func (x *Layerx402) IsNetworkSupported(network string) bool {
	return x.validator.IsNetworkSupported(network)
}

// Supported lists the configured networks
func (x *Layerx402) Supported() []types.NetworkCapability {
	return x.validator.SupportedNetworks().Capabilities()
}

// CalculateFee computes the fee for amount at feeBasisPoints
func (x *Layerx402) CalculateFee(amount, feeBasisPoints int64) int64 {
	return utils.CalculateFee(amount, feeBasisPoints)
}

// QuoteSettlement splits gross at the configured fee rate
func (x *Layerx402) QuoteSettlement(gross int64) (*types.SettlementQuote, error) {
	return x.quoter.Quote(gross)
}

// FormatAmount renders subunits in the configured unit
func (x *Layerx402) FormatAmount(subunits int64) string {
	return utils.FormatUnits(subunits, x.config.UnitDecimals, x.config.UnitSymbol)
}

// ParseAmount reads a whole-unit quantity into subunits of the configured unit
func (x *Layerx402) ParseAmount(text string) int64 {
	return utils.ParseUnits(text, x.config.UnitDecimals)
}

// IsPaymentExpired evaluates expiry against the instance clock
func (x *Layerx402) IsPaymentExpired(createdAt, expirySeconds int64) bool {
	return utils.IsPaymentExpiredAt(createdAt, expirySeconds, x.now())
}

// IsPaymentExpiredWithDefault applies the configured default expiry window
func (x *Layerx402) IsPaymentExpiredWithDefault(createdAt int64) bool {
	return x.IsPaymentExpired(createdAt, x.config.DefaultExpirySeconds)
}

// GeneratePaymentFingerprint derives the 32 character request fingerprint
func (x *Layerx402) GeneratePaymentFingerprint(proof string, amount int64, recipient string) string {
	return utils.GeneratePaymentFingerprint(proof, amount, recipient)
}

// Fingerprint derives the fingerprint of a prepared request. A nil request
// fingerprints as the empty payment.
func (x *Layerx402) Fingerprint(req *types.VerifyRequest) string {
	if req == nil {
		return utils.GeneratePaymentFingerprint("", 0, "")
	}
	return utils.GeneratePaymentFingerprint(req.PaymentProof, req.Amount, req.Recipient)
}

// Deduplicate keeps the first request for each fingerprint, in input order,
// and returns the fingerprints of the requests it dropped. Nil entries are
// skipped.
func (x *Layerx402) Deduplicate(reqs []*types.VerifyRequest) ([]*types.VerifyRequest, []string) {
	seen := make(map[string]struct{}, len(reqs))
	unique := make([]*types.VerifyRequest, 0, len(reqs))
	var duplicates []string

	for _, req := range reqs {
		if req == nil {
			continue
		}

		fp := x.Fingerprint(req)
		if _, ok := seen[fp]; ok {
			duplicates = append(duplicates, fp)
			continue
		}
		seen[fp] = struct{}{}
		unique = append(unique, req)
	}

	if len(duplicates) > 0 {
		x.logger.Debug("duplicate verify requests dropped", map[string]any{
			"duplicates": len(duplicates),
		})
	}
	return unique, duplicates
}

// PrepareVerifyRequest validates the inputs and builds the body for the
// remote /payments/verify call
func (x *Layerx402) PrepareVerifyRequest(
	proof string,
	amount int64,
	recipient string,
	network string,
) (*types.VerifyRequest, error) {
	req, err := x.validator.PrepareVerifyRequest(proof, amount, recipient, network)
	if err != nil {
		return nil, err
	}

	x.logger.Info("verify request prepared", map[string]any{
		"network":     req.Network,
		"amount":      x.FormatAmount(req.Amount),
		"fingerprint": x.Fingerprint(req),
	})
	return req, nil
}

// QuickVerify performs every local check without contacting the API
func (x *Layerx402) QuickVerify(req *types.VerifyRequest) *types.VerificationResult {
	return x.validator.QuickVerify(req)
}

// Version information
const (
	Version         = "1.0.0"
	ProtocolVersion = 1
)

// GetVersion returns version information
func GetVersion() map[string]interface{} {
	return map[string]interface{}{
		"library_version":    Version,
		"protocol_version":   ProtocolVersion,
		"supported_networks": types.DefaultNetworkRules().Networks(),
	}
}
