// Package verification checks payment proofs, wallet addresses and request
// bodies before they are handed to the remote verification service.
package verification

import (
	"fmt"
	"regexp"
	"time"

	"github.com/layerx402/layerx402/logger"
	"github.com/layerx402/layerx402/metrics"
	"github.com/layerx402/layerx402/types"
	"github.com/layerx402/layerx402/utils"
)

type addressMatcher struct {
	pattern *regexp.Regexp
	rule    types.AddressRule
}

// Validator validates payment values against a fixed set of network rules.
// It is immutable after construction and safe for concurrent use.
type Validator struct {
	networks map[types.Network]addressMatcher
	logger   logger.Logger
	metrics  metrics.Recorder
}

type Option func(*Validator)

func WithLogger(l logger.Logger) Option {
	return func(v *Validator) {
		v.logger = l
	}
}

func WithMetrics(r metrics.Recorder) Option {
	return func(v *Validator) {
		v.metrics = r
	}
}

// NewValidator compiles rules into a Validator. The rules map is copied, so
// later changes to it have no effect on the returned Validator.
func NewValidator(rules types.NetworkRules, opts ...Option) (*Validator, error) {
	if len(rules) == 0 {
		return nil, &types.X402Error{
			Code:    types.ErrConfigError,
			Message: "at least one network rule is required",
		}
	}

	v := &Validator{
		networks: make(map[types.Network]addressMatcher, len(rules)),
		logger:   logger.NoopLogger{},
		metrics:  metrics.NoopRecorder{},
	}

	for network, rule := range rules {
		if !rule.IsEVM() && !rule.IsSolana() {
			return nil, &types.X402Error{
				Code:    types.ErrConfigError,
				Message: fmt.Sprintf("network %s: unknown chain family %q", network, rule.Family),
			}
		}

		// Patterns must match the whole address.
		pattern, err := regexp.Compile("^(?:" + rule.Pattern + ")$")
		if err != nil {
			return nil, &types.X402Error{
				Code:    types.ErrConfigError,
				Message: fmt.Sprintf("network %s: invalid address pattern: %v", network, err),
			}
		}

		v.networks[network] = addressMatcher{pattern: pattern, rule: rule}
	}

	for _, opt := range opts {
		opt(v)
	}

	return v, nil
}

var defaultValidator = mustNewValidator(types.DefaultNetworkRules())

func mustNewValidator(rules types.NetworkRules) *Validator {
	v, err := NewValidator(rules)
	if err != nil {
		panic(err)
	}
	return v
}

// DefaultValidator returns the shared validator for the solana and ethereum rules
func DefaultValidator() *Validator {
	return defaultValidator
}

// ValidateWalletAddress checks address against the default network rules
func ValidateWalletAddress(address, network string) bool {
	return defaultValidator.ValidateWalletAddress(address, network)
}

// ValidatePaymentProof reports whether proof is syntactically valid
func (v *Validator) ValidatePaymentProof(proof string) bool {
	if utils.ValidatePaymentProof(proof) {
		return true
	}

	v.logger.Debug("payment proof rejected", map[string]any{
		"length": len(proof),
	})
	v.metrics.IncCounter(metrics.EventProofRejected, nil)
	return false
}

// ValidateWalletAddress reports whether address is well formed for network.
// Networks without a rule are always rejected.
func (v *Validator) ValidateWalletAddress(address, network string) bool {
	if v.matchAddress(address, network) {
		return true
	}

	v.logger.Debug("wallet address rejected", map[string]any{
		"network": network,
		"address": address,
	})
	v.metrics.IncCounter(metrics.EventAddressRejected, v.labels(network))
	return false
}

func (v *Validator) matchAddress(address, network string) bool {
	if address == "" {
		return false
	}

	m, ok := v.networks[types.Network(network)]
	if !ok {
		return false
	}

	return m.pattern.MatchString(address)
}

// labels bounds the network label to the configured tags.
func (v *Validator) labels(network string) map[string]string {
	if !v.IsNetworkSupported(network) {
		network = metrics.NetworkUnsupported
	}
	return map[string]string{"network": network}
}

// IsNetworkSupported checks if a network has an address rule
func (v *Validator) IsNetworkSupported(network string) bool {
	_, ok := v.networks[types.Network(network)]
	return ok
}

// SupportedNetworks returns the rules the validator was built with
func (v *Validator) SupportedNetworks() types.NetworkRules {
	rules := make(types.NetworkRules, len(v.networks))
	for n, m := range v.networks {
		rules[n] = m.rule
	}
	return rules
}

// PrepareVerifyRequest validates the inputs of a verification call and
// returns the request body with the recipient in canonical form.
func (v *Validator) PrepareVerifyRequest(
	proof string,
	amount int64,
	recipient string,
	network string,
) (*types.VerifyRequest, error) {
	start := time.Now()
	labels := v.labels(network)
	defer func() {
		v.metrics.ObserveLatency(metrics.OperationPrepareRequest, time.Since(start), labels)
	}()

	req, err := v.prepare(proof, amount, recipient, network)
	if err != nil {
		v.logger.Warn("verify request rejected", map[string]any{
			"network": network,
			"error":   err,
		})
		v.metrics.IncCounter(metrics.EventRequestRejected, labels)
		return nil, err
	}

	v.logger.Debug("verify request prepared", map[string]any{
		"network":   network,
		"amount":    amount,
		"recipient": req.Recipient,
	})
	v.metrics.IncCounter(metrics.EventRequestPrepared, labels)
	return req, nil
}

func (v *Validator) prepare(proof string, amount int64, recipient, network string) (*types.VerifyRequest, error) {
	if !v.ValidatePaymentProof(proof) {
		return nil, &types.X402Error{
			Code:    types.ErrInvalidProof,
			Message: "payment proof must be at least 10 base64 characters",
		}
	}

	if amount <= 0 {
		return nil, &types.X402Error{
			Code:    types.ErrInvalidAmount,
			Message: fmt.Sprintf("amount must be greater than 0, got %d", amount),
		}
	}

	m, ok := v.networks[types.Network(network)]
	if !ok {
		return nil, &types.X402Error{
			Code:    types.ErrUnsupportedNetwork,
			Message: fmt.Sprintf("unsupported network: %s", network),
		}
	}

	if !v.ValidateWalletAddress(recipient, network) {
		return nil, &types.X402Error{
			Code:    types.ErrInvalidAddress,
			Message: fmt.Sprintf("invalid %s recipient address: %s", network, recipient),
		}
	}

	canonical, err := canonicalRecipient(m.rule, recipient)
	if err != nil {
		return nil, &types.X402Error{
			Code:    types.ErrInvalidAddress,
			Message: err.Error(),
		}
	}

	return &types.VerifyRequest{
		PaymentProof: proof,
		Amount:       amount,
		Recipient:    canonical,
		Network:      network,
	}, nil
}

func canonicalRecipient(rule types.AddressRule, recipient string) (string, error) {
	switch {
	case rule.IsEVM():
		return utils.ChecksumAddress(recipient)
	case rule.IsSolana():
		pub, err := utils.SolanaPublicKey(recipient)
		if err != nil {
			return "", err
		}
		return pub.String(), nil
	default:
		return recipient, nil
	}
}

// QuickVerify runs every local check on an already-built request. It never
// returns an error; failures are reported through InvalidReason.
func (v *Validator) QuickVerify(req *types.VerifyRequest) *types.VerificationResult {
	if req == nil {
		return &types.VerificationResult{
			IsValid:       false,
			InvalidReason: "request is required",
		}
	}

	prepared, err := v.prepare(req.PaymentProof, req.Amount, req.Recipient, req.Network)
	if err != nil {
		return &types.VerificationResult{
			IsValid:       false,
			InvalidReason: err.Error(),
			Amount:        req.Amount,
			Recipient:     req.Recipient,
			Network:       req.Network,
		}
	}

	return &types.VerificationResult{
		IsValid:     true,
		Amount:      prepared.Amount,
		Recipient:   prepared.Recipient,
		Network:     prepared.Network,
		Fingerprint: utils.GeneratePaymentFingerprint(prepared.PaymentProof, prepared.Amount, prepared.Recipient),
	}
}
