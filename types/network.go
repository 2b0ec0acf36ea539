package types

// ChainFamily classifies a network into a blockchain family.
type ChainFamily string

const (
	ChainEVM    ChainFamily = "evm"
	ChainSolana ChainFamily = "solana"
)

// IsEVM reports whether the rule describes an EVM address space.
func (r AddressRule) IsEVM() bool {
	return r.Family == ChainEVM
}

// IsSolana reports whether the rule describes Solana public keys.
func (r AddressRule) IsSolana() bool {
	return r.Family == ChainSolana
}

// NetworkCapability is what a configured network advertises to callers.
type NetworkCapability struct {
	Network     string      `json:"network"`
	X402Version int         `json:"x402Version"`
	ChainFamily ChainFamily `json:"chainFamily"`
	Pattern     string      `json:"pattern"`
}

// Capabilities lists the configured networks in sorted order.
func (r NetworkRules) Capabilities() []NetworkCapability {
	caps := make([]NetworkCapability, 0, len(r))
	for _, n := range r.Networks() {
		rule := r[n]
		caps = append(caps, NetworkCapability{
			Network:     n.String(),
			X402Version: int(X402Version1),
			ChainFamily: rule.Family,
			Pattern:     rule.Pattern,
		})
	}
	return caps
}
