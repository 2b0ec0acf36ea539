package utils

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"regexp"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gagliardetto/solana-go"
)

// FingerprintLength is the length in characters of a payment fingerprint
const FingerprintLength = 32

// MinProofLength is the shortest payment proof accepted
const MinProofLength = 10

var base64Proof = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)

// ValidatePaymentProof reports whether proof is at least ten characters long
// and drawn entirely from the base64 alphabet. The proof is not decoded.
func ValidatePaymentProof(proof string) bool {
	if len(proof) < MinProofLength {
		return false
	}
	return base64Proof.MatchString(proof)
}

// GeneratePaymentFingerprint derives a 32 character hex identifier from a
// payment request, used to deduplicate and correlate requests in logs.
//
// The fields are length-prefixed before hashing with Keccak-256 so that no
// two distinct (proof, amount, recipient) triples share an encoding.
func GeneratePaymentFingerprint(proof string, amount int64, recipient string) string {
	buf := make([]byte, 0, 24+len(proof)+len(recipient))
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(proof)))
	buf = append(buf, proof...)
	buf = binary.BigEndian.AppendUint64(buf, uint64(amount))
	buf = binary.BigEndian.AppendUint64(buf, uint64(len(recipient)))
	buf = append(buf, recipient...)

	hash := crypto.Keccak256(buf)
	return hex.EncodeToString(hash[:FingerprintLength/2])
}

// ChecksumAddress returns the EIP-55 checksummed form of an Ethereum address
func ChecksumAddress(address string) (string, error) {
	if !common.IsHexAddress(address) {
		return "", fmt.Errorf("invalid ethereum address: %s", address)
	}
	return common.HexToAddress(address).Hex(), nil
}

// SolanaPublicKey decodes a base58 Solana address into a 32 byte public key
func SolanaPublicKey(address string) (solana.PublicKey, error) {
	pub, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid solana address: %w", err)
	}
	return pub, nil
}
