package utils

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/layerx402/layerx402/types"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Register custom validators
	_ = validate.RegisterValidation("paymentproof", validatePaymentProofTag)
}

// ParseVerifyRequest parses and validates a VerifyRequest body from JSON.
// Recipient/network agreement is checked by the verification package.
func ParseVerifyRequest(data []byte) (*types.VerifyRequest, error) {
	var req types.VerifyRequest

	if err := json.Unmarshal(data, &req); err != nil {
		return nil, &types.X402Error{
			Code:    types.ErrInvalidPayload,
			Message: fmt.Sprintf("failed to parse verify request: %v", err),
		}
	}

	if err := validate.Struct(&req); err != nil {
		return nil, &types.X402Error{
			Code:    types.ErrInvalidPayload,
			Message: fmt.Sprintf("validation failed: %v", err),
		}
	}

	return &req, nil
}

// SerializeVerifyRequest converts a VerifyRequest to JSON
func SerializeVerifyRequest(req *types.VerifyRequest) ([]byte, error) {
	return json.Marshal(req)
}

// ParseConfig parses and validates a Config from JSON
func ParseConfig(data []byte) (*types.Config, error) {
	var config types.Config

	if err := json.Unmarshal(data, &config); err != nil {
		return nil, &types.X402Error{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("failed to parse config: %v", err),
		}
	}

	if err := ValidateConfig(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// ValidateConfig checks a Config against its struct tags
func ValidateConfig(config *types.Config) error {
	if err := validate.Struct(config); err != nil {
		return &types.X402Error{
			Code:    types.ErrConfigError,
			Message: fmt.Sprintf("validation failed: %v", err),
		}
	}
	return nil
}

func validatePaymentProofTag(fl validator.FieldLevel) bool {
	return ValidatePaymentProof(fl.Field().String())
}

// NormalizeJSON formats JSON with consistent indentation
func NormalizeJSON(data interface{}) ([]byte, error) {
	return json.MarshalIndent(data, "", "  ")
}
