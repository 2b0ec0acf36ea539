package utils

import (
	"errors"
	"testing"

	"github.com/layerx402/layerx402/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerifyRequest(t *testing.T) {
	t.Run("Succeed", func(t *testing.T) {
		body := []byte(`{
			"payment_proof": "QmFzZTY0RW5jb2RlZFBheW1lbnRQcm9vZg==",
			"amount": 1000000,
			"recipient": "TokenkegQfeZyiNwAJbNbGKPFXCWuBvf9Ss623VQ5DA",
			"network": "solana"
		}`)

		req, err := ParseVerifyRequest(body)
		require.NoError(t, err)
		assert.Equal(t, int64(1_000_000), req.Amount)
		assert.Equal(t, "solana", req.Network)

		out, err := SerializeVerifyRequest(req)
		require.NoError(t, err)
		assert.JSONEq(t, string(body), string(out))
	})

	t.Run("Fail", func(t *testing.T) {
		bodies := map[string]string{
			"malformed json":   `{"payment_proof":`,
			"amount as string": `{"payment_proof":"QmFzZTY0RW5jb2Rl","amount":"1","recipient":"r","network":"solana"}`,
			"missing fields":   `{"payment_proof":"QmFzZTY0RW5jb2Rl"}`,
			"bad proof":        `{"payment_proof":"INVALID_PROOF","amount":1,"recipient":"r","network":"solana"}`,
			"zero amount":      `{"payment_proof":"QmFzZTY0RW5jb2Rl","amount":0,"recipient":"r","network":"solana"}`,
		}

		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				_, err := ParseVerifyRequest([]byte(body))
				require.Error(t, err)

				var xerr *types.X402Error
				require.True(t, errors.As(err, &xerr))
				assert.Equal(t, types.ErrInvalidPayload, xerr.Code)
			})
		}
	})
}

func TestParseConfig(t *testing.T) {
	t.Run("Succeed", func(t *testing.T) {
		cfg, err := ParseConfig([]byte(`{
			"feeBasisPoints": 50,
			"unitSymbol": "SOL",
			"unitDecimals": 9,
			"defaultExpirySeconds": 600,
			"networks": {
				"solana": {"pattern": "^[1-9A-HJ-NP-Za-km-z]{32,44}$", "family": "solana"},
				"polygon": {"pattern": "^0x[a-fA-F0-9]{40}$", "family": "evm"}
			}
		}`))
		require.NoError(t, err)
		assert.Equal(t, int64(50), cfg.FeeBasisPoints)
		assert.Equal(t, []types.Network{"polygon", "solana"}, cfg.Networks.Networks())
	})

	t.Run("Fail", func(t *testing.T) {
		bodies := map[string]string{
			"malformed":      `{`,
			"no networks":    `{"unitSymbol":"SOL","unitDecimals":9}`,
			"fee above 100%": `{"feeBasisPoints":10001,"unitSymbol":"SOL","networks":{"solana":{"pattern":".","family":"solana"}}}`,
			"unknown family": `{"unitSymbol":"SOL","networks":{"cosmos":{"pattern":".","family":"cosmos"}}}`,
			"empty pattern":  `{"unitSymbol":"SOL","networks":{"solana":{"pattern":"","family":"solana"}}}`,
			"bad log level":  `{"unitSymbol":"SOL","logLevel":"loud","networks":{"solana":{"pattern":".","family":"solana"}}}`,
		}

		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				_, err := ParseConfig([]byte(body))
				require.Error(t, err)

				var xerr *types.X402Error
				require.True(t, errors.As(err, &xerr))
				assert.Equal(t, types.ErrConfigError, xerr.Code)
			})
		}
	})
}

func TestValidateConfigDefaults(t *testing.T) {
	assert.NoError(t, ValidateConfig(types.DefaultConfig()))
}
