package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/layerx402/layerx402/utils"
	"github.com/spf13/cobra"
)

func newProofCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "proof <proof>",
		Short: "Check that a payment proof is well formed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.sdk.ValidatePaymentProof(args[0]))
			return nil
		},
	}
}

func newAddressCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address <address>",
		Short: "Check a wallet address for a network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			network, _ := cmd.Flags().GetString("network")
			fmt.Fprintln(cmd.OutOrStdout(), a.sdk.ValidateWalletAddress(args[0], network))
			return nil
		},
	}
	cmd.Flags().String("network", "solana", "Network tag")
	return cmd
}

func newFeeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fee <amount>",
		Short: "Compute the fee for an amount in subunits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseInt("amount", args[0])
			if err != nil {
				return err
			}

			bps := a.cfg.FeeBasisPoints
			if cmd.Flags().Changed("bps") {
				bps, _ = cmd.Flags().GetInt64("bps")
			}

			fmt.Fprintln(cmd.OutOrStdout(), a.sdk.CalculateFee(amount, bps))
			return nil
		},
	}
	cmd.Flags().Int64("bps", 0, "Fee in basis points (default: configured fee)")
	return cmd
}

func newFormatCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "format <subunits>",
		Short: "Format subunits as a whole-unit amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subunits, err := parseInt("subunits", args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.sdk.FormatAmount(subunits))
			return nil
		},
	}
}

func newParseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <amount>",
		Short: "Parse a whole-unit amount such as \"1.5 SOL\" into subunits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), a.sdk.ParseAmount(args[0]))
			return nil
		},
	}
}

func newExpiredCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expired <created-at> [expiry-seconds]",
		Short: "Report whether a payment created at a unix time has expired",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			createdAt, err := parseInt("created-at", args[0])
			if err != nil {
				return err
			}

			if len(args) == 1 {
				fmt.Fprintln(cmd.OutOrStdout(), a.sdk.IsPaymentExpiredWithDefault(createdAt))
				return nil
			}

			expiry, err := parseInt("expiry-seconds", args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.sdk.IsPaymentExpired(createdAt, expiry))
			return nil
		},
	}
}

func newFingerprintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint <proof> <amount> <recipient>",
		Short: "Print the deduplication fingerprint of a payment",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseInt("amount", args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), a.sdk.GeneratePaymentFingerprint(args[0], amount, args[2]))
			return nil
		},
	}
}

func newPrepareCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prepare",
		Short: "Build a /payments/verify request body",
		RunE: func(cmd *cobra.Command, args []string) error {
			proof, _ := cmd.Flags().GetString("proof")
			amount, _ := cmd.Flags().GetInt64("amount")
			recipient, _ := cmd.Flags().GetString("recipient")
			network, _ := cmd.Flags().GetString("network")

			req, err := a.sdk.PrepareVerifyRequest(proof, amount, recipient, network)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), req)
		},
	}

	cmd.Flags().String("proof", "", "Base64 payment proof (required)")
	cmd.Flags().Int64("amount", 0, "Amount in subunits (required)")
	cmd.Flags().String("recipient", "", "Recipient address (required)")
	cmd.Flags().String("network", "solana", "Network tag")
	_ = cmd.MarkFlagRequired("proof")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("recipient")

	return cmd
}

func newVerifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "verify <file|->",
		Short: "Run local checks on a JSON verify request body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			req, err := utils.ParseVerifyRequest(data)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a.sdk.QuickVerify(req))
		},
	}
}

func newQuoteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quote <gross-amount>",
		Short: "Split a gross amount into fee and net payout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			gross, err := parseInt("gross-amount", args[0])
			if err != nil {
				return err
			}

			quote, err := a.sdk.QuoteSettlement(gross)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), quote)
		},
	}
}

func newNetworksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "networks",
		Short: "List configured networks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd.OutOrStdout(), a.sdk.Supported())
		},
	}
}

func parseInt(name, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return n, nil
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := utils.NormalizeJSON(v)
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
