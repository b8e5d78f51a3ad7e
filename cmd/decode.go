// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package cmd

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skybreeze/fanctl/pkg/tr198a"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hex|b64:...>",
	Short: "Decode a captured transmit buffer",
	Long: `Decode a transmit buffer back to its codeword fields.

Accepts the container as a hex string or in the "b64:" base64 form. Verifies
the container's length field, recovers the pulse train and classifies the
mark/space pairs back into the 23-bit codeword.`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	data, err := parsePacketArg(args[0])
	if err != nil {
		return err
	}

	pkt, err := tr198a.DecodePacket(data)
	if err != nil {
		return fmt.Errorf("invalid packet: %w", err)
	}

	payload, repeats, err := tr198a.DecodePulses(pkt.Pulses())
	if err != nil {
		return fmt.Errorf("failed to decode pulse train: %w", err)
	}

	fmt.Print(tr198a.FormatPayload(payload))
	fmt.Printf("  Repeats:   %d\n", repeats)
	fmt.Print(tr198a.FormatPacket(pkt))
	return nil
}

// parsePacketArg accepts "b64:..." or bare hex.
func parsePacketArg(arg string) ([]byte, error) {
	if strings.HasPrefix(arg, "b64:") {
		data, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(arg, "b64:"))
		if err != nil {
			return nil, fmt.Errorf("invalid base64: %w", err)
		}
		return data, nil
	}

	data, err := hex.DecodeString(strings.TrimSpace(arg))
	if err != nil {
		return nil, fmt.Errorf("invalid hex (prefix base64 input with \"b64:\"): %w", err)
	}
	return data, nil
}
