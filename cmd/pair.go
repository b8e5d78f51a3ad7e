// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skybreeze/fanctl/internal/config"
	"github.com/skybreeze/fanctl/pkg/tr198a"
)

var pairSend bool

var pairCmd = &cobra.Command{
	Use:   "pair <id|name>",
	Short: "Build or transmit a pairing broadcast",
	Long: `Build the pairing broadcast that teaches a receiver a handset identity.

Put the receiver into learning mode (power-cycle it), then transmit within
the learning window. The broadcast is repeated ten times; there is no
handshake, so watch the fan for the confirmation beep.

Without --send the packet is printed and nothing is transmitted.`,
	Args: cobra.ExactArgs(1),
	RunE: runPair,
}

func init() {
	rootCmd.AddCommand(pairCmd)
	pairCmd.Flags().BoolVar(&pairSend, "send", false, "Deliver the packet to the selected target")
}

func runPair(cmd *cobra.Command, args []string) error {
	id, err := resolveIdentity(args[0])
	if err != nil {
		return err
	}

	pkt, err := tr198a.BuildPairPacket(id)
	if err != nil {
		return err
	}

	if !pairSend {
		printPacket(id, tr198a.NewPairCommand(), pkt)
		return nil
	}

	if err := deliverPacket(cmd, pkt); err != nil {
		return err
	}
	fmt.Printf("Pairing broadcast sent for %s\n", id)

	// Record the pairing time when the argument named a saved fan.
	if registry, err := config.LoadRegistry(); err == nil {
		if registry.GetFan(args[0]) != nil {
			registry.MarkPaired(args[0])
			if err := registry.Save(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to update registry: %v\n", err)
			}
		}
	}
	return nil
}
