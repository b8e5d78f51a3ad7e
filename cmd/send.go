// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skybreeze/fanctl/pkg/tr198a"
)

// printPacket renders a built packet for inspection: decoded fields, the
// container summary and the base64 form remote-command integrations accept.
func printPacket(id tr198a.HandsetID, cmd tr198a.Command, pkt *tr198a.Packet) {
	payload, err := tr198a.EncodePayload(id, cmd)
	if err == nil {
		fmt.Print(tr198a.FormatPayload(payload))
	}
	fmt.Print(tr198a.FormatPacket(pkt))
	fmt.Printf("  %s\n", pkt.Base64())
}

// deliverPacket opens the selected target and delivers one packet.
func deliverPacket(cmd *cobra.Command, pkt *tr198a.Packet) error {
	sender, info, err := OpenSender(cmd.Context())
	if err != nil {
		return err
	}
	defer sender.Close()

	fmt.Printf("%s\n", info)
	return sender.Deliver(cmd.Context(), pkt)
}
