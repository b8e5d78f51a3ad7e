// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package cmd

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/skybreeze/fanctl/internal/transport"
	"github.com/skybreeze/fanctl/pkg/tr198a"
)

var remoteCmd = &cobra.Command{
	Use:   "remote <id|name>",
	Short: "Interactive TUI remote",
	Long: `Control a fan interactively, like holding the physical handset.

Key bindings:
  0-9        set speed (0 = off)
  f / r      rotation forward / reverse
  l          toggle the light kit
  + / -      dim up / down
  b          cycle breeze presets
  t          cycle timer (2h, 4h, 8h)
  P          send a pairing broadcast
  q          quit

Requires a delivery target (--port or --url); every keypress transmits
immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: runRemote,
}

func init() {
	rootCmd.AddCommand(remoteCmd)
}

// remoteSession serializes deliveries from the TUI. Keypresses can outrun
// the radio; one transmission at a time keeps the repeat blocks intact.
type remoteSession struct {
	id     tr198a.HandsetID
	sender transport.Sender
	mu     sync.Mutex
}

func (s *remoteSession) send(cmd tr198a.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pkt, err := tr198a.BuildCommandPacket(s.id, cmd)
	if err != nil {
		return err
	}
	return s.sender.Deliver(context.Background(), pkt)
}

func runRemote(cmd *cobra.Command, args []string) error {
	id, err := resolveIdentity(args[0])
	if err != nil {
		return err
	}

	sender, connInfo, err := OpenSender(cmd.Context())
	if err != nil {
		return err
	}
	defer sender.Close()

	session := &remoteSession{id: id, sender: sender}

	p := tea.NewProgram(initialRemoteModel(session, args[0], connInfo), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
