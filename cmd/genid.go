// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skybreeze/fanctl/pkg/tr198a"
)

var genIDCmd = &cobra.Command{
	Use:   "gen-id",
	Short: "Generate a fresh handset identity",
	Long: `Generate a random 13-bit handset identity.

A fan receiver remembers the identity it last paired with, so each virtual
handset needs its own. Save the printed value with 'fanctl fans add' and use
it for every later command to that fan.`,
	Args: cobra.NoArgs,
	RunE: runGenID,
}

func init() {
	rootCmd.AddCommand(genIDCmd)
}

func runGenID(cmd *cobra.Command, args []string) error {
	id, err := tr198a.GenerateID()
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}
