// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/skybreeze/fanctl/internal/discovery"
)

var discoverTimeout int

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find RF bridges on the local network",
	Long: `Scan the local network for fanctl RF bridges via mDNS.

Bridges started with 'fanctl serve' advertise themselves as ` + discovery.ServiceType + `
services. Use a discovered bridge with --url on any transmit command.`,
	Args: cobra.NoArgs,
	RunE: runDiscover,
}

func init() {
	rootCmd.AddCommand(discoverCmd)
	discoverCmd.Flags().IntVar(&discoverTimeout, "timeout", 5, "Scan timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(discoverTimeout) * time.Second

	fmt.Printf("Scanning for bridges (%ds)...\n\n", discoverTimeout)

	bridges, err := scanner.Scan(cmd.Context())
	if err != nil {
		return err
	}
	if len(bridges) == 0 {
		fmt.Println("No bridges found.")
		return nil
	}

	for _, b := range bridges {
		fmt.Printf("%s\n", b)
		fmt.Printf("  URL:  %s\n", b.URL())
		if auth := b.GetMetadata("auth"); auth != "" {
			fmt.Printf("  Auth: %s\n", auth)
		}
	}
	return nil
}
