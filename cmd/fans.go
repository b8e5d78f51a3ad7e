// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/skybreeze/fanctl/internal/config"
	"github.com/skybreeze/fanctl/pkg/tr198a"
)

var fansAddNotes string

var fansCmd = &cobra.Command{
	Use:   "fans",
	Short: "Manage saved fan identities",
	Long: `Manage the registry of named fans.

A saved name can be used anywhere a handset identity is expected, so
'fanctl cmd bedroom --speed 3 --send' works after
'fanctl fans add bedroom 0x15A9'.`,
}

var fansAddCmd = &cobra.Command{
	Use:   "add <name> <id>",
	Short: "Save a fan identity under a name",
	Args:  cobra.ExactArgs(2),
	RunE:  runFansAdd,
}

var fansListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved fans",
	Args:  cobra.NoArgs,
	RunE:  runFansList,
}

var fansRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Forget a saved fan",
	Args:  cobra.ExactArgs(1),
	RunE:  runFansRm,
}

func init() {
	rootCmd.AddCommand(fansCmd)
	fansCmd.AddCommand(fansAddCmd, fansListCmd, fansRmCmd)
	fansAddCmd.Flags().StringVar(&fansAddNotes, "notes", "", "Free-form notes for the entry")
}

func runFansAdd(cmd *cobra.Command, args []string) error {
	name := args[0]

	id, err := tr198a.ParseID(args[1])
	if err != nil {
		return err
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	registry.SetFan(name, id, fansAddNotes)
	if err := registry.Save(); err != nil {
		return err
	}

	fmt.Printf("Saved %s as %s\n", id, name)
	return nil
}

func runFansList(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	if len(registry.Fans) == 0 {
		fmt.Println("No fans saved. Use 'fanctl fans add <name> <id>'.")
		return nil
	}

	names := make([]string, 0, len(registry.Fans))
	for name := range registry.Fans {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fan := registry.Fans[name]
		fmt.Printf("%-20s %s", name, fan.ID)
		if !fan.PairedAt.IsZero() {
			fmt.Printf("  paired %s", fan.PairedAt.Format("2006-01-02"))
		}
		if fan.Notes != "" {
			fmt.Printf("  (%s)", fan.Notes)
		}
		fmt.Println()
	}
	return nil
}

func runFansRm(cmd *cobra.Command, args []string) error {
	name := args[0]

	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	if !registry.RemoveFan(name) {
		return fmt.Errorf("no saved fan named %q", name)
	}
	if err := registry.Save(); err != nil {
		return err
	}

	fmt.Printf("Removed %s (the receiver still remembers its identity until re-paired)\n", name)
	return nil
}
