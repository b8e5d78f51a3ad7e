// SPDX-License-Identifier: GPL-2.0-or-later
// Copyright (c) 2026 The fanctl authors

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skybreeze/fanctl/pkg/tr198a"
)

var (
	cmdSpeed     int
	cmdDirection string
	cmdLight     bool
	cmdDim       string
	cmdDimSteps  int
	cmdTimer     int
	cmdBreeze    int
	cmdSend      bool
)

var commandCmd = &cobra.Command{
	Use:   "cmd <id|name>",
	Short: "Build or transmit a fan command",
	Long: `Build one fan command for a paired receiver.

Exactly one command variant must be selected:
  --speed N                 set speed (0-9, 0 = off)
  --direction forward|reverse
  --light                   toggle the light kit
  --dim up|down             step brightness (--dim-steps for a burst)
  --breeze 1|2|3            breeze preset
  --timer 2|4|8             auto-off timer in hours

--direction may accompany --speed; it is the rotation the codeword carries.
Without --send the packet is printed and nothing is transmitted.`,
	Args: cobra.ExactArgs(1),
	RunE: runCommand,
}

func init() {
	rootCmd.AddCommand(commandCmd)
	commandCmd.Flags().IntVar(&cmdSpeed, "speed", -1, "Fan speed 0-9 (0 = off)")
	commandCmd.Flags().StringVar(&cmdDirection, "direction", "", "Rotation direction (forward or reverse)")
	commandCmd.Flags().BoolVar(&cmdLight, "light", false, "Toggle the light kit")
	commandCmd.Flags().StringVar(&cmdDim, "dim", "", "Dim direction (up or down)")
	commandCmd.Flags().IntVar(&cmdDimSteps, "dim-steps", 1, "Consecutive dim steps (1-10, with --dim)")
	commandCmd.Flags().IntVar(&cmdTimer, "timer", 0, "Auto-off timer in hours (2, 4 or 8)")
	commandCmd.Flags().IntVar(&cmdBreeze, "breeze", 0, "Breeze preset (1, 2 or 3)")
	commandCmd.Flags().BoolVar(&cmdSend, "send", false, "Deliver the packet to the selected target")
}

func runCommand(cmd *cobra.Command, args []string) error {
	id, err := resolveIdentity(args[0])
	if err != nil {
		return err
	}

	command, err := buildCommand(cmd)
	if err != nil {
		return err
	}

	pkt, err := tr198a.BuildCommandPacket(id, command)
	if err != nil {
		return err
	}

	if !cmdSend {
		printPacket(id, command, pkt)
		return nil
	}

	if err := deliverPacket(cmd, pkt); err != nil {
		return err
	}
	fmt.Printf("Sent %s to %s\n", command, id)
	return nil
}

// buildCommand maps the variant flags onto one Command, rejecting ambiguous
// combinations before any encoding happens.
func buildCommand(cmd *cobra.Command) (tr198a.Command, error) {
	dir := tr198a.DirectionReverse
	if cmdDirection != "" {
		var err error
		dir, err = tr198a.ParseDirection(cmdDirection)
		if err != nil {
			return tr198a.Command{}, err
		}
	}

	variants := 0
	if cmd.Flags().Changed("speed") {
		variants++
	}
	if cmdLight {
		variants++
	}
	if cmdDim != "" {
		variants++
	}
	if cmdBreeze != 0 {
		variants++
	}
	if cmdTimer != 0 {
		variants++
	}
	directionOnly := cmdDirection != "" && variants == 0

	switch {
	case variants > 1:
		return tr198a.Command{}, fmt.Errorf("select exactly one of --speed, --light, --dim, --breeze, --timer")
	case cmd.Flags().Changed("speed"):
		return tr198a.NewSpeedCommand(cmdSpeed, dir)
	case cmdLight:
		return tr198a.NewLightToggleCommand(), nil
	case cmdDim != "":
		dimDir, err := tr198a.ParseDimDirection(cmdDim)
		if err != nil {
			return tr198a.Command{}, err
		}
		return tr198a.NewDimCommand(dimDir, cmdDimSteps)
	case cmdBreeze != 0:
		return tr198a.NewBreezeCommand(tr198a.BreezePreset(cmdBreeze))
	case cmdTimer != 0:
		return tr198a.NewTimerCommand(cmdTimer)
	case directionOnly:
		return tr198a.NewDirectionCommand(dir)
	}
	return tr198a.Command{}, fmt.Errorf("no command selected (see --help for the variants)")
}
