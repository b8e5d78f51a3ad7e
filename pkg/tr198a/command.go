// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2026 The fanctl authors

package tr198a

import "fmt"

// CommandKind selects which command family a Command carries. Exactly one
// kind is active per Command value.
type CommandKind int

const (
	CmdSetSpeed CommandKind = iota
	CmdSetDirection
	CmdToggleLight
	CmdDimStep
	CmdBreezePreset
	CmdTimer
	CmdPair
)

// Direction is the fan rotation direction.
type Direction int

const (
	DirectionReverse Direction = iota
	DirectionForward
)

func (d Direction) String() string {
	if d == DirectionForward {
		return "forward"
	}
	return "reverse"
}

// ParseDirection parses "forward" or "reverse".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "forward":
		return DirectionForward, nil
	case "reverse":
		return DirectionReverse, nil
	}
	return 0, fmt.Errorf("invalid direction %q (forward or reverse)", s)
}

// DimDirection is the light dimming direction.
type DimDirection int

const (
	DimUp DimDirection = iota
	DimDown
)

func (d DimDirection) String() string {
	if d == DimDown {
		return "down"
	}
	return "up"
}

// ParseDimDirection parses "up" or "down".
func ParseDimDirection(s string) (DimDirection, error) {
	switch s {
	case "up":
		return DimUp, nil
	case "down":
		return DimDown, nil
	}
	return 0, fmt.Errorf("invalid dim direction %q (up or down)", s)
}

// BreezePreset names one of the handset's automatic speed-variation
// patterns. The set is fixed by the protocol.
type BreezePreset int

const (
	Breeze1 BreezePreset = 1
	Breeze2 BreezePreset = 2
	Breeze3 BreezePreset = 3
)

// breezeSpeedBits maps each preset to its speed-nibble encoding.
var breezeSpeedBits = map[BreezePreset]uint32{
	Breeze1: 0b1101,
	Breeze2: 0b1111,
	Breeze3: 0b1110,
}

// Speed limits for SetSpeed; 0 means off.
const (
	MinSpeed = 0
	MaxSpeed = 9
)

// Timer durations accepted by the receiver, in hours.
var timerHours = map[int]bool{2: true, 4: true, 8: true}

// Dim burst limits for NewDimCommand.
const (
	MinDimSteps = 1
	MaxDimSteps = 10
)

// Command is one validated semantic fan command. Values are only
// constructed through the New*Command constructors, which enforce each
// variant's parameter domain before the encoder ever sees it.
type Command struct {
	kind      CommandKind
	valid     bool
	speed     int
	direction Direction
	dim       DimDirection
	dimSteps  int
	breeze    BreezePreset
	timer     int
}

// Kind returns the active command family.
func (c Command) Kind() CommandKind { return c.kind }

// Direction returns the rotation direction carried by the command.
func (c Command) Direction() Direction { return c.direction }

// DimSteps returns the dim burst length (1 for all non-dim commands).
func (c Command) DimSteps() int {
	if c.kind == CmdDimStep {
		return c.dimSteps
	}
	return 1
}

func (c Command) String() string {
	switch c.kind {
	case CmdSetSpeed:
		return fmt.Sprintf("speed %d %s", c.speed, c.direction)
	case CmdSetDirection:
		return fmt.Sprintf("direction %s", c.direction)
	case CmdToggleLight:
		return "light toggle"
	case CmdDimStep:
		if c.dimSteps > 1 {
			return fmt.Sprintf("dim %s x%d", c.dim, c.dimSteps)
		}
		return fmt.Sprintf("dim %s", c.dim)
	case CmdBreezePreset:
		return fmt.Sprintf("breeze %d", int(c.breeze))
	case CmdTimer:
		return fmt.Sprintf("timer %dh", c.timer)
	case CmdPair:
		return "pair"
	}
	return "invalid"
}

// NewSpeedCommand sets the fan speed (0 = off) with the given rotation
// direction. Levels outside 0-9 fail with *OutOfRangeError.
func NewSpeedCommand(level int, dir Direction) (Command, error) {
	if level < MinSpeed || level > MaxSpeed {
		return Command{}, &OutOfRangeError{Field: "speed", Value: level, Min: MinSpeed, Max: MaxSpeed}
	}
	return Command{kind: CmdSetSpeed, valid: true, speed: level, direction: dir}, nil
}

// NewDirectionCommand changes the rotation direction without touching speed.
func NewDirectionCommand(dir Direction) (Command, error) {
	return Command{kind: CmdSetDirection, valid: true, direction: dir}, nil
}

// NewLightToggleCommand toggles the light kit.
func NewLightToggleCommand() Command {
	return Command{kind: CmdToggleLight, valid: true}
}

// NewDimCommand steps the light brightness. steps > 1 produces a burst
// transmission the receiver interprets as that many consecutive presses.
func NewDimCommand(dir DimDirection, steps int) (Command, error) {
	if steps < MinDimSteps || steps > MaxDimSteps {
		return Command{}, &OutOfRangeError{Field: "dim steps", Value: steps, Min: MinDimSteps, Max: MaxDimSteps}
	}
	return Command{kind: CmdDimStep, valid: true, dim: dir, dimSteps: steps}, nil
}

// NewBreezeCommand selects one of the fixed breeze presets.
func NewBreezeCommand(preset BreezePreset) (Command, error) {
	if _, ok := breezeSpeedBits[preset]; !ok {
		return Command{}, &UnknownPresetError{Preset: int(preset)}
	}
	return Command{kind: CmdBreezePreset, valid: true, breeze: preset}, nil
}

// NewTimerCommand starts the auto-off timer. Only 2, 4 and 8 hours exist on
// the physical handset.
func NewTimerCommand(hours int) (Command, error) {
	if !timerHours[hours] {
		return Command{}, &OutOfRangeError{Field: "timer hours", Value: hours, Min: 2, Max: 8}
	}
	return Command{kind: CmdTimer, valid: true, timer: hours}, nil
}

// NewPairCommand builds the pairing request. It carries no speed or
// direction payload; the receiver only reads the identity bits.
func NewPairCommand() Command {
	return Command{kind: CmdPair, valid: true}
}
