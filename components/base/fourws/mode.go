package fourws

import (
	"fmt"
	"strings"

	"github.com/steerlab/fourws/utils"
)

// Mode is the steering mode of a vehicle.
type Mode int

// The steering modes. Icamento is kinematically identical to Straight.
const (
	Straight Mode = iota
	Diagonal
	Pivotal
	Curve
	Icamento
)

var modeNames = map[Mode]string{
	Straight: "straight",
	Diagonal: "diagonal",
	Pivotal:  "pivotal",
	Curve:    "curve",
	Icamento: "icamento",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid returns whether m is one of the known steering modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// UsesICR returns whether the vehicle rotates about an ICR in this mode.
func (m Mode) UsesICR() bool {
	switch m {
	case Curve, Pivotal:
		return true
	case Straight, Diagonal, Icamento:
		return false
	}
	return false
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, utils.NewInvalidArgumentError("mode", int(m), "is not a steering mode")
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParseMode returns the mode with the given case-insensitive name.
func ParseMode(name string) (Mode, error) {
	for mode, modeName := range modeNames {
		if strings.EqualFold(name, modeName) {
			return mode, nil
		}
	}
	return Straight, utils.NewInvalidArgumentError("mode", fmt.Sprintf("%q", name), "is not a steering mode")
}

// NextMode returns the mode that follows m when cycling through the steering modes:
// straight, curve, diagonal, pivotal and back to straight. Icamento leaves the cycle to straight.
func NextMode(m Mode) Mode {
	switch m {
	case Straight:
		return Curve
	case Curve:
		return Diagonal
	case Diagonal:
		return Pivotal
	case Pivotal, Icamento:
		return Straight
	}
	return Straight
}

// Direction is the commanded rolling direction of a Move.
type Direction int

// The rolling directions.
const (
	Forward Direction = iota
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection returns the direction with the given case-insensitive name.
func ParseDirection(name string) (Direction, error) {
	switch strings.ToLower(name) {
	case "forward":
		return Forward, nil
	case "backward":
		return Backward, nil
	}
	return Forward, utils.NewInvalidArgumentError("direction", fmt.Sprintf("%q", name), "is not forward or backward")
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if d != Forward && d != Backward {
		return nil, utils.NewInvalidArgumentError("direction", int(d), "is not forward or backward")
	}
	return []byte(d.String()), nil
}

func (d Direction) sign() float64 {
	if d == Backward {
		return -1
	}
	return 1
}
