package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// ArgSpec pairs the conversion and validation rules for one command
// argument. Convert turns caller input into its wire form; Validate,
// when set, checks the converted text. Keeping the two on one struct
// guarantees every conversion rule has at most one matching validation
// rule.
type ArgSpec struct {
	Convert  func(raw string) (string, error)
	Validate func(converted string) error
}

// Command describes one settings command: how its arguments become wire
// text and how the final mnemonic is generated from them.
type Command struct {
	// Desc is the human-readable description
	Desc string

	// Args lists the per-argument rules, in order
	Args []ArgSpec

	// Build renders the wire mnemonic from the converted arguments
	Build func(args []string) string

	// Disabled marks commands that are defined but should not be sent,
	// for example because they brick specific firmware revisions
	Disabled bool

	// Prog is the matching program number on the inverter's setup menu
	Prog string
}

// BuildMnemonic converts and validates args and renders the wire
// mnemonic. Argument errors are typed per failure stage.
func (c Command) BuildMnemonic(args []string) (string, error) {
	if len(args) != len(c.Args) {
		return "", &ArgumentCountError{Want: len(c.Args), Got: len(args)}
	}

	converted := make([]string, len(args))
	for i, spec := range c.Args {
		s, err := spec.Convert(args[i])
		if err != nil {
			return "", &ArgumentConversionError{Index: i, Raw: args[i], Reason: err.Error()}
		}
		if spec.Validate != nil {
			if err := spec.Validate(s); err != nil {
				return "", &ArgumentValidationError{Index: i, Raw: args[i], Reason: err.Error()}
			}
		}
		converted[i] = s
	}

	return c.Build(converted), nil
}

// prefixed generates mnemonics of the common shape <PREFIX><args...>.
func prefixed(prefix string) func([]string) string {
	return func(args []string) string {
		return prefix + strings.Join(args, "")
	}
}

// literal generates a fixed mnemonic for argument-free commands.
func literal(mnemonic string) func([]string) string {
	return func([]string) string {
		return mnemonic
	}
}

// enumCode converts a numeric option index into the zero-padded 2-digit
// wire code, rejecting indexes outside [0, count).
func enumCode(count int) func(string) (string, error) {
	return func(raw string) (string, error) {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return "", fmt.Errorf("parse option %q: %w", raw, err)
		}
		if n < 0 || n >= count {
			return "", fmt.Errorf("option %d out of range 0-%d", n, count-1)
		}
		return fmt.Sprintf("%02d", n), nil
	}
}

// voltage converts a decimal voltage into the nn.n wire form and bounds
// it to [min, max] at the validation stage.
func voltage(min, max float64) ArgSpec {
	return ArgSpec{
		Convert: func(raw string) (string, error) {
			f, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return "", fmt.Errorf("parse voltage %q: %w", raw, err)
			}
			return strconv.FormatFloat(f, 'f', 1, 64), nil
		},
		Validate: func(converted string) error {
			f, _ := strconv.ParseFloat(converted, 64)
			if f < min || f > max {
				return fmt.Errorf("voltage %s out of range %.1f-%.1f", converted, min, max)
			}
			return nil
		},
	}
}

// amps converts an integer current into a zero-padded wire code of the
// given width and bounds it to [min, max].
func amps(width, min, max int) ArgSpec {
	return ArgSpec{
		Convert: func(raw string) (string, error) {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return "", fmt.Errorf("parse current %q: %w", raw, err)
			}
			return fmt.Sprintf("%0*d", width, n), nil
		},
		Validate: func(converted string) error {
			n, _ := strconv.Atoi(converted)
			if n < min || n > max {
				return fmt.Errorf("current %dA out of range %d-%dA", n, min, max)
			}
			return nil
		},
	}
}

// flagCode passes a single QFLAG letter through, rejecting anything the
// flag table does not know.
var flagCode = ArgSpec{
	Convert: func(raw string) (string, error) {
		if len(raw) != 1 {
			return "", fmt.Errorf("flag %q must be a single letter", raw)
		}
		if _, ok := flagKeys[raw[0]]; !ok {
			return "", fmt.Errorf("unknown device flag %q", raw)
		}
		return raw, nil
	},
}

// Commands is the static table of supported settings commands, keyed by
// the name callers use. Shared read-only by all requests.
var Commands = map[string]Command{
	"POP": {
		Desc:  "Set output source priority",
		Args:  []ArgSpec{{Convert: enumCode(3)}},
		Build: prefixed("POP"),
		Prog:  "01",
	},
	"PCP": {
		Desc:  "Set charge source priority",
		Args:  []ArgSpec{{Convert: enumCode(4)}},
		Build: prefixed("PCP"),
		Prog:  "16",
	},
	"PBT": {
		Desc:  "Set battery type",
		Args:  []ArgSpec{{Convert: enumCode(3)}},
		Build: prefixed("PBT"),
		Prog:  "05",
	},
	"PGR": {
		Desc:  "Set AC input voltage range",
		Args:  []ArgSpec{{Convert: enumCode(2)}},
		Build: prefixed("PGR"),
		Prog:  "03",
	},
	"PBCV": {
		Desc:  "Set battery re-charge voltage",
		Args:  []ArgSpec{voltage(44.0, 51.0)},
		Build: prefixed("PBCV"),
		Prog:  "26",
	},
	"PBDV": {
		Desc:  "Set battery re-discharge voltage",
		Args:  []ArgSpec{voltage(0.0, 58.4)},
		Build: prefixed("PBDV"),
		Prog:  "29",
	},
	"PSDV": {
		Desc:  "Set battery cut-off voltage",
		Args:  []ArgSpec{voltage(40.0, 48.0)},
		Build: prefixed("PSDV"),
		Prog:  "27",
	},
	"PCVV": {
		Desc:  "Set battery bulk (C.V.) voltage",
		Args:  []ArgSpec{voltage(48.0, 58.4)},
		Build: prefixed("PCVV"),
		Prog:  "28",
	},
	"PBFT": {
		Desc:  "Set battery float voltage",
		Args:  []ArgSpec{voltage(48.0, 58.4)},
		Build: prefixed("PBFT"),
		Prog:  "30",
	},
	"MCHGC": {
		Desc:  "Set max charging current",
		Args:  []ArgSpec{amps(3, 10, 150)},
		Build: prefixed("MCHGC"),
		Prog:  "02",
	},
	"MUCHGC": {
		Desc:  "Set max AC charging current",
		Args:  []ArgSpec{amps(2, 2, 60)},
		Build: prefixed("MUCHGC"),
		Prog:  "11",
	},
	"F": {
		Desc: "Set output frequency",
		Args: []ArgSpec{{
			Convert: func(raw string) (string, error) {
				if raw != "50" && raw != "60" {
					return "", fmt.Errorf("frequency %q must be 50 or 60", raw)
				}
				return raw, nil
			},
		}},
		Build: prefixed("F"),
		Prog:  "09",
	},
	"PE": {
		Desc:  "Enable a device flag",
		Args:  []ArgSpec{flagCode},
		Build: prefixed("PE"),
	},
	"PD": {
		Desc:  "Disable a device flag",
		Args:  []ArgSpec{flagCode},
		Build: prefixed("PD"),
	},
	"PF": {
		Desc:  "Reset all settings to factory defaults",
		Build: literal("PF"),
	},
}
