package entities

import "fmt"

// ParseDeviceFlags decodes the QFLAG reply, a string of the form
// "E<chars>D<chars>": flag codes after 'E' are enabled, codes after 'D'
// are disabled. Each code is a single letter resolved through the entity
// table's flag markings.
//
// An unrecognized code, or a code appearing before the first E/D state
// marker, is a hard decode failure.
func ParseDeviceFlags(flags string) (*Result, error) {
	res := NewResult()

	enabled := false
	marked := false
	for i := 0; i < len(flags); i++ {
		c := flags[i]
		switch c {
		case 'E':
			enabled, marked = true, true
		case 'D':
			enabled, marked = false, true
		default:
			key, ok := flagKeys[c]
			if !ok {
				return nil, &UnknownFlagError{Flag: c, Input: flags}
			}
			if !marked {
				return nil, fmt.Errorf("flag %q before E/D marker in %q", c, flags)
			}
			res.Set(key, BoolValue(enabled))
		}
	}

	return res, nil
}
