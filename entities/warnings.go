package entities

import "fmt"

// ParseWarnings decodes the QPIWS reply, a fixed-length string of '0'
// and '1' characters where position i reports the warning indicator at
// WarningIndicators[i].
//
// A reply whose length does not match the indicator count, or that
// contains anything but '0' and '1', is a hard decode failure.
func ParseWarnings(stat string) (*Result, error) {
	if len(stat) != len(WarningIndicators) {
		return nil, fmt.Errorf("warning bitfield is %d chars, expected %d: %q",
			len(stat), len(WarningIndicators), stat)
	}

	res := NewResult()
	for i, key := range WarningIndicators {
		switch stat[i] {
		case '0':
			res.Set(key, BoolValue(false))
		case '1':
			res.Set(key, BoolValue(true))
		default:
			return nil, fmt.Errorf("warning bitfield position %d is %q, expected '0' or '1': %q",
				i, stat[i], stat)
		}
	}
	return res, nil
}
