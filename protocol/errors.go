package protocol

import "fmt"

// MalformedResponseError indicates that the accumulated reply does not
// end with the frame terminator after padding removal.
type MalformedResponseError struct {
	// Raw is the reply as accumulated, for logging and diagnostics
	Raw []byte
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("response %q does not end with terminator 0x%02X", e.Raw, Terminator)
}

// ChecksumMismatchError indicates that the 2-byte checksum suffix of a
// reply does not match the checksum computed over the preceding bytes.
type ChecksumMismatchError struct {
	// Raw is the reply with the terminator stripped
	Raw []byte

	// Got is the checksum received from the device
	Got [2]byte

	// Want is the checksum computed over the reply body
	Want [2]byte
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("response %q checksum %02X%02X does not match expected %02X%02X",
		e.Raw, e.Got[0], e.Got[1], e.Want[0], e.Want[1])
}

// StartMarkerError indicates that a checksum-valid reply does not begin
// with the response start marker.
type StartMarkerError struct {
	// Raw is the reply body with terminator and checksum stripped
	Raw []byte

	// Got is the byte found where the start marker was expected
	Got byte
}

func (e *StartMarkerError) Error() string {
	return fmt.Sprintf("response %q starts with 0x%02X, expected marker 0x%02X",
		e.Raw, e.Got, StartMarker)
}
