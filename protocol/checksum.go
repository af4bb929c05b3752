package protocol

import "github.com/sigurn/crc16"

// xmodemTable drives the CRC-16/XMODEM computation used for both request
// and response checksums: polynomial 0x1021, initial value 0, no
// reflection, no final XOR.
var xmodemTable = crc16.MakeTable(crc16.CRC16_XMODEM)

// Checksum computes the escaped 2-byte checksum for data.
//
// The raw CRC is serialized big-endian into exactly two bytes, then each
// byte equal to a reserved wire value is incremented by one: 0x0D becomes
// 0x0E and 0x28 becomes 0x29. The firmware applies the same substitution
// on its side, so the escaped form is what travels on the wire in both
// directions and what response validation compares against.
func Checksum(data []byte) [2]byte {
	crc := crc16.Checksum(data, xmodemTable)
	return [2]byte{
		escapeByte(byte(crc >> 8)),
		escapeByte(byte(crc)),
	}
}

// escapeByte bumps the two reserved values so a checksum byte can never
// alias the frame terminator or the response start marker.
func escapeByte(b byte) byte {
	if b == Terminator || b == StartMarker {
		return b + 1
	}
	return b
}
