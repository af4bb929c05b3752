// Package protocol implements the Axpert inverter serial/HID framing
// protocol: checksum computation, request frame assembly, paced chunked
// transmission and response accumulation with validation.
//
// # Wire Format
//
// Requests and responses share one framing scheme:
//
//	Request:  [MNEMONIC][CHECKSUM_H][CHECKSUM_L][CR]
//	Response: ['('][PAYLOAD][CHECKSUM_H][CHECKSUM_L][CR][NUL padding...]
//
// The checksum is CRC-16/XMODEM over the bytes preceding it, serialized
// big-endian, with the two reserved wire values escaped: a checksum byte
// of 0x0D (the terminator) is sent as 0x0E and 0x28 (the start marker)
// as 0x29.
//
// # Timing
//
// The device's receive and transmit buffers hold only 8 bytes, so the
// transport is timing-sensitive: requests go out in 8-byte chunks with
// TxChunkDelay before each write, replies are polled with RxPollDelay
// between reads, and the whole request cycle is bounded by a context
// deadline. The delays are part of the protocol contract, not tuning
// knobs.
//
// # Usage
//
//	frame := protocol.BuildFrame("QPI", nil)
//	if err := protocol.Transmit(ctx, port, frame, protocol.TxChunkDelay); err != nil {
//	    return err
//	}
//	payload, err := protocol.ReadResponse(ctx, port, protocol.RxPollDelay)
//
// # Error Handling
//
// Validation failures are typed so callers can distinguish them with
// errors.As: MalformedResponseError, ChecksumMismatchError and
// StartMarkerError all carry the raw bytes involved. I/O errors from the
// underlying channel are wrapped and returned as-is; they mean the
// channel is in an unknown state and must be reopened.
package protocol
