package protocol

import "time"

// Reserved wire bytes.
const (
	// Terminator ends every request and response frame (CR, 0x0D)
	Terminator = 0x0D

	// StartMarker is the first byte of every device response ('(', 0x28)
	StartMarker = 0x28
)

// Transmission pacing constants.
//
// The inverter's receive buffer only holds 8 bytes at a time; sending more
// than that in one write makes the device drop the request. Requests are
// therefore written in 8-byte chunks with a delay before each chunk. The
// device's transmit buffer is equally small, so replies trickle out a few
// bytes per read and the reply is padded with NUL bytes up to the buffer
// size.
const (
	// TxChunkSize is the maximum number of bytes written per chunk
	TxChunkSize = 8

	// TxChunkDelay is the pause before each chunk write. 350ms is known
	// to work well across the Axpert family.
	TxChunkDelay = 350 * time.Millisecond

	// RxPollDelay is the pause before each read attempt while the reply
	// buffer fills
	RxPollDelay = 150 * time.Millisecond

	// RxReadSize is the maximum number of bytes requested per read
	RxReadSize = 256

	// DefaultRequestTimeout bounds one complete write+read request cycle
	DefaultRequestTimeout = 10 * time.Second
)

// Acknowledgement payloads for setting commands.
const (
	// AckPayload is the response payload for an accepted command
	AckPayload = "ACK"

	// NakPayload is the response payload for a rejected command
	NakPayload = "NAK"
)
