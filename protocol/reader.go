package protocol

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"
)

// ReadResponse accumulates a device reply from r until the terminator
// byte arrives, then validates the frame and returns the inner payload.
//
// Each read requests up to RxReadSize bytes and is preceded by a pause of
// pollDelay so a slowly filling reply buffer is not busy-polled. Reads
// that return no data keep the loop going; the overall request deadline
// on ctx is the only bound on how long that may continue.
//
// Once the terminator has been seen, trailing NUL padding (an artifact of
// the device's fixed-size reply buffer) is stripped and the frame is
// validated in order:
//
//  1. the last byte must be the terminator (MalformedResponseError)
//  2. the trailing 2 bytes must equal the escaped checksum of everything
//     before them (ChecksumMismatchError)
//  3. the first byte must be the start marker (StartMarkerError)
//
// On success the payload between the start marker and the checksum is
// returned.
func ReadResponse(ctx context.Context, r io.Reader, pollDelay time.Duration) ([]byte, error) {
	var resp []byte
	buf := make([]byte, RxReadSize)

	for {
		if err := pause(ctx, pollDelay); err != nil {
			return nil, err
		}

		n, err := r.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("read response: %w", err)
		}
		resp = append(resp, buf[:n]...)

		if bytes.IndexByte(buf[:n], Terminator) >= 0 {
			break
		}
	}

	resp = bytes.TrimRight(resp, "\x00")
	return validate(resp)
}

// validate checks terminator, checksum and start marker, in that order,
// and strips all three from the accumulated reply.
func validate(resp []byte) ([]byte, error) {
	if len(resp) == 0 || resp[len(resp)-1] != Terminator {
		return nil, &MalformedResponseError{Raw: resp}
	}
	resp = resp[:len(resp)-1]

	// Shortest legal reply body is the marker plus the 2-byte checksum.
	if len(resp) < 3 {
		return nil, &MalformedResponseError{Raw: resp}
	}

	body := resp[:len(resp)-2]
	got := [2]byte{resp[len(resp)-2], resp[len(resp)-1]}
	want := Checksum(body)
	if got != want {
		return nil, &ChecksumMismatchError{Raw: resp, Got: got, Want: want}
	}

	if body[0] != StartMarker {
		return nil, &StartMarkerError{Raw: body, Got: body[0]}
	}

	return body[1:], nil
}
