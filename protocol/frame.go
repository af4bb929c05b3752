package protocol

import (
	"context"
	"fmt"
	"io"
	"time"
)

// Overrides maps a mnemonic to a fixed checksum that replaces the
// computed one when building its request frame.
//
// Some firmware revisions are known to compute a wrong checksum for
// specific mnemonics and reject the correct one. A deployment that talks
// to such a device can pin the checksum the firmware expects here instead
// of patching the codec.
type Overrides map[string][2]byte

// BuildFrame assembles the wire frame for a mnemonic:
//
//	[MNEMONIC bytes][CHECKSUM_H][CHECKSUM_L][CR]
//
// The checksum is the escaped CRC-16/XMODEM of the mnemonic bytes, unless
// ov pins a replacement for this mnemonic. The returned slice is never
// mutated afterwards.
func BuildFrame(mnemonic string, ov Overrides) []byte {
	sum, pinned := ov[mnemonic]
	if !pinned {
		sum = Checksum([]byte(mnemonic))
	}

	frame := make([]byte, 0, len(mnemonic)+3)
	frame = append(frame, mnemonic...)
	frame = append(frame, sum[0], sum[1])
	frame = append(frame, Terminator)
	return frame
}

// Transmit writes frame to w in TxChunkSize pieces, pausing for delay
// before each write. The pacing matches the device's 8-byte receive
// buffer; skipping it makes the device drop the request, so callers
// should only shorten the delay when talking to a test double.
//
// A final chunk consisting of the bare terminator byte is padded with one
// trailing NUL: some HID transport layers reject a single-byte write of
// 0x0D, and the device ignores the extra NUL.
//
// Transmit returns the context error if ctx expires during a pause, or
// the write error of the failing chunk. A write error means the channel
// is in an unknown state and must not be reused.
func Transmit(ctx context.Context, w io.Writer, frame []byte, delay time.Duration) error {
	for off := 0; off < len(frame); off += TxChunkSize {
		if err := pause(ctx, delay); err != nil {
			return err
		}

		end := off + TxChunkSize
		if end > len(frame) {
			end = len(frame)
		}
		chunk := frame[off:end]
		if len(chunk) == 1 && chunk[0] == Terminator {
			chunk = []byte{Terminator, 0x00}
		}

		if _, err := w.Write(chunk); err != nil {
			return fmt.Errorf("write chunk at offset %d: %w", off, err)
		}
	}
	return nil
}

// pause sleeps for d unless ctx expires first. A non-positive d still
// checks ctx so a cancelled request never issues another write or read.
func pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
