package protocol

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

// chunkWriter records every Write call separately so tests can assert on
// chunk boundaries.
type chunkWriter struct {
	chunks [][]byte
	err    error
}

func (w *chunkWriter) Write(p []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	w.chunks = append(w.chunks, append([]byte(nil), p...))
	return len(p), nil
}

func TestBuildFrame(t *testing.T) {
	tests := []struct {
		name     string
		mnemonic string
		ov       Overrides
		expected []byte
	}{
		{
			name:     "QPI",
			mnemonic: "QPI",
			expected: []byte{'Q', 'P', 'I', 0xBE, 0xAC, Terminator},
		},
		{
			name:     "QMOD",
			mnemonic: "QMOD",
			expected: []byte{'Q', 'M', 'O', 'D', 0x49, 0xC1, Terminator},
		},
		{
			name:     "pinned checksum replaces the computed one",
			mnemonic: "QPI",
			ov:       Overrides{"QPI": {0x12, 0x34}},
			expected: []byte{'Q', 'P', 'I', 0x12, 0x34, Terminator},
		},
		{
			name:     "override for another mnemonic is ignored",
			mnemonic: "QPI",
			ov:       Overrides{"QID": {0x12, 0x34}},
			expected: []byte{'Q', 'P', 'I', 0xBE, 0xAC, Terminator},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := BuildFrame(tt.mnemonic, tt.ov)
			if !bytes.Equal(frame, tt.expected) {
				t.Errorf("BuildFrame(%q) = % X, want % X", tt.mnemonic, frame, tt.expected)
			}
		})
	}
}

func TestTransmitChunking(t *testing.T) {
	w := &chunkWriter{}
	frame := BuildFrame("QPIRI", nil) // 8 bytes: one full chunk

	if err := Transmit(context.Background(), w, frame, 0); err != nil {
		t.Fatalf("Transmit() error: %v", err)
	}
	if len(w.chunks) != 1 {
		t.Fatalf("Transmit() wrote %d chunks, want 1", len(w.chunks))
	}
	if !bytes.Equal(w.chunks[0], frame) {
		t.Errorf("chunk = % X, want % X", w.chunks[0], frame)
	}
}

// A 9-byte frame would leave the terminator alone in the final chunk;
// some transports reject a single-byte write of 0x0D, so the chunk must
// be padded with one NUL instead.
func TestTransmitPadsBareTerminatorChunk(t *testing.T) {
	w := &chunkWriter{}
	frame := BuildFrame("QPIGS0", nil)
	if len(frame) != 9 {
		t.Fatalf("test frame is %d bytes, want 9", len(frame))
	}

	if err := Transmit(context.Background(), w, frame, 0); err != nil {
		t.Fatalf("Transmit() error: %v", err)
	}
	if len(w.chunks) != 2 {
		t.Fatalf("Transmit() wrote %d chunks, want 2", len(w.chunks))
	}
	if !bytes.Equal(w.chunks[0], frame[:8]) {
		t.Errorf("first chunk = % X, want % X", w.chunks[0], frame[:8])
	}
	if !bytes.Equal(w.chunks[1], []byte{Terminator, 0x00}) {
		t.Errorf("final chunk = % X, want % X", w.chunks[1], []byte{Terminator, 0x00})
	}
}

func TestTransmitWriteError(t *testing.T) {
	wantErr := errors.New("device gone")
	w := &chunkWriter{err: wantErr}

	err := Transmit(context.Background(), w, BuildFrame("QPI", nil), 0)
	if !errors.Is(err, wantErr) {
		t.Errorf("Transmit() error = %v, want wrapped %v", err, wantErr)
	}
}

func TestTransmitCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := &chunkWriter{}
	err := Transmit(ctx, w, BuildFrame("QPI", nil), 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Transmit() error = %v, want context.Canceled", err)
	}
	if len(w.chunks) != 0 {
		t.Errorf("Transmit() wrote %d chunks after cancellation, want 0", len(w.chunks))
	}
}
