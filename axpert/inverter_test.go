package axpert

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/solarkit/go-axpert/protocol"
)

// mockChannel plays back a scripted response and records everything
// written to it.
type mockChannel struct {
	wrote    []byte
	response []byte
	writeErr error
	readErr  error
	closed   int
}

func (m *mockChannel) Write(p []byte) (int, error) {
	if m.writeErr != nil {
		return 0, m.writeErr
	}
	m.wrote = append(m.wrote, p...)
	return len(p), nil
}

func (m *mockChannel) Read(p []byte) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	if len(m.response) == 0 {
		return 0, nil
	}
	n := copy(p, m.response)
	m.response = m.response[n:]
	return n, nil
}

func (m *mockChannel) Close() error {
	m.closed++
	return nil
}

// deviceResponse frames a payload the way the inverter does.
func deviceResponse(payload string) []byte {
	body := append([]byte{protocol.StartMarker}, payload...)
	sum := protocol.Checksum(body)
	out := append(body, sum[0], sum[1], protocol.Terminator)
	return append(out, 0x00, 0x00)
}

func openMock(t *testing.T, ch *mockChannel, opts ...Option) *Inverter {
	t.Helper()
	opts = append([]Option{
		WithOpener(func(string) (Channel, error) { return ch, nil }),
		WithChunkDelay(0),
		WithPollDelay(time.Millisecond),
	}, opts...)
	inv, err := Open("/dev/mock", opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return inv
}

func TestQueryRoundTrip(t *testing.T) {
	ch := &mockChannel{response: deviceResponse("PI30")}
	inv := openMock(t, ch)
	defer inv.Close()

	res, err := inv.Query(context.Background(), "QPI", false)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}

	v, ok := res.Get("dev_prot_id")
	if !ok || v.String() != "PI30" {
		t.Errorf("dev_prot_id = %v, %v; want PI30", v, ok)
	}

	want := append([]byte("QPI"), 0xBE, 0xAC, protocol.Terminator)
	if string(ch.wrote) != string(want) {
		t.Errorf("wrote % X, want % X", ch.wrote, want)
	}
}

func TestQueryUnknownName(t *testing.T) {
	ch := &mockChannel{}
	inv := openMock(t, ch)
	defer inv.Close()

	_, err := inv.Query(context.Background(), "QBOGUS", false)
	var unknown *UnknownQueryError
	if !errors.As(err, &unknown) || unknown.Name != "QBOGUS" {
		t.Fatalf("err = %v, want UnknownQueryError", err)
	}
	if len(ch.wrote) != 0 {
		t.Errorf("unexpected I/O for unknown query: % X", ch.wrote)
	}
}

func TestCommandAck(t *testing.T) {
	ch := &mockChannel{response: deviceResponse(protocol.AckPayload)}
	inv := openMock(t, ch)
	defer inv.Close()

	ok, err := inv.Command(context.Background(), "POP", []string{"2"})
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	if !ok {
		t.Error("ACK reply reported as rejected")
	}
	if got := string(ch.wrote[:5]); got != "POP02" {
		t.Errorf("mnemonic on wire = %q, want POP02", got)
	}
}

func TestCommandNak(t *testing.T) {
	ch := &mockChannel{response: deviceResponse(protocol.NakPayload)}
	inv := openMock(t, ch)
	defer inv.Close()

	ok, err := inv.Command(context.Background(), "F", []string{"50"})
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	if ok {
		t.Error("NAK reply reported as accepted")
	}
}

func TestCommandUnknownAndDisabled(t *testing.T) {
	ch := &mockChannel{}
	inv := openMock(t, ch)
	defer inv.Close()

	_, err := inv.Command(context.Background(), "NOPE", nil)
	var unknown *UnknownCommandError
	if !errors.As(err, &unknown) || unknown.Disabled {
		t.Fatalf("err = %v, want UnknownCommandError{Disabled: false}", err)
	}
	if len(ch.wrote) != 0 {
		t.Errorf("unexpected I/O for unknown command: % X", ch.wrote)
	}
}

func TestCommandBadArgs(t *testing.T) {
	ch := &mockChannel{}
	inv := openMock(t, ch)
	defer inv.Close()

	_, err := inv.Command(context.Background(), "PBCV", []string{"12.0"})
	if err == nil {
		t.Fatal("out-of-range argument accepted")
	}
	if len(ch.wrote) != 0 {
		t.Errorf("unexpected I/O for bad argument: % X", ch.wrote)
	}
}

func TestQueryChecksumMismatch(t *testing.T) {
	resp := deviceResponse("PI30")
	resp[2] ^= 0x01
	ch := &mockChannel{response: resp}
	inv := openMock(t, ch)
	defer inv.Close()

	_, err := inv.Query(context.Background(), "QPI", false)
	var mismatch *protocol.ChecksumMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("err = %v, want ChecksumMismatchError", err)
	}
	if ch.closed != 0 {
		t.Error("channel closed after validation failure; session should stay usable")
	}
}

func TestQueryTimeout(t *testing.T) {
	ch := &mockChannel{} // never responds
	inv := openMock(t, ch, WithTimeout(20*time.Millisecond))
	defer inv.Close()

	_, err := inv.Query(context.Background(), "QMOD", false)
	var timeout *TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("err = %v, want TimeoutError", err)
	}
	if timeout.Mnemonic != "QMOD" {
		t.Errorf("Mnemonic = %q, want QMOD", timeout.Mnemonic)
	}
	if ch.closed != 0 {
		t.Error("channel closed after timeout; session should stay usable")
	}
}

func TestQueryChannelFailure(t *testing.T) {
	ch := &mockChannel{readErr: io.ErrUnexpectedEOF}
	inv := openMock(t, ch)
	defer inv.Close()

	_, err := inv.Query(context.Background(), "QPI", false)
	var unavailable *DeviceUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("err = %v, want DeviceUnavailableError", err)
	}
	if ch.closed != 1 {
		t.Errorf("channel closed %d times after I/O failure, want 1", ch.closed)
	}

	// Channel is gone; the next request must fail fast without I/O.
	wrote := len(ch.wrote)
	_, err = inv.Query(context.Background(), "QPI", false)
	if !errors.As(err, &unavailable) {
		t.Fatalf("err after channel loss = %v, want DeviceUnavailableError", err)
	}
	if len(ch.wrote) != wrote {
		t.Error("request after channel loss reached the dead channel")
	}
}

func TestOpenFailure(t *testing.T) {
	boom := errors.New("no such device")
	_, err := Open("/dev/none", WithOpener(func(string) (Channel, error) {
		return nil, boom
	}))
	var unavailable *DeviceUnavailableError
	if !errors.As(err, &unavailable) || !errors.Is(err, boom) {
		t.Fatalf("err = %v, want DeviceUnavailableError wrapping cause", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	ch := &mockChannel{}
	inv := openMock(t, ch)

	if err := inv.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := inv.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if ch.closed != 1 {
		t.Errorf("underlying channel closed %d times, want 1", ch.closed)
	}
}

func TestChecksumOverride(t *testing.T) {
	ch := &mockChannel{response: deviceResponse("PI30")}
	inv := openMock(t, ch, WithChecksumOverride("QPI", [2]byte{0xAA, 0xBB}))
	defer inv.Close()

	if _, err := inv.Query(context.Background(), "QPI", false); err != nil {
		t.Fatalf("Query: %v", err)
	}
	want := append([]byte("QPI"), 0xAA, 0xBB, protocol.Terminator)
	if string(ch.wrote) != string(want) {
		t.Errorf("wrote % X, want pinned checksum frame % X", ch.wrote, want)
	}
}
