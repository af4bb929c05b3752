package axpert

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/solarkit/go-axpert/entities"
	"github.com/solarkit/go-axpert/protocol"
)

// Channel is the duplex byte channel to the inverter. The session owns
// its channel exclusively: it is acquired on Open, closed exactly once,
// and never shared. A Channel is not safe for concurrent use and the
// session issues at most one request at a time; callers wanting
// concurrency must serialize access themselves.
type Channel interface {
	io.ReadWriteCloser
}

// Opener acquires the byte channel for a device path. The default opens
// the raw HID character device; deployments wired over RS-232 or tests
// substitute their own.
type Opener func(device string) (Channel, error)

// Inverter is one protocol session against an Axpert inverter. It
// orchestrates the write+read request cycle under a per-request deadline
// and maps logical query and command names onto the wire protocol.
//
// An Inverter is single-threaded: one logical request occupies the
// caller for the full cycle.
type Inverter struct {
	device string
	config Config
	ch     Channel
}

// Open acquires the device channel and returns a ready session.
//
// Example:
//
//	inv, err := axpert.Open("/dev/hidAxpert",
//	    axpert.WithLogger(logger),
//	    axpert.WithTimeout(10*time.Second),
//	)
//	if err != nil {
//	    return err
//	}
//	defer inv.Close()
func Open(device string, opts ...Option) (*Inverter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.Logger.Info().Str("device", device).Msg("opening inverter device")
	ch, err := cfg.Opener(device)
	if err != nil {
		return nil, &DeviceUnavailableError{Device: device, Err: err}
	}

	return &Inverter{device: device, config: cfg, ch: ch}, nil
}

// Close releases the channel. It is idempotent; only the first call
// closes the underlying handle.
func (inv *Inverter) Close() error {
	if inv.ch == nil {
		return nil
	}
	ch := inv.ch
	inv.ch = nil
	inv.config.Logger.Info().Str("device", inv.device).Msg("closing inverter device")
	return ch.Close()
}

// Query issues the named query and returns its decoded, formatted
// result. When addUnits is set, fields with a defined unit are rendered
// as display text with the unit suffixed.
//
// An unknown query name fails before any I/O.
func (inv *Inverter) Query(ctx context.Context, name string, addUnits bool) (*entities.Result, error) {
	q, ok := entities.Queries[name]
	if !ok {
		return nil, &UnknownQueryError{Name: name}
	}

	payload, err := inv.request(ctx, name)
	if err != nil {
		return nil, err
	}

	fields := strings.Split(string(payload), " ")
	if q.Decode != nil {
		return q.Decode(fields)
	}
	return entities.FormatFields(q.Fields, fields, addUnits)
}

// Command issues the named settings command with the given arguments.
// It returns true when the device acknowledges with ACK and false for
// any other reply, NAK included; a rejection is a command-level outcome,
// not an error.
//
// An unknown or disabled command name, or a bad argument, fails before
// any I/O.
func (inv *Inverter) Command(ctx context.Context, name string, args []string) (bool, error) {
	cmd, ok := entities.Commands[name]
	if !ok || cmd.Disabled {
		return false, &UnknownCommandError{Name: name, Disabled: ok}
	}

	mnemonic, err := cmd.BuildMnemonic(args)
	if err != nil {
		return false, err
	}

	payload, err := inv.request(ctx, mnemonic)
	if err != nil {
		return false, err
	}

	accepted := string(payload) == protocol.AckPayload
	inv.config.Logger.Info().
		Str("command", name).
		Str("mnemonic", mnemonic).
		Bool("accepted", accepted).
		Msg("command completed")
	return accepted, nil
}

// request runs one complete transmit+read cycle for a mnemonic under
// the session's request deadline.
func (inv *Inverter) request(ctx context.Context, mnemonic string) ([]byte, error) {
	if inv.ch == nil {
		return nil, &DeviceUnavailableError{Device: inv.device, Err: errors.New("channel is closed")}
	}

	ctx, cancel := context.WithTimeout(ctx, inv.config.Timeout)
	defer cancel()

	log := inv.config.Logger
	frame := protocol.BuildFrame(mnemonic, inv.config.Overrides)
	log.Debug().Str("mnemonic", mnemonic).Hex("frame", frame).Msg("sending request")

	if err := protocol.Transmit(ctx, inv.ch, frame, inv.config.ChunkDelay); err != nil {
		return nil, inv.finishErr(mnemonic, err)
	}

	payload, err := protocol.ReadResponse(ctx, inv.ch, inv.config.PollDelay)
	if err != nil {
		return nil, inv.finishErr(mnemonic, err)
	}

	log.Debug().Str("mnemonic", mnemonic).Bytes("payload", payload).Msg("response received")
	return payload, nil
}

// finishErr classifies a request failure. Validation failures pass
// through typed; a deadline becomes a TimeoutError; anything else is a
// channel-level I/O failure, which invalidates the channel.
func (inv *Inverter) finishErr(mnemonic string, err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		inv.config.Logger.Error().Str("mnemonic", mnemonic).Msg("request timed out")
		return &TimeoutError{Mnemonic: mnemonic, Timeout: inv.config.Timeout}

	case errors.Is(err, context.Canceled):
		return err

	case isValidationErr(err):
		inv.config.Logger.Error().Str("mnemonic", mnemonic).Err(err).Msg("invalid response")
		return err
	}

	// The channel is in an unknown state after an I/O failure; close it
	// so the next request fails fast until the caller reopens.
	inv.config.Logger.Error().Str("mnemonic", mnemonic).Err(err).Msg("channel failure")
	if inv.ch != nil {
		_ = inv.ch.Close()
		inv.ch = nil
	}
	return &DeviceUnavailableError{Device: inv.device, Err: err}
}

// isValidationErr reports whether err is one of the response validation
// failures, which leave the channel usable.
func isValidationErr(err error) bool {
	var malformed *protocol.MalformedResponseError
	var mismatch *protocol.ChecksumMismatchError
	var marker *protocol.StartMarkerError
	return errors.As(err, &malformed) || errors.As(err, &mismatch) || errors.As(err, &marker)
}
