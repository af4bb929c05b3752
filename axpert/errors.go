package axpert

import (
	"fmt"
	"time"
)

// DeviceUnavailableError reports that the device channel could not be
// acquired or failed mid-request. The session's channel is closed when
// this is returned from a request; reopen the session to retry.
type DeviceUnavailableError struct {
	Device string
	Err    error
}

func (e *DeviceUnavailableError) Error() string {
	return fmt.Sprintf("device %s unavailable: %v", e.Device, e.Err)
}

func (e *DeviceUnavailableError) Unwrap() error {
	return e.Err
}

// TimeoutError reports that a request did not complete within the
// session deadline. The channel remains open; the next request may
// still succeed.
type TimeoutError struct {
	Mnemonic string
	Timeout  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request %s timed out after %s", e.Mnemonic, e.Timeout)
}

// UnknownQueryError reports a query name with no registry entry.
type UnknownQueryError struct {
	Name string
}

func (e *UnknownQueryError) Error() string {
	return fmt.Sprintf("unknown query %q", e.Name)
}

// UnknownCommandError reports a command name with no usable registry
// entry. Disabled distinguishes a registered-but-disabled command from
// one that does not exist at all.
type UnknownCommandError struct {
	Name     string
	Disabled bool
}

func (e *UnknownCommandError) Error() string {
	if e.Disabled {
		return fmt.Sprintf("command %q is disabled", e.Name)
	}
	return fmt.Sprintf("unknown command %q", e.Name)
}
