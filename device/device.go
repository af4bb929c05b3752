// Package device provides byte-channel implementations for the two ways
// an Axpert inverter is usually wired up: the USB HID interface exposed
// as a raw character device, and a classic RS-232 serial port.
//
// Both channel types satisfy io.ReadWriteCloser and normalize their
// "no data yet" conditions to an empty successful read, so the protocol
// reader's poll loop can keep waiting for the reply buffer to fill.
package device

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/tarm/serial"
)

// DefaultBaud is the Axpert factory serial rate.
const DefaultBaud = 2400

// serialReadTimeout keeps individual port reads short so the request
// deadline is observed between polls rather than inside a blocked read.
const serialReadTimeout = 100 * time.Millisecond

// HID wraps the inverter's raw HID character device, typically a udev
// symlink like /dev/hidAxpert.
type HID struct {
	f *os.File
}

// OpenHID opens the raw HID device at path in non-blocking mode.
func OpenHID(path string) (*HID, error) {
	f, err := os.OpenFile(path, os.O_RDWR|syscall.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open hid device %s: %w", path, err)
	}
	return &HID{f: f}, nil
}

// Read reads from the device. EAGAIN from the non-blocking handle means
// the reply buffer has nothing yet and is reported as an empty read.
func (h *HID) Read(p []byte) (int, error) {
	n, err := h.f.Read(p)
	if err != nil && errors.Is(err, syscall.EAGAIN) {
		return 0, nil
	}
	return n, err
}

// Write writes to the device.
func (h *HID) Write(p []byte) (int, error) {
	return h.f.Write(p)
}

// Close closes the device handle.
func (h *HID) Close() error {
	return h.f.Close()
}

// Serial wraps an RS-232 wired inverter port.
type Serial struct {
	port *serial.Port
}

// OpenSerial opens the serial port at path. A baud of 0 selects the
// factory default.
func OpenSerial(path string, baud int) (*Serial, error) {
	if baud == 0 {
		baud = DefaultBaud
	}
	port, err := serial.OpenPort(&serial.Config{
		Name:        path,
		Baud:        baud,
		ReadTimeout: serialReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", path, err)
	}
	return &Serial{port: port}, nil
}

// Read reads from the port. A read timeout on an otherwise healthy port
// is reported as an empty read so the caller's poll loop retries.
func (s *Serial) Read(p []byte) (int, error) {
	n, err := s.port.Read(p)
	if n == 0 && errors.Is(err, io.EOF) {
		return 0, nil
	}
	return n, err
}

// Write writes to the port.
func (s *Serial) Write(p []byte) (int, error) {
	return s.port.Write(p)
}

// Close closes the port.
func (s *Serial) Close() error {
	return s.port.Close()
}
