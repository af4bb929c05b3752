package axpert

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/solarkit/go-axpert/device"
	"github.com/solarkit/go-axpert/protocol"
)

// Config holds the session parameters. Zero values are replaced by
// defaults in defaultConfig; callers adjust it through Options.
type Config struct {
	Logger     zerolog.Logger
	Timeout    time.Duration
	ChunkDelay time.Duration
	PollDelay  time.Duration
	Opener     Opener
	Overrides  protocol.Overrides
}

func defaultConfig() Config {
	return Config{
		Logger:     zerolog.Nop(),
		Timeout:    protocol.DefaultRequestTimeout,
		ChunkDelay: protocol.TxChunkDelay,
		PollDelay:  protocol.RxPollDelay,
		Opener: func(dev string) (Channel, error) {
			return device.OpenHID(dev)
		},
	}
}

// Option adjusts the session configuration at Open time.
type Option func(*Config)

// WithLogger attaches a logger to the session. The default discards
// everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

// WithTimeout sets the per-request deadline covering one full
// transmit+read cycle.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithChunkDelay sets the pause before each transmitted chunk.
func WithChunkDelay(d time.Duration) Option {
	return func(c *Config) {
		c.ChunkDelay = d
	}
}

// WithPollDelay sets the pause before each read attempt while waiting
// for the response.
func WithPollDelay(d time.Duration) Option {
	return func(c *Config) {
		c.PollDelay = d
	}
}

// WithOpener substitutes the channel acquisition function, for serial
// transports or tests.
func WithOpener(open Opener) Option {
	return func(c *Config) {
		c.Opener = open
	}
}

// WithChecksumOverride pins the transmitted checksum for one mnemonic,
// for firmware revisions that expect a nonstandard value on specific
// requests. The override applies to the exact mnemonic only.
func WithChecksumOverride(mnemonic string, sum [2]byte) Option {
	return func(c *Config) {
		if c.Overrides == nil {
			c.Overrides = protocol.Overrides{}
		}
		c.Overrides[mnemonic] = sum
	}
}
