package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/solarkit/go-axpert/device"
	"github.com/solarkit/go-axpert/mqttpub"
	"github.com/solarkit/go-axpert/protocol"
)

const defaultDevice = "/dev/hidAxpert"

// options collects everything the run needs, from defaults, then the
// config file, then command-line flags.
type options struct {
	device   string
	serial   bool
	baud     int
	timeout  time.Duration
	units    bool
	format   string
	pretty   bool
	logfile  string
	loglevel string
	publish  bool
	mqtt     mqttpub.Options
}

func defaultOptions() options {
	return options{
		device:   defaultDevice,
		baud:     device.DefaultBaud,
		timeout:  protocol.DefaultRequestTimeout,
		format:   "raw",
		loglevel: "info",
	}
}

// fileConfig mirrors the TOML config file layout.
type fileConfig struct {
	Device   string     `toml:"device"`
	Serial   bool       `toml:"serial"`
	Baud     int        `toml:"baud"`
	Timeout  string     `toml:"timeout"`
	Units    bool       `toml:"units"`
	Format   string     `toml:"format"`
	Pretty   bool       `toml:"pretty"`
	Logfile  string     `toml:"logfile"`
	Loglevel string     `toml:"loglevel"`
	MQTT     mqttConfig `toml:"mqtt"`
}

type mqttConfig struct {
	Broker         string `toml:"broker"`
	ClientID       string `toml:"client_id"`
	Username       string `toml:"username"`
	Password       string `toml:"password"`
	TopicPrefix    string `toml:"topic_prefix"`
	ConnectTimeout string `toml:"connect_timeout"`
	QoS            int    `toml:"qos"`
	Retain         bool   `toml:"retain"`
}

// applyConfigFile layers the TOML file onto opts. Keys present in the
// file win over defaults but lose to flags the user set explicitly,
// listed in flagSet by flag name.
func applyConfigFile(opts *options, path string, flagSet map[string]bool) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	defined := func(key, flagName string) bool {
		return meta.IsDefined(strings.Split(key, ".")...) && !flagSet[flagName]
	}

	if defined("device", "device") {
		opts.device = raw.Device
	}
	if defined("serial", "serial") {
		opts.serial = raw.Serial
	}
	if defined("baud", "baud") {
		opts.baud = raw.Baud
	}
	if defined("timeout", "timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.Timeout))
		if err != nil {
			return fmt.Errorf("parse timeout: %w", err)
		}
		opts.timeout = d
	}
	if defined("units", "units") {
		opts.units = raw.Units
	}
	if defined("format", "format") {
		opts.format = raw.Format
	}
	if defined("pretty", "pretty") {
		opts.pretty = raw.Pretty
	}
	if defined("logfile", "logfile") {
		opts.logfile = raw.Logfile
	}
	if defined("loglevel", "loglevel") {
		opts.loglevel = raw.Loglevel
	}

	if meta.IsDefined("mqtt", "broker") {
		opts.mqtt.Broker = raw.MQTT.Broker
	}
	if meta.IsDefined("mqtt", "client_id") {
		opts.mqtt.ClientID = raw.MQTT.ClientID
	}
	if meta.IsDefined("mqtt", "username") {
		opts.mqtt.Username = raw.MQTT.Username
	}
	if meta.IsDefined("mqtt", "password") {
		opts.mqtt.Password = raw.MQTT.Password
	}
	if meta.IsDefined("mqtt", "topic_prefix") {
		opts.mqtt.TopicPrefix = raw.MQTT.TopicPrefix
	}
	if meta.IsDefined("mqtt", "connect_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.MQTT.ConnectTimeout))
		if err != nil {
			return fmt.Errorf("parse mqtt connect_timeout: %w", err)
		}
		opts.mqtt.ConnectTimeout = d
	}
	if meta.IsDefined("mqtt", "qos") {
		if raw.MQTT.QoS < 0 || raw.MQTT.QoS > 2 {
			return fmt.Errorf("mqtt qos %d out of range 0-2", raw.MQTT.QoS)
		}
		opts.mqtt.QoS = byte(raw.MQTT.QoS)
	}
	if meta.IsDefined("mqtt", "retain") {
		opts.mqtt.Retain = raw.MQTT.Retain
	}

	return nil
}
