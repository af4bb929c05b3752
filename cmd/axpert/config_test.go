package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "axpert.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestApplyConfigFile(t *testing.T) {
	path := writeConfig(t, `
device = "/dev/ttyUSB0"
serial = true
baud = 9600
timeout = "5s"
format = "table"
pretty = true

[mqtt]
broker = "tcp://broker:1883"
topic_prefix = "solar"
qos = 1
retain = true
connect_timeout = "3s"
`)

	opts := defaultOptions()
	if err := applyConfigFile(&opts, path, nil); err != nil {
		t.Fatalf("applyConfigFile: %v", err)
	}

	if opts.device != "/dev/ttyUSB0" || !opts.serial || opts.baud != 9600 {
		t.Errorf("device settings = %q/%v/%d", opts.device, opts.serial, opts.baud)
	}
	if opts.timeout != 5*time.Second {
		t.Errorf("timeout = %s, want 5s", opts.timeout)
	}
	if opts.format != "table" || !opts.pretty {
		t.Errorf("output settings = %q/%v", opts.format, opts.pretty)
	}
	if opts.mqtt.Broker != "tcp://broker:1883" || opts.mqtt.TopicPrefix != "solar" {
		t.Errorf("mqtt settings = %+v", opts.mqtt)
	}
	if opts.mqtt.QoS != 1 || !opts.mqtt.Retain || opts.mqtt.ConnectTimeout != 3*time.Second {
		t.Errorf("mqtt delivery settings = %+v", opts.mqtt)
	}
}

func TestApplyConfigFileDefaultsSurvive(t *testing.T) {
	path := writeConfig(t, `device = "/dev/hidraw3"`)

	opts := defaultOptions()
	if err := applyConfigFile(&opts, path, nil); err != nil {
		t.Fatalf("applyConfigFile: %v", err)
	}

	if opts.device != "/dev/hidraw3" {
		t.Errorf("device = %q", opts.device)
	}
	def := defaultOptions()
	if opts.baud != def.baud || opts.timeout != def.timeout || opts.format != def.format {
		t.Errorf("unset keys changed: %+v", opts)
	}
}

func TestApplyConfigFileFlagWins(t *testing.T) {
	path := writeConfig(t, `
device = "/dev/from-config"
baud = 9600
`)

	opts := defaultOptions()
	opts.device = "/dev/from-flag"
	flagSet := map[string]bool{"device": true}
	if err := applyConfigFile(&opts, path, flagSet); err != nil {
		t.Fatalf("applyConfigFile: %v", err)
	}

	if opts.device != "/dev/from-flag" {
		t.Errorf("device = %q, flag value should win", opts.device)
	}
	if opts.baud != 9600 {
		t.Errorf("baud = %d, config value should apply", opts.baud)
	}
}

func TestApplyConfigFileErrors(t *testing.T) {
	opts := defaultOptions()
	if err := applyConfigFile(&opts, filepath.Join(t.TempDir(), "missing.toml"), nil); err == nil {
		t.Error("missing file accepted")
	}

	bad := writeConfig(t, `timeout = "not-a-duration"`)
	opts = defaultOptions()
	if err := applyConfigFile(&opts, bad, nil); err == nil {
		t.Error("bad duration accepted")
	}

	badQoS := writeConfig(t, "[mqtt]\nqos = 7\n")
	opts = defaultOptions()
	if err := applyConfigFile(&opts, badQoS, nil); err == nil {
		t.Error("out-of-range qos accepted")
	}
}
