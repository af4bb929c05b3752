// Command axpert queries and configures Axpert-family solar inverters
// over their HID or serial interface.
//
// Usage:
//
//	axpert -query QPIGS -format table
//	axpert -command POP -args 2
//	axpert -config /etc/axpert.toml -query QPIGS -publish
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/solarkit/go-axpert/axpert"
	"github.com/solarkit/go-axpert/device"
	"github.com/solarkit/go-axpert/entities"
	"github.com/solarkit/go-axpert/mqttpub"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	opts := defaultOptions()

	var (
		queryName   string
		commandName string
		commandArgs string
		configPath  string
		list        bool
	)

	fs := flag.NewFlagSet("axpert", flag.ExitOnError)
	fs.StringVar(&opts.device, "device", opts.device, "inverter device path")
	fs.BoolVar(&opts.serial, "serial", opts.serial, "use an RS-232 serial port instead of a HID device")
	fs.IntVar(&opts.baud, "baud", opts.baud, "serial baud rate")
	fs.DurationVar(&opts.timeout, "timeout", opts.timeout, "per-request deadline")
	fs.StringVar(&queryName, "query", "", "query to issue, for example QPIGS")
	fs.StringVar(&commandName, "command", "", "settings command to issue, for example POP")
	fs.StringVar(&commandArgs, "args", "", "comma-separated command arguments")
	fs.BoolVar(&opts.units, "units", opts.units, "append units to query values that define one")
	fs.StringVar(&opts.format, "format", opts.format, "output format: raw, json or table")
	fs.BoolVar(&opts.pretty, "pretty", opts.pretty, "pretty output where the format supports it")
	fs.BoolVar(&opts.publish, "publish", opts.publish, "publish the query result to the configured MQTT broker")
	fs.StringVar(&opts.logfile, "logfile", opts.logfile, "log destination: - for stdout, _ for stderr, or a file path; empty disables")
	fs.StringVar(&opts.loglevel, "loglevel", opts.loglevel, "log level: debug, info, warn or error")
	fs.StringVar(&configPath, "config", "", "TOML config file path")
	fs.BoolVar(&list, "list", false, "list known queries and commands and exit")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	if list {
		printRegistry(os.Stdout)
		return 0
	}

	if configPath != "" {
		flagSet := map[string]bool{}
		fs.Visit(func(f *flag.Flag) { flagSet[f.Name] = true })
		if err := applyConfigFile(&opts, configPath, flagSet); err != nil {
			fmt.Fprintf(os.Stderr, "axpert: %v\n", err)
			return 1
		}
	}

	if queryName == "" && commandName == "" {
		fmt.Fprintln(os.Stderr, "axpert: nothing to do, pass -query or -command")
		return 2
	}

	logger, closeLog, err := setupLogger(opts.logfile, opts.loglevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "axpert: %v\n", err)
		return 1
	}
	defer closeLog.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessOpts := []axpert.Option{
		axpert.WithLogger(logger),
		axpert.WithTimeout(opts.timeout),
	}
	if opts.serial {
		baud := opts.baud
		sessOpts = append(sessOpts, axpert.WithOpener(func(dev string) (axpert.Channel, error) {
			return device.OpenSerial(dev, baud)
		}))
	}

	inv, err := axpert.Open(opts.device, sessOpts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "axpert: %v\n", err)
		return 1
	}
	defer inv.Close()

	if queryName != "" {
		if code := runQuery(ctx, inv, queryName, opts, logger); code != 0 {
			return code
		}
	}

	if commandName != "" {
		return runCommand(ctx, inv, commandName, splitArgs(commandArgs))
	}
	return 0
}

func runQuery(ctx context.Context, inv *axpert.Inverter, name string, opts options, logger zerolog.Logger) int {
	res, err := inv.Query(ctx, name, opts.units)
	if err != nil {
		fmt.Fprintf(os.Stderr, "axpert: query %s: %v\n", name, err)
		return 1
	}

	out, err := formatResult(res, opts.format, opts.pretty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "axpert: %v\n", err)
		return 1
	}
	fmt.Println(out)

	if opts.publish {
		if opts.mqtt.Broker == "" {
			fmt.Fprintln(os.Stderr, "axpert: -publish needs an mqtt broker in the config file")
			return 1
		}
		pub := mqttpub.New(opts.mqtt, logger)
		if err := pub.Connect(); err != nil {
			fmt.Fprintf(os.Stderr, "axpert: %v\n", err)
			return 1
		}
		defer pub.Disconnect(250)
		if err := pub.PublishResult(name, res); err != nil {
			fmt.Fprintf(os.Stderr, "axpert: %v\n", err)
			return 1
		}
	}
	return 0
}

func runCommand(ctx context.Context, inv *axpert.Inverter, name string, args []string) int {
	accepted, err := inv.Command(ctx, name, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "axpert: command %s: %v\n", name, err)
		return 1
	}
	if !accepted {
		fmt.Println("rejected (NAK)")
		return 1
	}
	fmt.Println("accepted (ACK)")
	return 0
}

// splitArgs turns the -args value into the command argument list. An
// empty value means no arguments, not one empty argument.
func splitArgs(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func printRegistry(w *os.File) {
	queries := make([]string, 0, len(entities.Queries))
	for name := range entities.Queries {
		queries = append(queries, name)
	}
	sort.Strings(queries)
	fmt.Fprintln(w, "Queries:")
	for _, name := range queries {
		fmt.Fprintf(w, "  %s\n", name)
	}

	commands := make([]string, 0, len(entities.Commands))
	for name, cmd := range entities.Commands {
		if cmd.Disabled {
			continue
		}
		commands = append(commands, name)
	}
	sort.Strings(commands)
	fmt.Fprintln(w, "Commands:")
	for _, name := range commands {
		fmt.Fprintf(w, "  %s\t%s\n", name, entities.Commands[name].Desc)
	}
}
