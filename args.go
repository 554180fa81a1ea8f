package serialdump

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrMissingPortName = errors.New("no port name specified")
)

// Action is what the caller should do once the arguments are parsed.
type Action int

const (
	ActionRun Action = iota
	ActionHelp
	ActionVersion
	ActionListPorts
)

// ParseArgs builds a Config from command line tokens of the form
// --name[:value] and a single positional port name. A help, version or list
// switch stops parsing and is returned as the Action. ParseArgs never writes
// any output.
func ParseArgs(args []string) (Config, Action, error) {
	cfg := DefaultConfig()
	havePort := false

	for _, arg := range args {
		switch arg {
		case "-h", "-?":
			return cfg, ActionHelp, nil
		case "-v":
			return cfg, ActionVersion, nil
		}

		if !strings.HasPrefix(arg, "--") {
			if havePort {
				return cfg, ActionRun, fmt.Errorf("%w: too many command line arguments, don't know what to do with '%s'", ErrInvalidArgument, arg)
			}
			cfg.PortName = arg
			havePort = true
			continue
		}

		name, value, _ := strings.Cut(arg[2:], ":")

		var err error
		switch name {
		case "help", "h", "?":
			return cfg, ActionHelp, nil
		case "v", "version":
			return cfg, ActionVersion, nil
		case "list":
			return cfg, ActionListPorts, nil
		case "baud":
			cfg.BaudRate, err = strconv.Atoi(value)
		case "databits":
			cfg.DataBits, err = strconv.Atoi(value)
		case "parity":
			cfg.Parity, err = ParseParity(value)
		case "stopbits":
			cfg.StopBits, err = ParseStopBits(value)
		case "driver":
			cfg.Driver, err = ParseDriver(value)
		case "record":
			cfg.Record, err = path(value)
		case "replay":
			cfg.Replay, err = path(value)
		default:
			return cfg, ActionRun, fmt.Errorf("%w: unknown switch '%s'", ErrInvalidArgument, arg)
		}
		if err != nil {
			return cfg, ActionRun, fmt.Errorf("%w: bad value '%s' for --%s: %v", ErrInvalidArgument, value, name, err)
		}
	}

	if cfg.Record != "" && cfg.Replay != "" {
		return cfg, ActionRun, fmt.Errorf("%w: --record cannot be combined with --replay", ErrInvalidArgument)
	}

	if cfg.PortName == "" && cfg.Replay == "" {
		return cfg, ActionRun, ErrMissingPortName
	}

	return cfg, ActionRun, nil
}

func path(value string) (string, error) {
	if value == "" {
		return "", errors.New("empty path")
	}
	return value, nil
}
