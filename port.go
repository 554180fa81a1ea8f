package serialdump

import (
	"errors"
	"fmt"
	"io"
	"time"

	tarm "github.com/tarm/serial"
	bugst "go.bug.st/serial"
)

// tarmReadTimeout bounds each read on a tarm port. tarm ports cannot be
// unblocked by Close, so reads must return regularly for cancellation to be
// noticed. VTIME has a resolution of 100ms.
const tarmReadTimeout = 100 * time.Millisecond

// Open opens the serial port described by cfg with the configured driver.
// Reads on the returned port block until data arrives or the port is closed,
// except with the tarm driver, where a read may return no data and no error.
func Open(cfg Config) (io.ReadCloser, error) {
	var (
		port io.ReadCloser
		err  error
	)

	switch cfg.Driver {
	case DriverBugst:
		port, err = openBugst(cfg)
	case DriverTarm:
		port, err = openTarm(cfg)
	default:
		err = fmt.Errorf("unsupported driver %s", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("opening serial port %s: %w", cfg.PortName, err)
	}

	return port, nil
}

// ListPorts returns the names of the serial ports present on the system.
func ListPorts() ([]string, error) {
	ports, err := bugst.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("listing serial ports: %w", err)
	}
	return ports, nil
}

func openBugst(cfg Config) (io.ReadCloser, error) {
	mode, err := bugstMode(cfg)
	if err != nil {
		return nil, err
	}
	return bugst.Open(cfg.PortName, mode)
}

func bugstMode(cfg Config) (*bugst.Mode, error) {
	mode := &bugst.Mode{
		BaudRate: cfg.BaudRate,
		DataBits: cfg.DataBits,
	}

	switch cfg.Parity {
	case ParityNone:
		mode.Parity = bugst.NoParity
	case ParityOdd:
		mode.Parity = bugst.OddParity
	case ParityEven:
		mode.Parity = bugst.EvenParity
	case ParityMark:
		mode.Parity = bugst.MarkParity
	case ParitySpace:
		mode.Parity = bugst.SpaceParity
	default:
		return nil, fmt.Errorf("parity %s not supported", cfg.Parity)
	}

	switch cfg.StopBits {
	case StopBitsOne:
		mode.StopBits = bugst.OneStopBit
	case StopBitsOnePointFive:
		mode.StopBits = bugst.OnePointFiveStopBits
	case StopBitsTwo:
		mode.StopBits = bugst.TwoStopBits
	default:
		return nil, fmt.Errorf("stop bits %s not supported", cfg.StopBits)
	}

	return mode, nil
}

func openTarm(cfg Config) (io.ReadCloser, error) {
	c, err := tarmConfig(cfg)
	if err != nil {
		return nil, err
	}
	p, err := tarm.OpenPort(c)
	if err != nil {
		return nil, err
	}
	return pollingPort{p}, nil
}

// pollingPort reports a read that timed out with no data as (0, nil) rather
// than the (0, io.EOF) the underlying file returns, so it is not mistaken for
// the end of the stream.
type pollingPort struct {
	io.ReadCloser
}

func (p pollingPort) Read(bs []byte) (int, error) {
	n, err := p.ReadCloser.Read(bs)
	if n == 0 && errors.Is(err, io.EOF) {
		return 0, nil
	}
	return n, err
}

func tarmConfig(cfg Config) (*tarm.Config, error) {
	if cfg.DataBits < 5 || cfg.DataBits > 8 {
		return nil, fmt.Errorf("data bits %d not supported", cfg.DataBits)
	}

	c := &tarm.Config{
		Name:        cfg.PortName,
		Baud:        cfg.BaudRate,
		Size:        byte(cfg.DataBits),
		ReadTimeout: tarmReadTimeout,
	}

	switch cfg.Parity {
	case ParityNone:
		c.Parity = tarm.ParityNone
	case ParityOdd:
		c.Parity = tarm.ParityOdd
	case ParityEven:
		c.Parity = tarm.ParityEven
	case ParityMark:
		c.Parity = tarm.ParityMark
	case ParitySpace:
		c.Parity = tarm.ParitySpace
	default:
		return nil, fmt.Errorf("parity %s not supported", cfg.Parity)
	}

	switch cfg.StopBits {
	case StopBitsOne:
		c.StopBits = tarm.Stop1
	case StopBitsOnePointFive:
		c.StopBits = tarm.Stop1Half
	case StopBitsTwo:
		c.StopBits = tarm.Stop2
	default:
		return nil, fmt.Errorf("stop bits %s not supported", cfg.StopBits)
	}

	return c, nil
}
