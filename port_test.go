package serialdump

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tarm "github.com/tarm/serial"
	bugst "go.bug.st/serial"
)

func TestBugstMode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Parity = ParityMark
	cfg.StopBits = StopBitsOnePointFive

	mode, err := bugstMode(cfg)
	require.NoError(t, err)
	assert.Equal(t, &bugst.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   bugst.MarkParity,
		StopBits: bugst.OnePointFiveStopBits,
	}, mode)
}

func TestTarmConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PortName = "/dev/ttyS0"
	cfg.BaudRate = 9600
	cfg.DataBits = 7
	cfg.Parity = ParityOdd
	cfg.StopBits = StopBitsTwo

	c, err := tarmConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, &tarm.Config{
		Name:        "/dev/ttyS0",
		Baud:        9600,
		Size:        7,
		Parity:      tarm.ParityOdd,
		StopBits:    tarm.Stop2,
		ReadTimeout: tarmReadTimeout,
	}, c)
}

func TestNoStopBitsUnsupported(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StopBits = StopBitsNone

	_, err := bugstMode(cfg)
	assert.ErrorContains(t, err, "stop bits None")

	_, err = tarmConfig(cfg)
	assert.ErrorContains(t, err, "stop bits None")
}

func TestTarmDataBitsRange(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataBits = 264

	_, err := tarmConfig(cfg)
	assert.ErrorContains(t, err, "data bits 264")
}

func TestOpenFailure(t *testing.T) {
	for _, d := range []Driver{DriverBugst, DriverTarm, Driver(7)} {
		cfg := DefaultConfig()
		cfg.PortName = "/nonexistent/serialdump-test"
		cfg.Driver = d

		port, err := Open(cfg)
		assert.Nil(t, port, "%s", d)
		assert.ErrorContains(t, err, "opening serial port /nonexistent/serialdump-test", "%s", d)
	}
}

// timeoutReader behaves like a tarm port with a read timeout: an idle line
// reads as (0, io.EOF).
type timeoutReader struct {
	reads  [][]byte
	onIdle func()
	idle   int
	closed bool
}

func (r *timeoutReader) Read(p []byte) (int, error) {
	if len(r.reads) == 0 {
		r.idle++
		if r.onIdle != nil {
			r.onIdle()
		}
		return 0, io.EOF
	}
	n := copy(p, r.reads[0])
	r.reads = r.reads[1:]
	return n, nil
}

func (r *timeoutReader) Close() error {
	r.closed = true
	return nil
}

func TestPollingPortIdleIsNotEOF(t *testing.T) {
	src := &timeoutReader{reads: [][]byte{{0x01, 0x02}}}
	p := pollingPort{src}

	buf := make([]byte, 16)
	n, err := p.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, buf[:n])

	n, err = p.Read(buf)
	assert.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, p.Close())
	assert.True(t, src.closed)
}

func TestPollingPortStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The interrupt arrives while the line is idle.
	src := &timeoutReader{reads: [][]byte{{0xaa}}, onIdle: cancel}

	var out bytes.Buffer
	d := &HexDumper{Out: &out}
	s := &Sniffer{
		Source: pollingPort{src},
		OnReceive: func(bs []byte) error {
			_, err := d.Write(bs)
			return err
		},
	}

	require.NoError(t, s.Consume(ctx))
	assert.Equal(t, "0000: AA ", out.String())
	assert.Equal(t, 1, src.idle)
}

func TestPollingPortKeepsReadingWhileIdle(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &timeoutReader{}
	src.onIdle = func() {
		if src.idle == 3 {
			cancel()
		}
	}

	s := &Sniffer{
		Source:    pollingPort{src},
		OnReceive: func([]byte) error { return nil },
	}

	require.NoError(t, s.Consume(ctx))
	assert.Equal(t, 3, src.idle)
}
