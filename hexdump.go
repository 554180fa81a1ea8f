package serialdump

import (
	"bytes"
	"fmt"
	"io"
)

// HexDumper writes everything written to it as a running hex dump on Out,
// sixteen bytes per line, each line prefixed with its offset from the first
// byte ever written. The last line is never terminated.
type HexDumper struct {
	Out io.Writer

	total uint64
	buf   bytes.Buffer
}

func (d *HexDumper) Write(p []byte) (int, error) {
	d.buf.Reset()

	for i, b := range p {
		off := d.total + uint64(i)
		if off%16 == 0 {
			if off > 0 {
				d.buf.WriteByte('\n')
			}
			fmt.Fprintf(&d.buf, "%04X: ", off)
		}
		fmt.Fprintf(&d.buf, "%02X ", b)
	}

	if _, err := d.Out.Write(d.buf.Bytes()); err != nil {
		return 0, err
	}

	d.total += uint64(len(p))
	return len(p), nil
}

// Total is the number of bytes dumped so far.
func (d *HexDumper) Total() uint64 {
	return d.total
}
