package serialdump

import (
	"context"
	"errors"
	"fmt"
	"io"
)

const DefaultBufSize = 16

type Sniffer struct {
	Source    io.Reader
	BufSize   int
	OnReceive func([]byte) error
}

// Consume reads from Source until it is exhausted, a read fails or ctx is
// cancelled. Cancellation is only noticed between reads.
func (s *Sniffer) Consume(ctx context.Context) error {
	size := s.BufSize
	if size <= 0 {
		size = DefaultBufSize
	}
	bs := make([]byte, size)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		n, err := s.Source.Read(bs)
		if n > 0 {
			if rerr := s.OnReceive(bs[:n]); rerr != nil {
				return rerr
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("reading from serial port: %w", err)
		}
	}
}
