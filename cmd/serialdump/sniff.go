package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.tigermatt.uk/serialdump"
)

// Replaced in tests.
var (
	openPort        = serialdump.Open
	createRecording = func(name string) (io.WriteCloser, error) { return os.Create(name) }
)

func sniff(ctx context.Context, cfg serialdump.Config, out io.Writer) (err error) {
	port, err := openPort(cfg)
	if err != nil {
		return err
	}

	var closeOnce sync.Once
	closePort := func() { closeOnce.Do(func() { port.Close() }) }
	defer closePort()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// A blocked read only returns once the port is closed.
	go func() {
		<-ctx.Done()
		closePort()
	}()

	dumper := &serialdump.HexDumper{Out: out}
	onReceive := func(bs []byte) error {
		_, err := dumper.Write(bs)
		return err
	}

	if cfg.Record != "" {
		f, ferr := createRecording(cfg.Record)
		if ferr != nil {
			return fmt.Errorf("creating recording: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing recording: %w", cerr)
			}
		}()

		rec := &serialdump.Recorder{Dest: f}
		onReceive = func(bs []byte) error {
			if err := rec.Record(bs); err != nil {
				return err
			}
			_, err := dumper.Write(bs)
			return err
		}
	}

	s := &serialdump.Sniffer{
		Source:    port,
		BufSize:   serialdump.DefaultBufSize,
		OnReceive: onReceive,
	}

	return s.Consume(ctx)
}
