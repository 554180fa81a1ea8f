package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.tigermatt.uk/serialdump"
	"golang.org/x/sync/errgroup"
)

func replay(ctx context.Context, name string, out io.Writer) error {
	f, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("reading recording: %w", err)
	}
	defer f.Close()

	msgs := make(chan serialdump.Message, 100)
	dumper := &serialdump.HexDumper{Out: out}

	var g errgroup.Group
	g.Go(func() error { return processMsgs(ctx, msgs, dumper) })
	g.Go(func() error { return serialdump.ReadIn(msgs, f) })

	return g.Wait()
}

// processMsgs keeps draining msgs after a failure so ReadIn can finish.
func processMsgs(ctx context.Context, msgs <-chan serialdump.Message, w io.Writer) error {
	var err error

	for msg := range msgs {
		if err != nil || ctx.Err() != nil {
			continue
		}

		_, err = w.Write(msg.Data)
	}

	return err
}
