// Command serialdump prints the bytes received on a serial port as a hex dump.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.tigermatt.uk/serialdump"
)

// Version is overridden at build time with -ldflags "-X main.Version=...".
var Version = "1.0.0"

const exitFailure = 7

func main() {
	log.SetFlags(0)

	if err := rootCommand().ExecuteContext(listenStop()); err != nil {
		// The missing port message has already been printed with the help.
		if !errors.Is(err, serialdump.ErrMissingPortName) {
			log.Println(err)
		}
		os.Exit(exitFailure)
	}
}

func rootCommand() *cobra.Command {
	return &cobra.Command{
		Use:  "serialdump <portname> [options]",
		Args: cobra.ArbitraryArgs,
		RunE: run,

		// Switches use the --name:value form, which ParseArgs handles.
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
	}
}

func listenStop() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	// Only the first interrupt is handled, a second one kills the process.
	go func() {
		<-sigCh
		signal.Stop(sigCh)
		cancel()
	}()

	return ctx
}

func run(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	cfg, action, err := serialdump.ParseArgs(args)
	if errors.Is(err, serialdump.ErrMissingPortName) {
		showLogo(out)
		showHelp(out)
		fmt.Fprint(out, "No port name specified, quitting.\n\n")
		return err
	}
	if err != nil {
		return err
	}

	switch action {
	case serialdump.ActionHelp:
		showLogo(out)
		showHelp(out)
		return nil
	case serialdump.ActionVersion:
		showLogo(out)
		return nil
	case serialdump.ActionListPorts:
		return listPorts(out)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cfg.Replay != "" {
		return replay(ctx, cfg.Replay, out)
	}
	return sniff(ctx, cfg, out)
}

func listPorts(out io.Writer) error {
	ports, err := serialdump.ListPorts()
	if err != nil {
		return err
	}

	for _, p := range ports {
		fmt.Fprintln(out, p)
	}
	return nil
}
