package main

import (
	"fmt"
	"io"
)

func showLogo(w io.Writer) {
	fmt.Fprintf(w, "SerialDump v%s - Serial Port Hex Dump Utility\n\n", Version)
}

func showHelp(w io.Writer) {
	fmt.Fprint(w, `usage: serialdump <portname> [options]

Options:
  --baud:<value>         Set baud rate (default 115200)
  --databits:<value>     Number of data bits (default 8)
  --parity:<value>       None (default) | Odd | Even | Mark | Space
  --stopbits:<value>     None | One (default) | Two | OnePointFive
  --driver:<value>       bugst (default) | tarm
  --record:<file>        Also save everything received to <file>
  --replay:<file>        Dump a saved recording instead of a port
  --list                 List the serial ports on this system
  --help, -h, -?         Show this help
  --version, -v          Show the version

`)
}
