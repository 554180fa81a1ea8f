package serialdump

import "fmt"

// Parity is the parity scheme of the serial line.
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
	ParityMark
	ParitySpace
)

var parityNames = []string{"None", "Odd", "Even", "Mark", "Space"}

func (p Parity) String() string {
	if p < 0 || int(p) >= len(parityNames) {
		return fmt.Sprintf("Parity(%d)", int(p))
	}
	return parityNames[p]
}

// ParseParity matches s case-sensitively against the parity names.
func ParseParity(s string) (Parity, error) {
	for i, name := range parityNames {
		if s == name {
			return Parity(i), nil
		}
	}
	return 0, fmt.Errorf("unknown parity %q", s)
}

// StopBits is the number of stop bits framing each character.
type StopBits int

const (
	StopBitsNone StopBits = iota
	StopBitsOne
	StopBitsTwo
	StopBitsOnePointFive
)

var stopBitsNames = []string{"None", "One", "Two", "OnePointFive"}

func (s StopBits) String() string {
	if s < 0 || int(s) >= len(stopBitsNames) {
		return fmt.Sprintf("StopBits(%d)", int(s))
	}
	return stopBitsNames[s]
}

func ParseStopBits(s string) (StopBits, error) {
	for i, name := range stopBitsNames {
		if s == name {
			return StopBits(i), nil
		}
	}
	return 0, fmt.Errorf("unknown stop bits %q", s)
}

// Driver selects the serial library used to open the port.
type Driver int

const (
	DriverBugst Driver = iota
	DriverTarm
)

var driverNames = []string{"bugst", "tarm"}

func (d Driver) String() string {
	if d < 0 || int(d) >= len(driverNames) {
		return fmt.Sprintf("Driver(%d)", int(d))
	}
	return driverNames[d]
}

func ParseDriver(s string) (Driver, error) {
	for i, name := range driverNames {
		if s == name {
			return Driver(i), nil
		}
	}
	return 0, fmt.Errorf("unknown driver %q", s)
}

// Config describes the port to open and what to do with the bytes read from it.
type Config struct {
	PortName string
	BaudRate int
	Parity   Parity
	DataBits int
	StopBits StopBits
	Driver   Driver

	// Record, if set, is a file every received chunk is appended to.
	Record string
	// Replay, if set, is a recording to dump instead of a live port.
	Replay string
}

func DefaultConfig() Config {
	return Config{
		BaudRate: 115200,
		Parity:   ParityNone,
		DataBits: 8,
		StopBits: StopBitsOne,
		Driver:   DriverBugst,
	}
}
