package serialdump

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"
)

// Message is one chunk read from the port, as stored in a recording.
type Message struct {
	Data      []byte
	Timestamp time.Time
}

// Recorder appends gob-encoded Messages to Dest.
type Recorder struct {
	Dest io.Writer

	// Now stamps chunks passed to Record. Defaults to time.Now.
	Now func() time.Time

	enc  *gob.Encoder
	once sync.Once
}

func (r *Recorder) Receive(msg Message) error {
	r.init()
	if err := r.enc.Encode(msg); err != nil {
		return fmt.Errorf("recording message: %w", err)
	}
	return nil
}

// Record stores bs stamped with the current time. bs is not retained.
func (r *Recorder) Record(bs []byte) error {
	r.init()
	return r.Receive(Message{Data: bs, Timestamp: r.Now()})
}

func (r *Recorder) init() {
	r.once.Do(func() {
		r.enc = gob.NewEncoder(r.Dest)
		if r.Now == nil {
			r.Now = time.Now
		}
	})
}

// ReadIn decodes a recording from r onto out, closing out when done.
func ReadIn(out chan<- Message, r io.Reader) error {
	defer close(out)

	dec := gob.NewDecoder(r)

	for {
		var msg Message
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return fmt.Errorf("while decoding: %w", err)
		}

		out <- msg
	}
}
