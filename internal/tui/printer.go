package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/vito/progrock"
	"go.trai.ch/tangle/internal/core/ports"
)

var _ ports.Renderer = (*Printer)(nil)

// Printer writes one line per finished module build. It is used where no
// interactive terminal is attached.
type Printer struct {
	tape   TapeSource
	output *termenv.Output
	done   map[string]bool
	errCh  chan error
}

// NewPrinter creates a Printer reading from tape and writing to w.
func NewPrinter(tape TapeSource, w io.Writer) *Printer {
	return &Printer{
		tape:   tape,
		output: termenv.NewOutput(w, termenv.WithProfile(colorProfile())),
		done:   make(map[string]bool),
		errCh:  make(chan error, 1),
	}
}

func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// Start reads the tape in a background goroutine.
func (p *Printer) Start(_ context.Context) error {
	go func() {
		p.errCh <- p.loop()
	}()
	return nil
}

// Wait blocks until the tape has ended.
func (p *Printer) Wait() error {
	return <-p.errCh
}

func (p *Printer) loop() error {
	for {
		update, err := p.tape.Read()
		if err != nil {
			return nil //nolint:nilerr // the end of the tape ends the output
		}
		for _, v := range update.Vertexes {
			if err := p.print(v); err != nil {
				return err
			}
		}
	}
}

func (p *Printer) print(v *progrock.Vertex) error {
	if v.Completed == nil || p.done[v.Id] {
		return nil
	}
	p.done[v.Id] = true

	var symbol string
	switch vertexStatus(v) {
	case statusFailed:
		symbol = p.output.String("✗").Foreground(termenv.ANSIRed).String()
	case statusCached:
		symbol = p.output.String("=").Faint().String()
	default:
		symbol = p.output.String("✓").Foreground(termenv.ANSIGreen).String()
	}

	line := symbol + " " + v.Name
	if v.Started != nil && vertexStatus(v) != statusCached {
		elapsed := v.Completed.AsTime().Sub(v.Started.AsTime())
		line += p.output.String(fmt.Sprintf(" (%s)", elapsed.Round(time.Millisecond))).Faint().String()
	}
	_, err := fmt.Fprintln(p.output, line)
	return err
}
