package shell

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Printer writes shell output.
// Results go to stdout by default, and everything else goes to stderr.
type Printer struct {
	mux sync.Mutex
	out io.Writer
	err io.Writer
}

func NewPrinter() *Printer {
	return NewPrinterTo(os.Stdout, os.Stderr)
}

// NewPrinterTo creates a [Printer] that writes results to out, and everything else to err.
func NewPrinterTo(out, err io.Writer) *Printer {
	return &Printer{out: out, err: err}
}

// Redirect sends all output to writer.
func (p *Printer) Redirect(writer io.Writer) {
	p.mux.Lock()
	defer p.mux.Unlock()
	p.out = writer
	p.err = writer
}

// Result prints a command's result on its own line.
func (p *Printer) Result(result any) {
	p.mux.Lock()
	defer p.mux.Unlock()
	_, _ = fmt.Fprintln(p.out, result)
}

func (p *Printer) Printf(format string, args ...any) {
	p.mux.Lock()
	defer p.mux.Unlock()
	_, _ = fmt.Fprintf(p.err, format, args...)
}

func (p *Printer) Println(msg ...any) {
	p.mux.Lock()
	defer p.mux.Unlock()
	_, _ = fmt.Fprintln(p.err, msg...)
}
