// Package progressbar implements functionality of printing a progress
// bar to the terminal window
package progressbar

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ProgressBar implements progress bar functionality that must be
// manually managed. That is, Display must be called whenever an
// updated progress bar should be printed.
//
// ProgressBar does not use concurrency.
type ProgressBar struct {
	out             io.Writer
	width           float64
	maxProgress     float64
	currentProgress float64
	displayEvery    int
	bar             strings.Builder
	startTime       time.Time
}

// New returns a new ProgressBar that is width characters wide, reaches
// 100% after max calls to Increment, and is redrawn on standard output
// every displayEvery increments.
func New(width, max, displayEvery int) *ProgressBar {
	return NewWithWriter(os.Stdout, width, max, displayEvery)
}

// NewWithWriter returns a new ProgressBar which draws to out
func NewWithWriter(out io.Writer, width, max,
	displayEvery int) *ProgressBar {
	if max < 1 {
		max = 1
	}
	if displayEvery < 1 {
		displayEvery = 1
	}

	return &ProgressBar{
		out:          out,
		width:        float64(width),
		maxProgress:  float64(max),
		displayEvery: displayEvery,
		startTime:    time.Now(),
	}
}

// Increment increments the internal progress counter and redraws the
// bar every displayEvery increments. Each time an iteration is
// performed, Increment should be called.
func (p *ProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}

	if int(p.currentProgress)%p.displayEvery == 0 {
		p.Display()
	}
}

// Progress returns the fraction of iterations completed
func (p *ProgressBar) Progress() float64 {
	return p.currentProgress / p.maxProgress
}

// Display draws the progress bar over the current line
func (p *ProgressBar) Display() {
	p.bar.Reset()
	p.bar.WriteString("|")

	currentProg := p.Progress() * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	p.bar.WriteString(fmt.Sprintf("| [%.2f%v | elapsed: %v]",
		p.Progress()*100, "%", time.Since(p.startTime).Truncate(time.Second)))

	fmt.Fprintf(p.out, "\n\033[1A\033[K%v", p.bar.String())
}

// Close draws the final state of the bar and moves to the next line
func (p *ProgressBar) Close() {
	p.Display()
	fmt.Fprintln(p.out)
}
