// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

// Package vbc writes the enumeration tree as a line-based event stream for
// tree visualization tools. Each record carries a timestamp, the node, its
// father, a color encoding the node state, and the node bounds. In pipe
// mode every line is prefixed with '$' and written to standard output; in
// file mode the stream goes to a rotated log file.
package vbc

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Writer emits tree events.
type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	closer io.Closer
	pipe   bool
	start  time.Time
	now    func() time.Time
}

// NewFile returns a writer logging to path with rotation.
func NewFile(path string) *Writer {
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    64, // megabytes
		MaxBackups: 2,
	}
	return &Writer{out: lj, closer: lj, start: time.Now(), now: time.Now}
}

// NewPipe returns a writer emitting '$'-prefixed lines on stdout.
func NewPipe() *Writer {
	return &Writer{out: os.Stdout, pipe: true, start: time.Now(), now: time.Now}
}

// NewWriter returns a writer on an arbitrary sink, mainly for tests.
func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out, start: time.Now(), now: time.Now}
}

func (w *Writer) stamp() string {
	d := w.now().Sub(w.start)
	h := int(d / time.Hour)
	m := int(d/time.Minute) % 60
	s := int(d/time.Second) % 60
	cs := int(d/(10*time.Millisecond)) % 100
	return fmt.Sprintf("%02d:%02d:%02d.%02d", h, m, s, cs)
}

func (w *Writer) emit(format string, args ...any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pipe {
		fmt.Fprint(w.out, "$")
	}
	fmt.Fprintf(w.out, format, args...)
	fmt.Fprintln(w.out)
}

// NewNode records the creation of node id under fatherID.
func (w *Writer) NewNode(id, fatherID, color int) {
	w.emit("%s N %d %d %d", w.stamp(), fatherID, id, color)
}

// PaintNode records a state change of node id.
func (w *Writer) PaintNode(id, color int) {
	w.emit("%s P %d %d", w.stamp(), id, color)
}

// NodeBounds records the bounds of node id.
func (w *Writer) NodeBounds(id int, lb, ub float64) {
	w.emit("%s I %d \\iLB: %g\\nUB: %g\\i", w.stamp(), id, lb, ub)
}

// Close flushes and closes the underlying sink where applicable.
func (w *Writer) Close() error {
	if w.closer != nil {
		return w.closer.Close()
	}
	return nil
}
