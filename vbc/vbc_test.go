// Copyright (C) 1995-2026, University of Cologne, Germany. All rights reserved.
// See the file LICENSE for licensing terms.

package vbc

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterRecords(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	w.NewNode(2, 1, 3)
	w.PaintNode(2, 6)
	w.NodeBounds(2, 1.5, 4.0)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	fields := strings.Fields(lines[0])
	require.GreaterOrEqual(t, len(fields), 5)
	assert.Regexp(t, `^\d{2}:\d{2}:\d{2}\.\d{2}$`, fields[0])
	assert.Equal(t, "N", fields[1])
	assert.Equal(t, "1", fields[2]) // father first
	assert.Equal(t, "2", fields[3])
	assert.Equal(t, "3", fields[4])

	assert.Contains(t, lines[1], " P 2 6")
	assert.Contains(t, lines[2], "LB: 1.5")
	assert.Contains(t, lines[2], "UB: 4")
}

func TestPipePrefix(t *testing.T) {
	var buf bytes.Buffer
	w := &Writer{out: &buf, pipe: true, now: time.Now, start: time.Now()}

	w.PaintNode(1, 2)
	assert.True(t, strings.HasPrefix(buf.String(), "$"))
}

func TestCloseWithoutSink(t *testing.T) {
	w := NewWriter(&bytes.Buffer{})
	assert.NoError(t, w.Close())
}
