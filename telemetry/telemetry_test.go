package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/jsparse/output"
)

func TestNoOpCollector(t *testing.T) {
	collector := noOpCollector{}

	timer := collector.Start("test")
	timer.SetBytes(128)
	child := timer.Child("child")
	child.End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, 0, buf.Len())
}

func TestFromContextReturnsNoOpWhenMissing(t *testing.T) {
	collector := FromContext(context.Background())
	_, ok := collector.(noOpCollector)
	assert.True(t, ok)
}

func TestWithCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	retrieved, ok := FromContext(ctx).(*TimingCollector)
	assert.True(t, ok)
	assert.Equal(t, collector, retrieved)
}

func TestTimingCollectorHierarchical(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("check")
	lex := root.Child("lex")
	time.Sleep(2 * time.Millisecond)
	lex.End()
	parse := root.Child("parse")
	parse.SetBytes(4096)
	time.Sleep(2 * time.Millisecond)
	parse.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	out := buf.String()

	assert.Contains(t, out, "check: ")
	assert.Contains(t, out, "├─ lex: ")
	assert.Contains(t, out, "└─ parse: ")
	assert.Contains(t, out, "MB/s")
}

func TestTimingCollectorNestedStart(t *testing.T) {
	collector := NewTimingCollector()

	outer := collector.Start("load")
	inner := collector.Start("parse a.js")
	inner.End()
	sibling := collector.Start("parse b.js")
	sibling.End()
	outer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")

	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.HasPrefix(lines[1], "├─ parse a.js"))
	assert.True(t, strings.HasPrefix(lines[2], "└─ parse b.js"))
}

func TestTimingCollectorDeepNesting(t *testing.T) {
	collector := NewTimingCollector()

	t1 := collector.Start("Level 1")
	t2 := t1.Child("Level 2")
	t3 := t2.Child("Level 3")
	t3.End()
	t2.End()
	t1.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)

	assert.Contains(t, buf.String(), "   └─ Level 3")
}

func TestTimingCollectorStyledReport(t *testing.T) {
	collector := NewTimingCollector()
	timer := collector.Start("parse")
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, output.NewStyles(&buf))
	assert.Contains(t, buf.String(), "parse")
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		duration time.Duration
		want     string
	}{
		{1 * time.Millisecond, "1ms"},
		{100 * time.Millisecond, "100ms"},
		{999 * time.Millisecond, "999ms"},
		{1 * time.Second, "1.00s"},
		{1500 * time.Millisecond, "1.50s"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatDuration(tt.duration))
		})
	}
}

func TestFormatThroughput(t *testing.T) {
	assert.Equal(t, "2.0 MB/s", formatThroughput(1<<20, 500*time.Millisecond))
}

func TestTimingCollectorEmptyReport(t *testing.T) {
	collector := NewTimingCollector()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, 0, buf.Len())
}
