package telemetry

import (
	"fmt"
	"io"
	"time"

	"github.com/robinvdvleuten/jsparse/output"
)

const slowThreshold = 100 * time.Millisecond

// formatTimingTree writes the tree rooted at root, for example:
//
//	check app.js: 12ms
//	├─ parse app.js: 8ms (41.2 MB/s)
//	└─ parse util.js: 3ms (12.9 MB/s)
func formatTimingTree(w io.Writer, root *timerNode, styles *output.Styles) {
	name := root.name
	if styles != nil {
		name = styles.Keyword(name)
	}
	_, _ = fmt.Fprintf(w, "%s: %s\n", name, formatTiming(root, styles))

	for i, child := range root.children {
		formatNode(w, child, "", i == len(root.children)-1, styles)
	}
}

func formatNode(w io.Writer, node *timerNode, prefix string, isLast bool, styles *output.Styles) {
	branch, extension := "├─ ", "│  "
	if isLast {
		branch, extension = "└─ ", "   "
	}

	tree := prefix + branch
	if styles != nil {
		tree = styles.Dim(tree)
	}
	_, _ = fmt.Fprintf(w, "%s%s: %s\n", tree, node.name, formatTiming(node, styles))

	childPrefix := prefix + extension
	for i, child := range node.children {
		formatNode(w, child, childPrefix, i == len(node.children)-1, styles)
	}
}

func formatTiming(node *timerNode, styles *output.Styles) string {
	d := node.duration()
	text := formatDuration(d)
	if node.bytes > 0 && d > 0 {
		text += " (" + formatThroughput(node.bytes, d) + ")"
	}
	if styles != nil {
		return styles.Timing(text, d >= slowThreshold)
	}
	return text
}

// formatDuration shows milliseconds below one second, seconds above.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.2fs", float64(d)/float64(time.Second))
}

func formatThroughput(bytes int, d time.Duration) string {
	mb := float64(bytes) / (1 << 20)
	return fmt.Sprintf("%.1f MB/s", mb/d.Seconds())
}
