package printer

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DiffContext is the number of unchanged lines kept around each change.
const DiffContext = 3

// LineOp tags a line of a line diff.
type LineOp byte

// Line diff operations, rendered as the first column of a unified diff.
const (
	LineEqual  LineOp = ' '
	LineDelete LineOp = '-'
	LineInsert LineOp = '+'
)

// DiffLine is one line of a line diff without its trailing newline.
type DiffLine struct {
	Op   LineOp
	Text string
}

// LineDiff computes a line-oriented diff of before and after.
func LineDiff(before, after string) []DiffLine {
	dmp := diffmatchpatch.New()
	src, dst, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(src, dst, false), lines)

	var out []DiffLine

	for _, diff := range diffs {
		op := LineEqual

		switch diff.Type {
		case diffmatchpatch.DiffDelete:
			op = LineDelete
		case diffmatchpatch.DiffInsert:
			op = LineInsert
		case diffmatchpatch.DiffEqual:
		}

		for _, line := range splitLines(diff.Text) {
			out = append(out, DiffLine{Op: op, Text: line})
		}
	}

	return out
}

// UnifiedDiff renders the change from before to after in unified format
// with [DiffContext] lines of context. Returns "" when the texts are equal.
func UnifiedDiff(path, before, after string) string {
	if before == after {
		return ""
	}

	lines := LineDiff(before, after)

	var sb strings.Builder

	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", path, path)

	for _, h := range hunks(lines) {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.oldStart, h.oldLines, h.newStart, h.newLines)

		for _, line := range lines[h.from:h.to] {
			sb.WriteByte(byte(line.Op))
			sb.WriteString(line.Text)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

type hunk struct {
	from, to           int
	oldStart, oldLines int
	newStart, newLines int
}

func hunks(lines []DiffLine) []hunk {
	var out []hunk

	idx := 0
	for idx < len(lines) {
		if lines[idx].Op == LineEqual {
			idx++

			continue
		}

		from := max(idx-DiffContext, 0)
		to := idx

		// Extend while the next change is within two context windows.
		for to < len(lines) {
			if lines[to].Op != LineEqual {
				to++

				continue
			}

			run := to
			for run < len(lines) && lines[run].Op == LineEqual {
				run++
			}

			if run == len(lines) || run-to > 2*DiffContext {
				to = min(to+DiffContext, len(lines))

				break
			}

			to = run
		}

		out = append(out, newHunk(lines, from, to))
		idx = to
	}

	return out
}

func newHunk(lines []DiffLine, from, to int) hunk {
	h := hunk{from: from, to: to, oldStart: 1, newStart: 1}

	for _, line := range lines[:from] {
		if line.Op != LineInsert {
			h.oldStart++
		}

		if line.Op != LineDelete {
			h.newStart++
		}
	}

	for _, line := range lines[from:to] {
		if line.Op != LineInsert {
			h.oldLines++
		}

		if line.Op != LineDelete {
			h.newLines++
		}
	}

	return h
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
