package textgrid

import (
	"strings"
	"testing"
)

// checkRuns fails the test when a row's run list violates its invariants:
// non-empty, first start zero, strictly increasing starts within the text.
func checkRuns(t *testing.T, r *Row[string]) {
	t.Helper()
	if len(r.Runs) == 0 {
		t.Fatalf("row has no runs")
	}
	if r.Runs[0].Start != 0 {
		t.Fatalf("first run starts at %d, want 0", r.Runs[0].Start)
	}
	for i := 1; i < len(r.Runs); i++ {
		if r.Runs[i].Start <= r.Runs[i-1].Start {
			t.Fatalf("run starts not strictly increasing: %v", r.Runs)
		}
		if r.Runs[i].Start > len(r.Text) {
			t.Fatalf("run start %d beyond text length %d", r.Runs[i].Start, len(r.Text))
		}
	}
}

func runStarts(r *Row[string]) []int {
	starts := make([]int, len(r.Runs))
	for i, run := range r.Runs {
		starts[i] = run.Start
	}
	return starts
}

func TestOverwriteBeyondEndPadsWithSpaces(t *testing.T) {
	row := NewRow[string]()
	next := row.OverwriteAt(10, strings.Repeat("a", 20), "bold")

	if next != 30 {
		t.Fatalf("next index = %d, want 30", next)
	}
	if row.Text != strings.Repeat(" ", 10)+strings.Repeat("a", 20) {
		t.Fatalf("text = %q", row.Text)
	}
	checkRuns(t, row)
	if len(row.Runs) != 2 || row.Runs[1].Start != 10 || row.Runs[1].Style != "bold" {
		t.Fatalf("runs = %v", row.Runs)
	}
	if row.Runs[0].Style != "" {
		t.Fatalf("padding run style = %q, want default", row.Runs[0].Style)
	}
}

func TestOverwriteSplitsRun(t *testing.T) {
	row := NewRow[string]()
	row.OverwriteAt(10, strings.Repeat("a", 20), "bold")
	row.OverwriteAt(15, "bbbbb", "red")

	if row.Text[15:20] != "bbbbb" {
		t.Fatalf("text = %q", row.Text)
	}
	checkRuns(t, row)
	want := []struct {
		start int
		style string
	}{
		{0, ""}, {10, "bold"}, {15, "red"}, {20, "bold"},
	}
	if len(row.Runs) != len(want) {
		t.Fatalf("runs = %v", row.Runs)
	}
	for i, w := range want {
		if row.Runs[i].Start != w.start || row.Runs[i].Style != w.style {
			t.Fatalf("run %d = %+v, want %+v", i, row.Runs[i], w)
		}
	}
}

func TestApplyStyleMergesEqualNeighbors(t *testing.T) {
	row := NewRow[string]()
	row.Append("hello world", "")
	row.ApplyStyle(0, 5, "bold")
	row.ApplyStyle(5, 11, "bold")

	checkRuns(t, row)
	if len(row.Runs) != 1 || row.Runs[0].Style != "bold" {
		t.Fatalf("runs = %v, want single bold run", row.Runs)
	}
}

func TestApplyStyleInsideOneRun(t *testing.T) {
	row := NewRow[string]()
	row.Append("abcdefgh", "plain")
	row.ApplyStyle(2, 5, "bold")

	checkRuns(t, row)
	if got := runStarts(row); len(got) != 3 || got[1] != 2 || got[2] != 5 {
		t.Fatalf("run starts = %v, want [0 2 5]", got)
	}
	if row.Runs[2].Style != "plain" {
		t.Fatalf("restored style = %q, want plain", row.Runs[2].Style)
	}
}

func TestApplyStyleInsideMiddleRunRestoresTail(t *testing.T) {
	row := NewRow[string]()
	row.Append(strings.Repeat("a", 10), "plain")
	row.Append(strings.Repeat("b", 10), "bold")
	row.ApplyStyle(2, 4, "red")

	checkRuns(t, row)
	want := []struct {
		start int
		style string
	}{
		{0, "plain"}, {2, "red"}, {4, "plain"}, {10, "bold"},
	}
	if len(row.Runs) != len(want) {
		t.Fatalf("runs = %v", row.Runs)
	}
	for i, w := range want {
		if row.Runs[i].Start != w.start || row.Runs[i].Style != w.style {
			t.Fatalf("run %d = %+v, want %+v", i, row.Runs[i], w)
		}
	}
}

func TestOverwriteReplacesGraphemeClusters(t *testing.T) {
	row := NewRow[string]()
	// Two clusters, each "e" plus a combining acute accent.
	row.Append("éé", "")
	next := row.OverwriteAt(1, "x", "")

	if next != 2 {
		t.Fatalf("next index = %d, want 2", next)
	}
	if row.Text != "éx" {
		t.Fatalf("text = %q, want cluster replaced whole", row.Text)
	}
	if CountGraphemes(row.Text) != 2 {
		t.Fatalf("grapheme count = %d, want 2", CountGraphemes(row.Text))
	}
}

func TestOverwriteChainsLeftToRight(t *testing.T) {
	row := NewRow[string]()
	pos := 0
	for _, word := range []string{"one ", "two ", "three"} {
		pos = row.OverwriteAt(pos, word, "")
	}
	if row.Text != "one two three" {
		t.Fatalf("text = %q", row.Text)
	}
	if pos != CountGraphemes(row.Text) {
		t.Fatalf("final index = %d, want %d", pos, CountGraphemes(row.Text))
	}
}

func TestTruncateDropsTailRuns(t *testing.T) {
	row := NewRow[string]()
	row.Append("plain", "")
	row.Append("bold", "bold")
	row.TruncateAt(3)

	if row.Text != "pla" {
		t.Fatalf("text = %q", row.Text)
	}
	checkRuns(t, row)
	if len(row.Runs) != 1 {
		t.Fatalf("runs = %v, want only the first run", row.Runs)
	}
}

func TestTruncateBeyondEndIsNoop(t *testing.T) {
	row := NewRow[string]()
	row.Append("abc", "bold")
	before := row.Text
	row.TruncateAt(10)
	if row.Text != before {
		t.Fatalf("text changed: %q", row.Text)
	}
	checkRuns(t, row)
}

func TestTruncateToZeroKeepsOneRun(t *testing.T) {
	row := NewRow[string]()
	row.OverwriteAt(0, "aa", "bold")
	row.TruncateAt(0)
	if row.Text != "" {
		t.Fatalf("text = %q, want empty", row.Text)
	}
	if len(row.Runs) != 1 {
		t.Fatalf("runs = %v, want exactly one", row.Runs)
	}
}

func TestSpansStopAtWidth(t *testing.T) {
	row := NewRow[string]()
	row.Append("abcd", "")
	row.Append("efgh", "bold")

	var texts []string
	var styles []string
	for it := row.Spans(6); it.Next(); {
		texts = append(texts, it.Text())
		styles = append(styles, it.Style())
	}
	if len(texts) != 2 || texts[0] != "abcd" || texts[1] != "ef" {
		t.Fatalf("spans = %q", texts)
	}
	if styles[1] != "bold" {
		t.Fatalf("second span style = %q", styles[1])
	}
}

func TestSpansCountWideClustersOnce(t *testing.T) {
	row := NewRow[string]()
	row.Append("ééé", "")

	var got string
	for it := row.Spans(2); it.Next(); {
		got += it.Text()
	}
	if CountGraphemes(got) != 2 {
		t.Fatalf("span covers %d clusters, want 2", CountGraphemes(got))
	}
}

func TestRunRangesPartitionText(t *testing.T) {
	row := NewRow[string]()
	row.Append("one", "a")
	row.Append("two", "b")
	row.Append("three", "c")

	pos := 0
	for it := row.RunRanges(); it.Next(); {
		start, end := it.Range()
		if start != pos {
			t.Fatalf("range starts at %d, want %d", start, pos)
		}
		if end <= start {
			t.Fatalf("empty range [%d, %d)", start, end)
		}
		pos = end
	}
	if pos != len(row.Text) {
		t.Fatalf("ranges cover %d bytes, text has %d", pos, len(row.Text))
	}
}

func TestAppendExtendsLastRun(t *testing.T) {
	row := NewRow[string]()
	row.Append("abc", "bold")
	row.Append("def", "bold")

	checkRuns(t, row)
	if len(row.Runs) != 1 || row.Runs[0].Style != "bold" {
		t.Fatalf("runs = %v, want one bold run", row.Runs)
	}
	if row.Text != "abcdef" {
		t.Fatalf("text = %q", row.Text)
	}
}
