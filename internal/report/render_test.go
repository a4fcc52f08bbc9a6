package report_test

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/awheeler/merakiusage/internal/model"
	"github.com/awheeler/merakiusage/internal/report"
)

func TestBanner(t *testing.T) {
	var buf bytes.Buffer
	report.Banner(&buf, "Meraki API Usage Report")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("banner has %d lines, want 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "╭") || !strings.HasSuffix(lines[0], "╮") {
		t.Errorf("top border = %q", lines[0])
	}
	if !strings.Contains(lines[1], "Meraki API Usage Report") {
		t.Errorf("title line = %q", lines[1])
	}
	w0 := utf8.RuneCountInString(lines[0])
	for i, line := range lines {
		if utf8.RuneCountInString(line) != w0 {
			t.Errorf("line %d width %d, want %d", i, utf8.RuneCountInString(line), w0)
		}
	}
}

func TestRenderSummaryTable(t *testing.T) {
	tally := model.NewTally()
	tally.Add("GET")
	tally.Add("POST")
	tally.Add("GET")

	var buf bytes.Buffer
	report.RenderSummaryTable(&buf, "Request Type", tally)
	out := buf.String()

	if !strings.Contains(out, "Summary Statistics for Request Type") {
		t.Errorf("missing title in %q", out)
	}
	if !strings.Contains(out, "REQUEST TYPE") || !strings.Contains(out, "COUNT") {
		t.Errorf("missing column headers in %q", out)
	}
	getAt := strings.Index(out, "GET")
	postAt := strings.Index(out, "POST")
	if getAt == -1 || postAt == -1 || getAt > postAt {
		t.Errorf("rows out of first-seen order in %q", out)
	}
	if !strings.Contains(out, "2") || !strings.Contains(out, "1") {
		t.Errorf("missing counts in %q", out)
	}
}

func TestRenderSummaryTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	report.RenderSummaryTable(&buf, "API Call", model.NewTally())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// Blank line, title, header, dash rule; no data rows.
	if len(lines) != 4 {
		t.Fatalf("empty table has %d lines, want 4: %q", len(lines), buf.String())
	}
}
