package report

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/awheeler/merakiusage/internal/model"
)

// Banner prints the boxed program title.
func Banner(w io.Writer, title string) {
	inner := utf8.RuneCountInString(title) + 2
	fmt.Fprintln(w, "╭"+strings.Repeat("─", inner)+"╮")
	fmt.Fprintln(w, "│ "+title+" │")
	fmt.Fprintln(w, "╰"+strings.Repeat("─", inner)+"╯")
}

// RenderSummaryTable prints one frequency table titled
// "Summary Statistics for <label>". Values keep first-seen order, matching
// the order they appear in the CSV.
func RenderSummaryTable(w io.Writer, label string, tally *model.Tally) {
	fmt.Fprintf(w, "\nSummary Statistics for %s\n", label)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	upper := strings.ToUpper(label)
	fmt.Fprintf(tw, "%s\tCOUNT\n", upper)
	fmt.Fprintf(tw, "%s\t%s\n", strings.Repeat("-", len(upper)), "-----")
	for _, key := range tally.Keys() {
		fmt.Fprintf(tw, "%s\t%d\n", key, tally.Count(key))
	}
	tw.Flush()
}
