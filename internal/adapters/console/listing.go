package console

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"titleblock/internal/domain"
)

// PrintSummary writes entries as an aligned table
func PrintSummary(out io.Writer, entries []domain.SummaryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No summary entries")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, bold.Sprint("FILE")+"\tLAYOUT\tREV\tDESCRIPTION\tDWG No.\tTITLE")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", e.File, e.Layout, e.Revision, e.RevisionDescription, e.DrawingNumber, e.DrawingTitle)
	}
	w.Flush()
}

// PrintSkipped writes entries with their reasons. Verbose adds the detail.
func PrintSkipped(out io.Writer, entries []domain.SkippedEntry, verbose bool) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No skipped entries")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(out, "%s %s %s\n", skipMark, dim.Sprint(e.At.Format("2006-01-02 15:04:05")), e.Identifier)
		fmt.Fprintf(out, "    %s\n", e.Reason)
		if verbose && e.Detail != "" {
			for _, line := range strings.Split(strings.TrimRight(e.Detail, "\n"), "\n") {
				dim.Fprintf(out, "    %s\n", line)
			}
		}
	}
}

// PrintTable writes the reference table rows
func PrintTable(out io.Writer, rows []domain.TableRow) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAG\tVALUE\tASSIGNMENT\tSTATIC")
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Tag, r.Value, r.Role, r.StaticValue)
	}
	w.Flush()
}
