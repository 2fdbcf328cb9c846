package grid

import (
	"sort"
	"strconv"

	"github.com/maruel/natural"

	"snaptext/utils/debug"
)

// Dump produces diagnostic listing of header and body rows.
func Dump(header, body Grid) string {
	tw := debug.NewTreeWriter()
	tw.Line(0, "grid: %d header rows, %d body rows, %d columns",
		len(header), len(body), max(header.Columns(), body.Columns()))
	dumpRows(tw, "header", header)
	dumpRows(tw, "body", body)
	return tw.String()
}

func dumpRows(tw *debug.TreeWriter, label string, rows Grid) {
	if len(rows) == 0 {
		return
	}
	tw.Line(1, "%s", label)
	for i, row := range rows {
		tw.List(2, "row "+strconv.Itoa(i), row)
	}
}

// DumpWidths lists minimum width overrides in natural label order.
func DumpWidths(widths map[string]int) string {
	labels := make([]string, 0, len(widths))
	for l := range widths {
		labels = append(labels, l)
	}
	sort.Sort(natural.StringSlice(labels))

	tw := debug.NewTreeWriter()
	tw.Line(0, "min widths")
	for _, l := range labels {
		tw.Line(1, "%q: %d", l, widths[l])
	}
	return tw.String()
}
