package inspect

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Write prints the report as one table per entity followed by the
// diagnostics.
func (r *Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	for _, e := range r.Entities {
		kind := "entity"
		if e.Embeddable {
			kind = "embeddable"
		}

		fmt.Fprintf(tw, "%s (%s %q)\n", e.ID, kind, e.Name)

		for _, f := range e.Fields {
			var notes []string
			if f.ID {
				notes = append(notes, "id")
			}
			if f.AttributeConverter != "" {
				notes = append(notes, "converter="+f.AttributeConverter)
			}

			fmt.Fprintf(tw, "\t%s\t%s\t%s\t%s\t%s\n",
				f.GoName, f.Column, f.Kind, f.Converter, strings.Join(notes, ","))
		}
	}

	for _, d := range r.Diagnostics.All() {
		fmt.Fprintf(tw, "%s: %s\n", d.Severity, d)
	}

	return tw.Flush()
}
