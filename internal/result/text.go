package result

import (
	"bufio"
	"io"
)

// RowSeparator starts every row in text output.
const RowSeparator = "---- Row ----"

// WriteText renders rows for the console. Nothing is written for an empty set.
func WriteText(w io.Writer, set Set) error {
	bw := bufio.NewWriter(w)
	for _, row := range set {
		bw.WriteString(RowSeparator)
		bw.WriteByte('\n')
		for _, f := range row.Fields {
			bw.WriteString(f.Name)
			bw.WriteString(": ")
			bw.WriteString(f.Value)
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
