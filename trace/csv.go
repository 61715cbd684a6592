package trace

import (
	"encoding/csv"
	"io"
)

// Header is the exact column order the exported trace uses.
var Header = []string{
	"Cycle", "PID", "Address", "Instruction",
	"A-Pointer", "A-Load1", "A-Load2", "A-Store",
	"B-Pointer", "B-Load1", "B-Load2", "B-Store",
	"Store1", "Store2", "PCS",
}

// WriteCSV writes records to w in the exported trace format, one row
// per executed instruction, semicolon-delimited to match the header.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	cw.Comma = ';'
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(r.row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
