package storage

import (
	"encoding/json"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/membrane/internal/experiment"
)

type runExport struct {
	Metadata RunMetadata         `json:"metadata"`
	Samples  []experiment.Sample `json:"samples"`
}

// ExportJSON writes the full run (metadata plus samples) as indented
// JSON to w.
func ExportJSON(w io.Writer, meta *RunMetadata, samples []experiment.Sample) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runExport{Metadata: *meta, Samples: samples})
}

// ExportCSV writes the sample rows as CSV to w.
func ExportCSV(w io.Writer, samples []experiment.Sample) error {
	return gocsv.Marshal(samples, w)
}
