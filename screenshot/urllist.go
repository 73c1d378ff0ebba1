package screenshot

import (
	"encoding/csv"
	"io"
	"strings"
)

// urlReader yields the first field of every data row of a CSV URL list.
// The header row and rows with an empty first field are skipped.
type urlReader struct {
	csv           *csv.Reader
	headerSkipped bool
}

func newURLReader(r io.Reader) *urlReader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true
	return &urlReader{csv: cr}
}

// Next returns the next URL, or io.EOF once the list is exhausted
func (r *urlReader) Next() (string, error) {
	for {
		record, err := r.csv.Read()
		if err != nil {
			return "", err
		}

		if !r.headerSkipped {
			r.headerSkipped = true
			continue
		}

		if len(record) == 0 {
			continue
		}
		if url := strings.TrimSpace(record[0]); url != "" {
			return url, nil
		}
	}
}
