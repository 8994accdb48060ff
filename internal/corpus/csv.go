// Package corpus provides catalog input sources: CSV parsing and the
// built-in seed library.
package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/arjunmehta/tastemap/internal/core"
)

// ParsePairs reads a CSV with artist and song columns into raw track pairs.
// The header is validated before any row is read; a missing column is a
// request-level error, not a per-row one. Column order is free and header
// matching is case-insensitive.
func ParsePairs(r io.Reader) ([]core.TrackPair, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%w: file is empty", core.ErrMissingColumns)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	artistCol, songCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "artist":
			artistCol = i
		case "song":
			songCol = i
		}
	}
	if artistCol < 0 || songCol < 0 {
		return nil, core.ErrMissingColumns
	}

	var pairs []core.TrackPair
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row: %w", err)
		}
		if artistCol >= len(row) || songCol >= len(row) {
			continue
		}
		pairs = append(pairs, core.TrackPair{
			Artist: strings.TrimSpace(row[artistCol]),
			Song:   strings.TrimSpace(row[songCol]),
		})
	}

	return pairs, nil
}
