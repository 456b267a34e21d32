package application

import (
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/dltoledo/pautapanel/internal/domain/model"
)

// timestampLayouts are tried in order when parsing the "data e horário"
// cell. The file is edited by hand, so both ISO and Brazilian day-first
// forms occur in practice.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// dayLayout is the derived grouping key format (dd/mm/yy).
const dayLayout = "02/01/06"

// parseHearings parses the raw dataset bytes into hearing rows. The field
// separator is sniffed from the header line; if sniffing finds nothing the
// comma and then the semicolon are tried. The first separator that parses
// without a structural error wins. Timestamp cells are parsed eagerly so a
// malformed one aborts the whole load.
func parseHearings(data []byte) ([]model.Hearing, error) {
	text := string(data)

	records, err := readDelimited(text)
	if err != nil {
		return nil, err
	}

	return mapRecords(records)
}

// readDelimited returns the raw records of the first separator strategy
// that yields a structurally valid parse with a header row.
func readDelimited(text string) ([][]string, error) {
	for _, sep := range separatorCandidates(text) {
		r := csv.NewReader(strings.NewReader(text))
		r.Comma = sep
		r.FieldsPerRecord = -1

		records, err := r.ReadAll()
		if err == nil && len(records) > 0 {
			return records, nil
		}
	}

	return nil, ErrUnparsableTable
}

// separatorCandidates returns the separators to attempt, in order: the one
// sniffed from the header line (if any), then comma, then semicolon.
func separatorCandidates(text string) []rune {
	candidates := []rune{',', ';'}

	if sniffed, ok := sniffSeparator(text); ok && sniffed != ',' {
		if sniffed == ';' {
			candidates = []rune{';', ','}
		} else {
			candidates = append([]rune{sniffed}, candidates...)
		}
	}

	return candidates
}

// sniffSeparator picks the candidate separator occurring most often in the
// header line. Returns false when none occurs at all.
func sniffSeparator(text string) (rune, bool) {
	header := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		header = text[:i]
	}

	best, bestCount := rune(0), 0
	for _, sep := range []rune{',', ';', '\t'} {
		if n := strings.Count(header, string(sep)); n > bestCount {
			best, bestCount = sep, n
		}
	}

	return best, bestCount > 0
}

// mapRecords converts raw records (header first) into hearing rows. Every
// cell stays a string; cells missing from short records become "".
func mapRecords(records [][]string) ([]model.Hearing, error) {
	header := records[0]
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	cell := func(record []string, column string) string {
		i, ok := index[column]
		if !ok || i >= len(record) {
			return ""
		}
		return record[i]
	}

	rows := make([]model.Hearing, 0, len(records)-1)
	for n, record := range records[1:] {
		row := model.Hearing{
			Timestamp:     cell(record, model.ColTimestamp),
			Room:          cell(record, model.ColRoom),
			ProcessNumber: cell(record, model.ColProcessNumber),
			PartyOrType:   cell(record, model.ColPartyOrType),
			Link:          cell(record, model.ColLink),
			Dimension:     cell(record, model.ColDimension),
			Summary:       cell(record, model.ColSummary),
			Phone:         cell(record, model.ColPhone),
			Notification:  cell(record, model.ColNotification),
		}

		when, err := parseTimestamp(row.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %q", ErrMalformedTimestamp, n+2, row.Timestamp)
		}
		row.When = when
		row.Day = when.Format(dayLayout)

		rows = append(rows, row)
	}

	return rows, nil
}

// parseTimestamp tries each known layout in order.
func parseTimestamp(cell string) (time.Time, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("no layout matches %q", cell)
}
