// Package model contains the domain types shared across the application.
package model

import (
	"sort"
	"time"
)

// Column names as they appear in the header row of the source CSV file.
// The dataset is maintained by court staff in Portuguese; the names are part
// of the file contract and must not be translated.
const (
	ColTimestamp     = "data e horário"
	ColRoom          = "sala de audiência"
	ColProcessNumber = "número do processo relacionado"
	ColPartyOrType   = "parte a ser ouvida ou tipo de processo"
	ColLink          = "link do processo"
	ColDimension     = "dimensão da audiência"
	ColSummary       = "resumo dos fatos"
	ColPhone         = "telefone da parte"
	ColNotification  = "estado da intimação"
)

// Hearing is one row of the schedule dataset. All cells are plain strings;
// missing cells are normalized to "". Within a process block the first row
// carries the hearing header and the following rows carry one party each.
type Hearing struct {
	Timestamp     string // raw cell, as stored in the file
	Room          string
	ProcessNumber string
	PartyOrType   string
	Link          string
	Dimension     string
	Summary       string
	Phone         string
	Notification  string

	// Day is derived from Timestamp as dd/mm/yy and is never persisted.
	Day string
	// When is the parsed Timestamp, used only for sorting.
	When time.Time
}

// Table is an immutable snapshot of the loaded dataset, sorted ascending by
// (day, room, timestamp). Consumers must not mutate it in place.
type Table struct {
	Rows []Hearing
}

// Rooms returns the distinct room identifiers in ascending order.
func (t Table) Rooms() []string {
	seen := make(map[string]bool)
	var rooms []string
	for _, row := range t.Rows {
		if !seen[row.Room] {
			seen[row.Room] = true
			rooms = append(rooms, row.Room)
		}
	}
	sort.Strings(rooms)
	return rooms
}

// Days returns the distinct derived day keys in row order. Rows are already
// sorted, so the result is chronological.
func (t Table) Days() []string {
	seen := make(map[string]bool)
	var days []string
	for _, row := range t.Rows {
		if !seen[row.Day] {
			seen[row.Day] = true
			days = append(days, row.Day)
		}
	}
	return days
}
