// Package viewmodel defines the presentation data structures rendered by the
// web GUI. They are plain data with no behavior.
package viewmodel

// BoardViewModel is the full schedule board for one role.
type BoardViewModel struct {
	Role          string
	Days          []DayViewModel
	AllRooms      []string
	SelectedRooms []string
	ShowParties   bool
}

// DayViewModel groups one day's hearings by room.
type DayViewModel struct {
	Label string // derived day key, dd/mm/yy
	Rooms []RoomViewModel
}

// RoomViewModel groups one room's hearings by process.
type RoomViewModel struct {
	Name      string
	Processes []ProcessViewModel
}

// ProcessViewModel is one process block: the hearing header from the block's
// first row plus the party rows that follow it.
type ProcessViewModel struct {
	Timestamp     string
	ProcessNumber string
	Type          string
	Link          string
	Dimension     string
	SummaryHTML   string // sanitized, safe to render raw
	Parties       []PartyViewModel
}

// PartyViewModel is one party row. Only rendered for the secretary role.
type PartyViewModel struct {
	Name         string
	Phone        string
	Notification string
}

// AdminViewModel backs the admin upload panel.
type AdminViewModel struct {
	Uploads  []UploadRowViewModel
	Uploaded bool // true right after a successful replacement
}

// UploadRowViewModel is one audit log entry.
type UploadRowViewModel struct {
	SizeBytes  int64
	SHA        string
	Message    string
	UploadedAt string
}
