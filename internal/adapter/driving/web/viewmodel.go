package web

import (
	"time"

	vm "github.com/dltoledo/pautapanel/internal/adapter/driving/web/viewmodel"
	"github.com/dltoledo/pautapanel/internal/domain/model"
)

// toBoardViewModel groups the loaded table into day → room → process blocks
// for the given role. selectedRooms filters rooms; empty means all. Party
// rows (name, phone, notification state) are populated only when the role
// may see them.
func toBoardViewModel(table model.Table, role model.Role, selectedRooms []string) vm.BoardViewModel {
	allRooms := table.Rooms()

	selected := make(map[string]bool, len(selectedRooms))
	for _, room := range selectedRooms {
		selected[room] = true
	}
	if len(selected) == 0 {
		for _, room := range allRooms {
			selected[room] = true
		}
		selectedRooms = allRooms
	}

	board := vm.BoardViewModel{
		Role:          string(role),
		Days:          []vm.DayViewModel{},
		AllRooms:      allRooms,
		SelectedRooms: selectedRooms,
		ShowParties:   role.SeesParties(),
	}

	for _, day := range table.Days() {
		dayVM := buildDay(table, day, selected, role)
		if len(dayVM.Rooms) > 0 {
			board.Days = append(board.Days, dayVM)
		}
	}

	return board
}

func buildDay(table model.Table, day string, selected map[string]bool, role model.Role) vm.DayViewModel {
	dayVM := vm.DayViewModel{Label: day}

	// Rows are sorted by (day, room, timestamp), so rooms come out grouped
	// and in ascending order within the day.
	var current *vm.RoomViewModel
	for _, row := range table.Rows {
		if row.Day != day || !selected[row.Room] {
			continue
		}

		if current == nil || current.Name != row.Room {
			dayVM.Rooms = append(dayVM.Rooms, vm.RoomViewModel{Name: row.Room})
			current = &dayVM.Rooms[len(dayVM.Rooms)-1]
		}

		appendToProcess(current, row, role)
	}

	return dayVM
}

// appendToProcess adds a row to its process block inside the room. The first
// row of a block carries the hearing header; the rows after it are parties.
func appendToProcess(room *vm.RoomViewModel, row model.Hearing, role model.Role) {
	n := len(room.Processes)
	if n == 0 || room.Processes[n-1].ProcessNumber != row.ProcessNumber {
		room.Processes = append(room.Processes, vm.ProcessViewModel{
			Timestamp:     row.Timestamp,
			ProcessNumber: row.ProcessNumber,
			Type:          row.PartyOrType,
			Link:          row.Link,
			Dimension:     row.Dimension,
			SummaryHTML:   RenderMarkdown(row.Summary),
			Parties:       []vm.PartyViewModel{},
		})
		return
	}

	if !role.SeesParties() {
		return
	}

	proc := &room.Processes[n-1]
	proc.Parties = append(proc.Parties, vm.PartyViewModel{
		Name:         row.PartyOrType,
		Phone:        row.Phone,
		Notification: row.Notification,
	})
}

// toAdminViewModel converts audit entries into the admin panel view.
func toAdminViewModel(uploads []model.UploadRecord, uploaded bool) vm.AdminViewModel {
	rows := make([]vm.UploadRowViewModel, 0, len(uploads))
	for _, rec := range uploads {
		rows = append(rows, vm.UploadRowViewModel{
			SizeBytes:  rec.SizeBytes,
			SHA:        rec.NewSHA,
			Message:    rec.Message,
			UploadedAt: rec.UploadedAt.UTC().Format(time.RFC3339),
		})
	}

	return vm.AdminViewModel{Uploads: rows, Uploaded: uploaded}
}
