package web

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dltoledo/pautapanel/internal/domain/model"
)

// sampleTable builds a sorted two-day table. Process 100 has a header row
// plus two party rows; process 200 is header-only.
func sampleTable() model.Table {
	day1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)

	return model.Table{Rows: []model.Hearing{
		{
			Day: "01/01/24", When: day1, Room: "Sala 1", ProcessNumber: "100",
			Timestamp: "01/01/2024 09:00", PartyOrType: "Instrução",
			Link: "https://example.test/p/100", Dimension: "Presencial",
			Summary: "Resumo do processo 100",
		},
		{
			Day: "01/01/24", When: day1, Room: "Sala 1", ProcessNumber: "100",
			PartyOrType: "João da Silva", Phone: "11 99999-0000", Notification: "Intimado",
		},
		{
			Day: "01/01/24", When: day1, Room: "Sala 1", ProcessNumber: "100",
			PartyOrType: "Maria Souza", Phone: "11 98888-1111", Notification: "Pendente",
		},
		{
			Day: "02/01/24", When: day2, Room: "Sala 2", ProcessNumber: "200",
			Timestamp: "02/01/2024 14:00", PartyOrType: "Conciliação",
		},
	}}
}

func TestToBoardViewModel_GroupsByDayRoomProcess(t *testing.T) {
	board := toBoardViewModel(sampleTable(), model.RoleSecretary, nil)

	require.Len(t, board.Days, 2)
	assert.Equal(t, "01/01/24", board.Days[0].Label)
	assert.Equal(t, "02/01/24", board.Days[1].Label)

	require.Len(t, board.Days[0].Rooms, 1)
	assert.Equal(t, "Sala 1", board.Days[0].Rooms[0].Name)
	require.Len(t, board.Days[0].Rooms[0].Processes, 1)

	proc := board.Days[0].Rooms[0].Processes[0]
	assert.Equal(t, "100", proc.ProcessNumber)
	assert.Equal(t, "01/01/2024 09:00", proc.Timestamp)
	assert.Equal(t, "Instrução", proc.Type)
}

func TestToBoardViewModel_SecretarySeesPartiesVerbatim(t *testing.T) {
	board := toBoardViewModel(sampleTable(), model.RoleSecretary, nil)

	proc := board.Days[0].Rooms[0].Processes[0]
	require.Len(t, proc.Parties, 2)
	assert.Equal(t, "João da Silva", proc.Parties[0].Name)
	assert.Equal(t, "11 99999-0000", proc.Parties[0].Phone)
	assert.Equal(t, "Intimado", proc.Parties[0].Notification)
	assert.True(t, board.ShowParties)
}

func TestToBoardViewModel_AuthorityNeverSeesParties(t *testing.T) {
	board := toBoardViewModel(sampleTable(), model.RoleAuthority, nil)

	proc := board.Days[0].Rooms[0].Processes[0]
	assert.Empty(t, proc.Parties)
	assert.False(t, board.ShowParties)
}

func TestToBoardViewModel_RoomFilter(t *testing.T) {
	board := toBoardViewModel(sampleTable(), model.RoleSecretary, []string{"Sala 2"})

	require.Len(t, board.Days, 1)
	assert.Equal(t, "02/01/24", board.Days[0].Label)
	assert.Equal(t, []string{"Sala 1", "Sala 2"}, board.AllRooms)
	assert.Equal(t, []string{"Sala 2"}, board.SelectedRooms)
}

func TestToBoardViewModel_NoSelectionMeansAllRooms(t *testing.T) {
	board := toBoardViewModel(sampleTable(), model.RoleSecretary, nil)

	assert.Equal(t, []string{"Sala 1", "Sala 2"}, board.SelectedRooms)
	assert.Len(t, board.Days, 2)
}

func TestRenderMarkdown_SanitizesScript(t *testing.T) {
	out := RenderMarkdown("**negrito** <script>alert(1)</script>")

	assert.Contains(t, out, "<strong>negrito</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestRenderMarkdown_EmptyInput(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(""))
}
