package bridge

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/timetable/internal/config"
	"github.com/jmylchreest/timetable/internal/schedule"
	"github.com/jmylchreest/timetable/internal/theme"
)

const exampleCSV = ",Mon,Tue\n9am,Math,Sci\n10am,Art,PE\n"

func newTestHandlers(t *testing.T, csv string, opts ...schedule.Option) (*Handlers, config.State) {
	t.Helper()
	dir := t.TempDir()
	state := config.State{
		ThemePath: filepath.Join(dir, "theme.conf"),
		DataPath:  filepath.Join(dir, "schedule.csv"),
	}
	if csv != "" {
		require.NoError(t, os.WriteFile(state.DataPath, []byte(csv), 0644))
	}
	return New(state, nil, opts...), state
}

func TestHandlers_GetTheme_Missing(t *testing.T) {
	h, _ := newTestHandlers(t, exampleCSV)
	assert.Equal(t, theme.Default(), h.GetTheme())
}

func TestHandlers_GetTheme_File(t *testing.T) {
	h, state := newTestHandlers(t, exampleCSV)
	require.NoError(t, os.WriteFile(state.ThemePath, []byte("background #000000\n"), 0644))

	assert.Equal(t, "#000000", h.GetTheme().Background)
}

func TestHandlers_GetSchedule(t *testing.T) {
	h, _ := newTestHandlers(t, exampleCSV)

	data, err := h.GetSchedule()
	require.NoError(t, err)
	assert.Equal(t, []string{"Mon", "Tue"}, data.Headers)
}

func TestHandlers_SaveCell(t *testing.T) {
	h, _ := newTestHandlers(t, exampleCSV)

	require.NoError(t, h.SaveCell(0, 1, "Bio"))

	data, err := h.GetSchedule()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Math", "Bio"}, {"Art", "PE"}}, data.Grid)
}

func TestHandlers_StrictOption(t *testing.T) {
	h, _ := newTestHandlers(t, exampleCSV, schedule.WithStrictBounds(true))

	err := h.SaveCell(9, 9, "X")
	assert.True(t, errors.Is(err, schedule.ErrOutOfRange))
}

func TestInvoke_GetTheme(t *testing.T) {
	h, _ := newTestHandlers(t, exampleCSV)

	reply := h.Invoke(Request{ID: "abc", Cmd: CmdGetTheme})

	assert.Equal(t, "abc", reply.ID)
	assert.True(t, reply.OK)
	assert.Empty(t, reply.Error)
	assert.Equal(t, theme.Default(), reply.Data)
}

func TestInvoke_GetThemeNonFiniteFontSize(t *testing.T) {
	h, state := newTestHandlers(t, exampleCSV)
	require.NoError(t, os.WriteFile(state.ThemePath, []byte("font_size NaN\n"), 0644))

	reply := h.Invoke(Request{Cmd: CmdGetTheme})
	require.True(t, reply.OK)

	_, err := json.Marshal(reply)
	require.NoError(t, err)
	assert.Equal(t, theme.DefaultFontSize, reply.Data.(theme.Theme).FontSize)
}

func TestInvoke_AssignsRequestID(t *testing.T) {
	h, _ := newTestHandlers(t, exampleCSV)

	reply := h.Invoke(Request{Cmd: CmdGetTheme})

	_, err := ulid.Parse(reply.ID)
	assert.NoError(t, err)
}

func TestInvoke_GetScheduleError(t *testing.T) {
	h, _ := newTestHandlers(t, "")

	reply := h.Invoke(Request{Cmd: CmdGetSchedule})

	assert.False(t, reply.OK)
	assert.Nil(t, reply.Data)
	assert.Contains(t, reply.Error, "schedule.csv")
}

func TestInvoke_GetScheduleEmpty(t *testing.T) {
	h, _ := newTestHandlers(t, "\n")

	reply := h.Invoke(Request{Cmd: CmdGetSchedule})

	assert.False(t, reply.OK)
	assert.Equal(t, "CSV is empty", reply.Error)
}

func TestInvoke_SaveCell(t *testing.T) {
	h, state := newTestHandlers(t, exampleCSV)

	reply := h.Invoke(Request{Cmd: CmdSaveCell, Args: json.RawMessage(`{"row":1,"col":0,"value":"Music"}`)})
	require.True(t, reply.OK, reply.Error)
	assert.Nil(t, reply.Data)

	data, err := schedule.Load(state.DataPath)
	require.NoError(t, err)
	assert.Equal(t, "Music", data.Grid[1][0])
}

func TestInvoke_SaveCellBadArgs(t *testing.T) {
	h, state := newTestHandlers(t, exampleCSV)

	tests := []struct {
		name string
		args string
	}{
		{"missing", ""},
		{"not json", `row=1`},
		{"missing col", `{"row":1,"value":"x"}`},
		{"wrong type", `{"row":"1","col":0,"value":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := h.Invoke(Request{Cmd: CmdSaveCell, Args: json.RawMessage(tt.args)})
			assert.False(t, reply.OK)
			assert.Contains(t, reply.Error, "save_cell")
		})
	}

	content, err := os.ReadFile(state.DataPath)
	require.NoError(t, err)
	assert.Equal(t, exampleCSV, string(content))
}

func TestInvoke_UnknownCommand(t *testing.T) {
	h, _ := newTestHandlers(t, exampleCSV)

	reply := h.Invoke(Request{Cmd: "drop_tables"})

	assert.False(t, reply.OK)
	assert.Contains(t, reply.Error, "unknown command")
	assert.Contains(t, reply.Error, "drop_tables")
	for _, cmd := range Commands {
		assert.Contains(t, reply.Error, cmd)
	}
}

func TestInvoke_ConcurrentSavesSerialized(t *testing.T) {
	h, state := newTestHandlers(t, exampleCSV)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			row, col := i%2, (i/2)%2
			h.SaveCell(row, col, "x")
		}(i)
	}
	wg.Wait()

	data, err := schedule.Load(state.DataPath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"x", "x"}, {"x", "x"}}, data.Grid)
}

func TestReply_JSON(t *testing.T) {
	data, err := json.Marshal(Reply{ID: "1", OK: false, Error: "boom"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1","ok":false,"error":"boom"}`, string(data))

	data, err = json.Marshal(Reply{ID: "2", OK: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"2","ok":true}`, string(data))
}

func TestDecodeSaveCellArgs(t *testing.T) {
	args, err := DecodeSaveCellArgs(json.RawMessage(`{"row":0,"col":0}`))
	require.NoError(t, err)
	assert.Equal(t, SaveCellArgs{Row: 0, Col: 0, Value: ""}, args)
}
