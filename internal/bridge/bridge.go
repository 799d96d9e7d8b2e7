// Package bridge exposes the request handlers invoked by the UI.
// Handlers return internal values and typed errors; Invoke is the boundary
// adapter that turns them into replies carrying plain error strings.
package bridge

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/timetable/internal/config"
	"github.com/jmylchreest/timetable/internal/schedule"
	"github.com/jmylchreest/timetable/internal/theme"
)

// Command names accepted by Invoke.
const (
	CmdGetTheme    = "get_theme"
	CmdGetSchedule = "get_schedule"
	CmdSaveCell    = "save_cell"
)

// Commands lists every command accepted by Invoke.
var Commands = []string{CmdGetTheme, CmdGetSchedule, CmdSaveCell}

// ErrUnknownCommand is returned for commands Invoke does not recognize.
var ErrUnknownCommand = errors.New("unknown command")

// Handlers serves the UI requests against the configured files.
// Calls are serialized so only one request runs at a time.
type Handlers struct {
	mu     sync.Mutex
	state  config.State
	store  *schedule.Store
	logger *slog.Logger
}

// New creates Handlers for the given paths. opts configure the schedule store.
func New(state config.State, logger *slog.Logger, opts ...schedule.Option) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	opts = append([]schedule.Option{schedule.WithLogger(logger)}, opts...)
	return &Handlers{
		state:  state,
		store:  schedule.NewStore(state.DataPath, opts...),
		logger: logger,
	}
}

// State returns the paths the handlers operate on.
func (h *Handlers) State() config.State {
	return h.state
}

// GetTheme loads the theme file. It cannot fail.
func (h *Handlers) GetTheme() theme.Theme {
	h.mu.Lock()
	defer h.mu.Unlock()
	return theme.Load(h.state.ThemePath)
}

// GetSchedule loads the schedule file.
func (h *Handlers) GetSchedule() (*schedule.TimetableData, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Load()
}

// SaveCell writes a single schedule cell.
func (h *Handlers) SaveCell(row, col int, value string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.store.Save(row, col, value)
}

// Request is a single UI invocation.
type Request struct {
	ID   string          `json:"id,omitempty"`
	Cmd  string          `json:"cmd"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Reply is the answer to a Request. Error is set when OK is false; Data is
// absent for commands without a result.
type Reply struct {
	ID    string `json:"id"`
	OK    bool   `json:"ok"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

// SaveCellArgs are the arguments of save_cell.
type SaveCellArgs struct {
	Row   int    `json:"row"`
	Col   int    `json:"col"`
	Value string `json:"value"`
}

// Invoke dispatches a request and converts the outcome into a Reply.
func (h *Handlers) Invoke(req Request) Reply {
	id := req.ID
	if id == "" {
		id = NewRequestID()
	}

	start := time.Now()
	data, err := h.dispatch(req)
	logger := h.logger.With("id", id, "cmd", req.Cmd, "duration", time.Since(start))

	if err != nil {
		logger.Warn("request failed", "error", err)
		return Reply{ID: id, OK: false, Error: err.Error()}
	}
	logger.Debug("request handled")
	return Reply{ID: id, OK: true, Data: data}
}

func (h *Handlers) dispatch(req Request) (any, error) {
	switch req.Cmd {
	case CmdGetTheme:
		return h.GetTheme(), nil
	case CmdGetSchedule:
		return h.GetSchedule()
	case CmdSaveCell:
		args, err := DecodeSaveCellArgs(req.Args)
		if err != nil {
			return nil, err
		}
		return nil, h.SaveCell(args.Row, args.Col, args.Value)
	default:
		return nil, fmt.Errorf("%w: %q (want one of %s)", ErrUnknownCommand, req.Cmd, strings.Join(Commands, ", "))
	}
}

// DecodeSaveCellArgs parses save_cell arguments. row and col are required.
func DecodeSaveCellArgs(raw json.RawMessage) (SaveCellArgs, error) {
	var wire struct {
		Row   *int   `json:"row"`
		Col   *int   `json:"col"`
		Value string `json:"value"`
	}
	if len(raw) == 0 {
		return SaveCellArgs{}, errors.New("save_cell: missing arguments")
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return SaveCellArgs{}, fmt.Errorf("save_cell: invalid arguments: %w", err)
	}
	if wire.Row == nil || wire.Col == nil {
		return SaveCellArgs{}, errors.New("save_cell: row and col are required")
	}
	return SaveCellArgs{Row: *wire.Row, Col: *wire.Col, Value: wire.Value}, nil
}

// NewRequestID returns a new time-ordered request identifier.
func NewRequestID() string {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return fmt.Sprintf("req-%d", time.Now().UnixNano())
	}
	return id.String()
}
