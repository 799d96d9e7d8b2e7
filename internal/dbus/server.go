package dbus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"

	"github.com/jmylchreest/timetable/internal/bridge"
)

const (
	// DBusInterface is the timetable interface name.
	DBusInterface = "io.github.jmylchreest.Timetable"
	// DBusPath is the timetable object path.
	DBusPath = "/io/github/jmylchreest/Timetable"
	// DBusBusName is the bus name to claim.
	DBusBusName = "io.github.jmylchreest.Timetable"
	// ErrorName is the D-Bus error name for failed requests.
	ErrorName = DBusInterface + ".Error"

	introspectInterface = "org.freedesktop.DBus.Introspectable"
)

// Service exposes Handlers on the session bus.
type Service struct {
	handlers *bridge.Handlers
	logger   *slog.Logger

	mu      sync.RWMutex
	conn    *dbus.Conn
	running bool
}

// NewService creates a Service for the given handlers.
func NewService(handlers *bridge.Handlers, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		handlers: handlers,
		logger:   logger,
	}
}

// Start connects to the session bus and exports the service.
func (s *Service) Start() error {
	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}
	return s.StartOn(conn)
}

// StartOn exports the service on an existing connection and claims the bus name.
func (s *Service) StartOn(conn *dbus.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("service already running")
	}

	if err := conn.Export(s, DBusPath, DBusInterface); err != nil {
		return fmt.Errorf("failed to export object: %w", err)
	}

	if err := conn.Export(introspect.NewIntrospectable(IntrospectNode()), DBusPath,
		introspectInterface); err != nil {
		unexport(conn)
		return fmt.Errorf("failed to export introspectable: %w", err)
	}

	reply, err := conn.RequestName(DBusBusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		unexport(conn)
		return fmt.Errorf("failed to request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		unexport(conn)
		return fmt.Errorf("bus name %s already taken", DBusBusName)
	}

	s.conn = conn
	s.running = true

	s.logger.Info("D-Bus service started", "interface", DBusInterface, "path", DBusPath)
	return nil
}

// Stop releases the bus name and unexports the object.
func (s *Service) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false

	if _, err := s.conn.ReleaseName(DBusBusName); err != nil {
		s.logger.Warn("failed to release bus name", "error", err)
	}
	unexport(s.conn)
	// The session bus connection is shared and stays open.

	s.logger.Info("D-Bus service stopped")
	return nil
}

// unexport removes both exported objects from conn.
func unexport(conn *dbus.Conn) {
	_ = conn.Export(nil, DBusPath, DBusInterface)
	_ = conn.Export(nil, DBusPath, introspectInterface)
}

// Running reports whether the service is exported.
func (s *Service) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// GetTheme returns the current theme as JSON.
// D-Bus method: GetTheme() -> s
func (s *Service) GetTheme() (string, *dbus.Error) {
	s.logger.Debug("GetTheme called")
	return encode(s.handlers.GetTheme())
}

// GetSchedule returns the timetable as JSON.
// D-Bus method: GetSchedule() -> s
func (s *Service) GetSchedule() (string, *dbus.Error) {
	s.logger.Debug("GetSchedule called")
	data, err := s.handlers.GetSchedule()
	if err != nil {
		return "", newError(err)
	}
	return encode(data)
}

// SaveCell writes a single cell.
// D-Bus method: SaveCell(iis) -> nothing
func (s *Service) SaveCell(row, col int32, value string) *dbus.Error {
	s.logger.Debug("SaveCell called", "row", row, "col", col)
	if err := s.handlers.SaveCell(int(row), int(col), value); err != nil {
		return newError(err)
	}
	return nil
}

func encode(v any) (string, *dbus.Error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", newError(err)
	}
	return string(b), nil
}

func newError(err error) *dbus.Error {
	return dbus.NewError(ErrorName, []any{err.Error()})
}

// IntrospectNode returns the introspection data for the exported object.
func IntrospectNode() *introspect.Node {
	return &introspect.Node{
		Name: DBusPath,
		Interfaces: []introspect.Interface{
			introspect.IntrospectData,
			{
				Name:    DBusInterface,
				Methods: timetableMethods(),
				Signals: timetableSignals(),
			},
		},
	}
}

func timetableMethods() []introspect.Method {
	return []introspect.Method{
		{
			Name: "GetTheme",
			Args: []introspect.Arg{
				{Name: "theme", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "GetSchedule",
			Args: []introspect.Arg{
				{Name: "schedule", Type: "s", Direction: "out"},
			},
		},
		{
			Name: "SaveCell",
			Args: []introspect.Arg{
				{Name: "row", Type: "i", Direction: "in"},
				{Name: "col", Type: "i", Direction: "in"},
				{Name: "value", Type: "s", Direction: "in"},
			},
		},
	}
}

func timetableSignals() []introspect.Signal {
	return []introspect.Signal{
		{Name: SignalThemeChanged},
		{Name: SignalScheduleChanged},
	}
}
