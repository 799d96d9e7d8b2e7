package dbus

import (
	"fmt"

	"github.com/jmylchreest/timetable/internal/watch"
)

// Signal names emitted on DBusInterface.
const (
	SignalThemeChanged    = "ThemeChanged"
	SignalScheduleChanged = "ScheduleChanged"
)

// SignalFor returns the signal emitted for a file change of kind.
func SignalFor(kind watch.Kind) (string, bool) {
	switch kind {
	case watch.KindTheme:
		return SignalThemeChanged, true
	case watch.KindSchedule:
		return SignalScheduleChanged, true
	default:
		return "", false
	}
}

// Emit emits a signal without arguments on the timetable interface.
func (s *Service) Emit(signal string) error {
	s.mu.RLock()
	conn, running := s.conn, s.running
	s.mu.RUnlock()

	if !running {
		return fmt.Errorf("not connected to D-Bus")
	}

	if err := conn.Emit(DBusPath, DBusInterface+"."+signal); err != nil {
		return fmt.Errorf("failed to emit %s signal: %w", signal, err)
	}

	s.logger.Debug("emitted signal", "signal", signal)
	return nil
}

// NotifyChange emits the signal matching a watched file change.
func (s *Service) NotifyChange(kind watch.Kind) {
	signal, ok := SignalFor(kind)
	if !ok {
		return
	}
	if err := s.Emit(signal); err != nil {
		s.logger.Warn("failed to emit change signal", "signal", signal, "error", err)
	}
}
