// Package dbus exports the request handlers on the session bus as the
// io.github.jmylchreest.Timetable interface. Results are returned as JSON
// strings and change notifications are emitted as signals.
package dbus
