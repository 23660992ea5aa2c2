package logger

import (
	"sync"
)

// named holds loggers registered per component name. A component that owns
// a logger registers it on start and removes it on stop.
var named = struct {
	sync.RWMutex
	loggers map[string]*Logger
}{loggers: make(map[string]*Logger)}

// Register stores l under name, replacing any earlier entry.
func Register(name string, l *Logger) {
	named.Lock()
	named.loggers[name] = l
	named.Unlock()
}

// Unregister removes the logger stored under name.
func Unregister(name string) {
	named.Lock()
	delete(named.loggers, name)
	named.Unlock()
}

// Lookup returns the logger registered under name, if any.
func Lookup(name string) (*Logger, bool) {
	named.RLock()
	defer named.RUnlock()
	l, ok := named.loggers[name]
	return l, ok
}

// Get returns the logger registered under name, or the global logger tagged
// with name as its component.
func Get(name string) *Logger {
	if l, ok := Lookup(name); ok {
		return l
	}
	return GetGlobalLogger().WithComponent(name)
}
