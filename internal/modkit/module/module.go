// Package module is the contract every API module meets and the registry their ports are shared through
package module

import (
	"reflect"
	"sync"

	phttp "eshoppers/internal/platform/net/http"
)

// Module mounts its routes and exposes a port set other modules may use
// it lives apart from modkit so a module package can import it without cycles
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// PortsOf finds a T in m.Ports(), either the set itself or one of its exported fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return zero, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf panics when m has no T
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("module: " + m.Name() + " exposes no " + reflect.TypeFor[T]().String())
	}
	return v
}

var (
	mu       sync.RWMutex
	registry = map[string]any{}
)

// Register publishes ports under a module name, a second call replaces the first
func Register(name string, ports any) {
	mu.Lock()
	defer mu.Unlock()
	registry[name] = ports
}

// Lookup returns the ports registered under name when they are a T
func Lookup[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := registry[name]
	mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// Reset empties the registry
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	registry = map[string]any{}
}
