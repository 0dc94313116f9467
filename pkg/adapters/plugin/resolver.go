// Package plugin resolves scripts compiled as Go plugins.
//
// A plugin exports its procedure under the Script symbol, either as a function
// or as a variable holding one:
//
//	var Script domain.Procedure = func(yield domain.Yield, args ...any) (domain.Command, error) {
//		out := yield(domain.Cmd("whoami"))
//		return domain.Cmd("echo " + out.Output()), nil
//	}
package plugin

import (
	"fmt"
	"plugin"
	"reflect"
)

// Symbol is the name looked up in every plugin.
const Symbol = "Script"

// Resolver opens .so files with the plugin package.
type Resolver struct {
	open func(path string) (lookuper, error)
}

type lookuper interface {
	Lookup(name string) (plugin.Symbol, error)
}

// NewResolver creates a Resolver.
func NewResolver() *Resolver {
	return &Resolver{
		open: func(path string) (lookuper, error) {
			return plugin.Open(path)
		},
	}
}

// Resolve opens the plugin and returns its Script symbol.
// Variables are dereferenced so the engine sees the procedure itself.
func (r *Resolver) Resolve(path string) (any, error) {
	p, err := r.open(path)
	if err != nil {
		return nil, fmt.Errorf("open plugin %s: %w", path, err)
	}
	sym, err := p.Lookup(Symbol)
	if err != nil {
		return nil, fmt.Errorf("lookup %s in %s: %w", Symbol, path, err)
	}
	return deref(sym), nil
}

func deref(sym any) any {
	v := reflect.ValueOf(sym)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return sym
	}
	if v.Elem().Kind() != reflect.Func {
		return sym
	}
	return v.Elem().Interface()
}
