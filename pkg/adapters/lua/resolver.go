package lua

import (
	"bytes"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/unshell/pkg/domain"
	"github.com/spf13/afero"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

// ScriptGlobal is the global a Lua script assigns its procedure to.
const ScriptGlobal = "script"

// Resolver loads .lua files into procedures.
type Resolver struct {
	fs     afero.Fs
	logger *slog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFs sets the filesystem scripts are read from.
func WithFs(fsys afero.Fs) ResolverOption {
	return func(r *Resolver) {
		r.fs = fsys
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver creates a Resolver reading from the OS filesystem by default.
func NewResolver(opts ...ResolverOption) *Resolver {
	r := &Resolver{
		fs:     afero.NewOsFs(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve compiles the file at path and evaluates it once to find its script global.
// A Lua function is returned as a domain.Procedure. Any other value is returned
// as-is and left for the engine to reject.
func (r *Resolver) Resolve(path string) (any, error) {
	src, err := afero.ReadFile(r.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	proto, err := compile(src, path)
	if err != nil {
		return nil, err
	}

	L := newState()
	if err := load(L, proto); err != nil {
		L.Close()
		return nil, err
	}

	v := L.GetGlobal(ScriptGlobal)
	if v.Type() != lua.LTFunction {
		L.Close()
		r.logger.Debug("lua script global is not a function", "path", path, "type", v.Type().String())
		return v, nil
	}

	r.logger.Debug("lua script resolved", "path", path)
	return domain.Procedure(newLoadedScript(proto, path, L).run), nil
}

func compile(src []byte, name string) (*lua.FunctionProto, error) {
	chunk, err := parse.Parse(bytes.NewReader(src), name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	proto, err := lua.Compile(chunk, name)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", name, err)
	}
	return proto, nil
}

func load(L *lua.LState, proto *lua.FunctionProto) error {
	L.Push(L.NewFunctionFromProto(proto))
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		return fmt.Errorf("load %s: %w", proto.SourceName, err)
	}
	return nil
}

// loadedScript runs the script global as a coroutine. The first run reuses the
// state evaluated by Resolve, so the top-level chunk runs once per run.
type loadedScript struct {
	proto *lua.FunctionProto
	name  string

	mu      sync.Mutex
	pending *lua.LState
}

func newLoadedScript(proto *lua.FunctionProto, name string, L *lua.LState) *loadedScript {
	return &loadedScript{proto: proto, name: name, pending: L}
}

// state hands out the state loaded by Resolve once, then fresh ones.
func (s *loadedScript) state() (*lua.LState, error) {
	s.mu.Lock()
	L := s.pending
	s.pending = nil
	s.mu.Unlock()
	if L != nil {
		return L, nil
	}

	L = newState()
	if err := load(L, s.proto); err != nil {
		L.Close()
		return nil, err
	}
	return L, nil
}

func (s *loadedScript) run(yield domain.Yield, args ...any) (domain.Command, error) {
	L, err := s.state()
	if err != nil {
		return domain.Command{}, err
	}
	defer L.Close()

	fn, ok := L.GetGlobal(ScriptGlobal).(*lua.LFunction)
	if !ok {
		return domain.Command{}, fmt.Errorf("%s: %s is no longer a function", s.name, ScriptGlobal)
	}

	co, cancel := L.NewThread()
	if cancel != nil {
		defer cancel()
	}

	in := make([]lua.LValue, 0, len(args))
	for _, a := range args {
		in = append(in, toValue(L, a))
	}

	for {
		state, err, values := L.Resume(co, fn, in...)
		switch state {
		case lua.ResumeError:
			return domain.Command{}, fmt.Errorf("%s: %w", s.name, err)
		case lua.ResumeOK:
			return toCommand(first(values))
		}

		cmd, err := toCommand(first(values))
		if err != nil {
			return domain.Command{}, err
		}
		in = []lua.LValue{fromResult(L, yield(cmd))}
	}
}

func first(values []lua.LValue) lua.LValue {
	if len(values) == 0 {
		return lua.LNil
	}
	return values[0]
}
