package lua

import (
	"fmt"

	"github.com/aretw0/unshell/pkg/domain"
	"github.com/aretw0/unshell/pkg/pipe"
	lua "github.com/yuin/gopher-lua"
)

func newState() *lua.LState {
	L := lua.NewState()
	co := L.GetGlobal("coroutine")
	L.SetGlobal("yield", L.GetField(co, "yield"))
	L.PreloadModule("unshell", openUnshell)
	L.SetGlobal("unshell", L.NewTable())
	L.SetField(L.GetGlobal("unshell"), "pipe", L.NewFunction(luaPipe))
	return L
}

func openUnshell(L *lua.LState) int {
	mod := L.NewTable()
	L.SetField(mod, "pipe", L.NewFunction(luaPipe))
	L.Push(mod)
	return 1
}

// luaPipe joins its string arguments into a single pipeline.
func luaPipe(L *lua.LState) int {
	stages := make([]string, 0, L.GetTop())
	for i := 1; i <= L.GetTop(); i++ {
		stages = append(stages, L.CheckString(i))
	}
	L.Push(lua.LString(pipe.Join(stages...)))
	return 1
}

// toCommand converts a yielded or returned Lua value.
// nil and false are the absent command, a string is a single line and an
// array table is a batch.
func toCommand(v lua.LValue) (domain.Command, error) {
	switch val := v.(type) {
	case *lua.LNilType:
		return domain.Command{}, nil
	case lua.LBool:
		if !bool(val) {
			return domain.Command{}, nil
		}
	case lua.LString:
		return domain.Cmd(string(val)), nil
	case *lua.LTable:
		n := val.Len()
		lines := make([]string, 0, n)
		for i := 1; i <= n; i++ {
			s, ok := val.RawGetInt(i).(lua.LString)
			if !ok {
				return domain.Command{}, fmt.Errorf("batch entry %d: expected string, got %s", i, val.RawGetInt(i).Type())
			}
			lines = append(lines, string(s))
		}
		return domain.Batch(lines...), nil
	}
	return domain.Command{}, fmt.Errorf("unsupported command value of type %s", v.Type())
}

func fromResult(L *lua.LState, res domain.Result) lua.LValue {
	switch {
	case res.IsZero():
		return lua.LNil
	case res.IsBatch():
		t := L.NewTable()
		for _, out := range res.Outputs() {
			t.Append(lua.LString(out))
		}
		return t
	default:
		return lua.LString(res.Output())
	}
}

// toValue converts a run argument.
func toValue(L *lua.LState, v any) lua.LValue {
	switch val := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(val)
	case bool:
		return lua.LBool(val)
	case int:
		return lua.LNumber(val)
	case int64:
		return lua.LNumber(val)
	case float64:
		return lua.LNumber(val)
	case []string:
		t := L.NewTable()
		for _, s := range val {
			t.Append(lua.LString(s))
		}
		return t
	case lua.LValue:
		return val
	default:
		return lua.LString(fmt.Sprint(val))
	}
}
