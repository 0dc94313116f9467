package lua_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/unshell/pkg/adapters/lua"
	"github.com/aretw0/unshell/pkg/domain"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, src string) any {
	t.Helper()
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "script.lua", []byte(src), 0o644))

	script, err := lua.NewResolver(lua.WithFs(fsys)).Resolve("script.lua")
	require.NoError(t, err)
	return script
}

// drive runs a procedure, answering every yield with reply.
func drive(t *testing.T, script any, reply func(domain.Command) domain.Result, args ...any) ([]domain.Command, domain.Command, error) {
	t.Helper()
	proc, ok := script.(domain.Procedure)
	require.True(t, ok, "expected a procedure, got %T", script)

	var yielded []domain.Command
	terminal, err := proc(func(cmd domain.Command) domain.Result {
		yielded = append(yielded, cmd)
		return reply(cmd)
	}, args...)
	return yielded, terminal, err
}

func echoReply(cmd domain.Command) domain.Result {
	if cmd.IsBatch() {
		return domain.NewBatchResult(cmd.Lines())
	}
	return domain.NewResult(cmd.Line())
}

func TestResolver_YieldAndReturn(t *testing.T) {
	script := resolve(t, `
script = function()
  coroutine.yield("echo hello")
  return "echo world"
end
`)

	yielded, terminal, err := drive(t, script, echoReply)
	require.NoError(t, err)
	require.Len(t, yielded, 1)
	assert.Equal(t, "echo hello", yielded[0].Line())
	assert.Equal(t, "echo world", terminal.Line())
}

func TestResolver_ResultsFeedBack(t *testing.T) {
	script := resolve(t, `
script = function()
  local first = yield("whoami")
  local second = yield("echo " .. first)
  return "echo done " .. second
end
`)

	yielded, terminal, err := drive(t, script, func(cmd domain.Command) domain.Result {
		if cmd.Line() == "whoami" {
			return domain.NewResult("root")
		}
		return domain.NewResult("ok")
	})
	require.NoError(t, err)
	require.Len(t, yielded, 2)
	assert.Equal(t, "echo root", yielded[1].Line())
	assert.Equal(t, "echo done ok", terminal.Line())
}

func TestResolver_Args(t *testing.T) {
	script := resolve(t, `
script = function(name, count)
  return "echo " .. name .. " " .. count
end
`)

	yielded, terminal, err := drive(t, script, echoReply, "alice", 3)
	require.NoError(t, err)
	assert.Empty(t, yielded)
	assert.Equal(t, "echo alice 3", terminal.Line())
}

func TestResolver_Batch(t *testing.T) {
	script := resolve(t, `
script = function()
  local outs = yield({"echo a", "echo b"})
  return outs[1] .. outs[2]
end
`)

	yielded, terminal, err := drive(t, script, echoReply)
	require.NoError(t, err)
	require.Len(t, yielded, 1)
	assert.True(t, yielded[0].IsBatch())
	assert.Equal(t, []string{"echo a", "echo b"}, yielded[0].Lines())
	assert.Equal(t, "echo aecho b", terminal.Line())
}

func TestResolver_NoTerminalCommand(t *testing.T) {
	script := resolve(t, `
script = function()
  yield("ls")
  yield()
end
`)

	yielded, terminal, err := drive(t, script, echoReply)
	require.NoError(t, err)
	require.Len(t, yielded, 2)
	assert.False(t, yielded[1].Valid())
	assert.False(t, terminal.Valid())
}

func TestResolver_Pipe(t *testing.T) {
	script := resolve(t, `
local u = require("unshell")
script = function()
  yield(unshell.pipe("ls -la", "grep go"))
  return u.pipe("echo a", "wc -l")
end
`)

	yielded, terminal, err := drive(t, script, echoReply)
	require.NoError(t, err)
	assert.Equal(t, "ls -la | grep go", yielded[0].Line())
	assert.Equal(t, "echo a | wc -l", terminal.Line())
}

func TestResolver_FreshStatePerRun(t *testing.T) {
	script := resolve(t, `
count = 0
script = function()
  count = count + 1
  return "echo " .. count
end
`)

	for range 2 {
		_, terminal, err := drive(t, script, echoReply)
		require.NoError(t, err)
		assert.Equal(t, "echo 1", terminal.Line())
	}
}

func TestResolver_TopLevelRunsOncePerRun(t *testing.T) {
	marks := filepath.Join(t.TempDir(), "marks")
	script := resolve(t, fmt.Sprintf(`
local f = io.open(%q, "a")
f:write("load\n")
f:close()
script = function()
  return "echo ok"
end
`, marks))

	count := func() int {
		data, err := os.ReadFile(marks)
		require.NoError(t, err)
		return strings.Count(string(data), "load")
	}
	assert.Equal(t, 1, count(), "resolving evaluates the chunk once")

	_, _, err := drive(t, script, echoReply)
	require.NoError(t, err)
	assert.Equal(t, 1, count(), "the first run reuses the resolved chunk")

	_, _, err = drive(t, script, echoReply)
	require.NoError(t, err)
	assert.Equal(t, 2, count(), "later runs evaluate a fresh chunk")
}

func TestResolver_Errors(t *testing.T) {
	t.Run("script error", func(t *testing.T) {
		script := resolve(t, `
script = function()
  error("boom")
end
`)
		_, _, err := drive(t, script, echoReply)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})

	t.Run("unsupported yield", func(t *testing.T) {
		script := resolve(t, `
script = function()
  yield(42)
end
`)
		_, _, err := drive(t, script, echoReply)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported command value")
	})

	t.Run("non string batch entry", func(t *testing.T) {
		script := resolve(t, `
script = function()
  yield({"ls", {}})
end
`)
		_, _, err := drive(t, script, echoReply)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "batch entry 2")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := lua.NewResolver(lua.WithFs(afero.NewMemMapFs())).Resolve("nope.lua")
		require.Error(t, err)
	})

	t.Run("syntax error", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, "bad.lua", []byte("script = function("), 0o644))
		_, err := lua.NewResolver(lua.WithFs(fsys)).Resolve("bad.lua")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse bad.lua")
	})
}

func TestResolver_NonFunctionPassesThrough(t *testing.T) {
	script := resolve(t, `script = "echo hi"`)

	_, ok := script.(domain.Procedure)
	assert.False(t, ok)
	assert.NotNil(t, script)
}
