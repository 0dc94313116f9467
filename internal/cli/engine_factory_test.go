package cli

import (
	"errors"
	"testing"

	"github.com/aretw0/unshell/pkg/domain"
	"github.com/aretw0/unshell/pkg/ports"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resolverFunc func(path string) (any, error)

func (f resolverFunc) Resolve(path string) (any, error) { return f(path) }

func TestResolveScript(t *testing.T) {
	proc := domain.Procedure(func(domain.Yield, ...any) (domain.Command, error) {
		return domain.Command{}, nil
	})
	resolvers := map[string]ports.ScriptResolver{
		".lua": resolverFunc(func(string) (any, error) { return proc, nil }),
		".so":  resolverFunc(func(string) (any, error) { return nil, errors.New("not a plugin") }),
	}

	t.Run("dispatches by extension", func(t *testing.T) {
		script, err := resolveScript(resolvers, "scripts/deploy.LUA")
		require.NoError(t, err)
		assert.NotNil(t, script)
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := resolveScript(resolvers, " ")
		assert.ErrorIs(t, err, ErrInvalidScriptPath)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := resolveScript(resolvers, "script.py")
		assert.ErrorIs(t, err, ErrInvalidScriptPath)
		assert.Contains(t, err.Error(), `".py"`)
	})

	t.Run("resolver error", func(t *testing.T) {
		_, err := resolveScript(resolvers, "script.so")
		assert.ErrorIs(t, err, ErrInvalidScriptPath)
		assert.Contains(t, err.Error(), "not a plugin")
	})
}

func TestNewResolvers_Lua(t *testing.T) {
	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "hello.lua", []byte(`script = function() return "echo hi" end`), 0o644))

	script, err := resolveScript(newResolvers(fsys, nil), "hello.lua")
	require.NoError(t, err)
	assert.IsType(t, domain.Procedure(nil), script)
}
