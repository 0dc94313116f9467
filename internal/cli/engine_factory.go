package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/unshell/internal/config"
	"github.com/aretw0/unshell/internal/runtime"
	"github.com/aretw0/unshell/pkg/adapters/lua"
	"github.com/aretw0/unshell/pkg/adapters/plugin"
	"github.com/aretw0/unshell/pkg/adapters/process"
	"github.com/aretw0/unshell/pkg/domain"
	"github.com/aretw0/unshell/pkg/ports"
	"github.com/spf13/afero"
)

// MsgInvalidScriptPath is printed when a script cannot be loaded.
const MsgInvalidScriptPath = "Invalid SCRIPT_PATH"

// ErrInvalidScriptPath wraps every failure to load a script file.
var ErrInvalidScriptPath = errors.New("invalid script path")

// newResolvers maps a file extension to the resolver that loads it.
func newResolvers(fsys afero.Fs, logger *slog.Logger) map[string]ports.ScriptResolver {
	return map[string]ports.ScriptResolver{
		".lua": lua.NewResolver(lua.WithFs(fsys), lua.WithLogger(logger)),
		".so":  plugin.NewResolver(),
	}
}

// resolveScript picks a resolver by extension and loads path.
func resolveScript(resolvers map[string]ports.ScriptResolver, path string) (any, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidScriptPath)
	}
	ext := strings.ToLower(filepath.Ext(path))
	r, ok := resolvers[ext]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrInvalidScriptPath, ext)
	}
	script, err := r.Resolve(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScriptPath, err)
	}
	return script, nil
}

// newEngine wires the shell described by cfg to a driver.
func newEngine(cfg *config.Config, notifier ports.Notifier, logger *slog.Logger, hooks domain.LifecycleHooks) (*runtime.Engine, error) {
	shell, err := process.NewShell(cfg.ShellConfig())
	if err != nil {
		return nil, err
	}
	runner := process.NewRunner(
		process.WithShell(shell),
		process.WithNotifier(notifier),
		process.WithLogger(logger),
	)
	return runtime.NewEngine(runner,
		runtime.WithLogger(logger),
		runtime.WithLifecycleHooks(hooks),
	), nil
}
