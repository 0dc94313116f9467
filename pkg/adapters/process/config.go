package process

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anmitsu/go-shlex"
)

// ShellConfig describes how command lines are spawned.
type ShellConfig struct {
	// Shell is the interpreter and its leading flags, e.g. "bash -o pipefail -c".
	Shell string `yaml:"shell" json:"shell"`
	Dir   string `yaml:"dir" json:"dir"`
	// Env holds extra variables appended to the inherited environment.
	Env map[string]string `yaml:"env" json:"env"`
}

// ParseShell splits a shell specification with POSIX quoting rules.
func ParseShell(spec string) (path string, args []string, err error) {
	words, err := shlex.Split(spec, true)
	if err != nil {
		return "", nil, fmt.Errorf("invalid shell %q: %w", spec, err)
	}
	if len(words) == 0 {
		return "", nil, fmt.Errorf("invalid shell %q: empty", spec)
	}
	return words[0], words[1:], nil
}

// NewShell builds an ExecShell from cfg. An empty Shell means /bin/sh -c.
func NewShell(cfg ShellConfig) (*ExecShell, error) {
	shell := DefaultShell()
	if strings.TrimSpace(cfg.Shell) != "" {
		path, args, err := ParseShell(cfg.Shell)
		if err != nil {
			return nil, err
		}
		shell.Path = path
		shell.Args = args
	}
	shell.Dir = cfg.Dir

	keys := make([]string, 0, len(cfg.Env))
	for k := range cfg.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		shell.Env = append(shell.Env, k+"="+cfg.Env[k])
	}
	return shell, nil
}
