package cli

import (
	"os"

	"orzo/internal/replay"
	"orzo/pkg/vm"
)

// buildConfig translates RootOptions into a vm.Config. A custom
// --reserved-name-pattern goes through vm.NewConfig so a malformed pattern
// surfaces as a *vm.ConfigError instead of panicking; with no override it
// falls back to vm.DefaultConfig()'s built-in dunder guard.
func buildConfig(opts *RootOptions) (*vm.Config, error) {
	var cfg *vm.Config
	if opts.ReservedNamePattern != "" {
		var err error
		cfg, err = vm.NewConfig(opts.MinCap, opts.ReservedNamePattern)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = vm.DefaultConfig()
		if opts.MinCap != 0 {
			cfg.MinCap = opts.MinCap
		}
	}
	cfg.ShapeNoTagSpec = opts.ShapeNoTagSpec
	cfg.ShapeNoFptrSpec = opts.ShapeNoFptrSpec
	vm.SetDebug(opts.TraceAccess, opts.TraceShape)
	return cfg, nil
}

// runScript parses and applies scriptPath against a fresh session, per
// RootOptions. An error from Run is wrapped with ExitFailure and returned
// together with the session; earlier failures return a nil session and
// ExitCommandError.
func runScript(opts *RootOptions, scriptPath string) (*replay.Session, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "building config", err)
	}

	f, err := os.Open(scriptPath)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening script", err)
	}
	defer f.Close()

	ops, err := replay.Parse(f)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "parsing script", err)
	}

	session := replay.NewSession(cfg)
	if err := session.Run(ops); err != nil {
		return session, WrapExitError(ExitFailure, "running script", err)
	}
	return session, nil
}
