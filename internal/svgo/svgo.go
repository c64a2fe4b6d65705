// Package svgo runs the external svgo optimizer over SVG sources.
//
// The optimizer is an external collaborator: svgkit shells out to the
// svgo executable (directly, or through npx when svgo is not on PATH)
// and pipes markup through stdin/stdout. A project-level svgo config
// file, when present, is merged in by svgo itself via --config.
package svgo

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/vango-dev/svgkit/internal/errors"
)

// Runner executes the svgo binary.
type Runner struct {
	// Binary overrides the svgo executable path. When empty, "svgo"
	// from PATH is used, falling back to "npx svgo".
	Binary string

	// ConfigPath is the project-level svgo config file, or "".
	ConfigPath string
}

// NewRunner creates a Runner with an optional binary override and
// project config path.
func NewRunner(binary, configPath string) *Runner {
	return &Runner{Binary: binary, ConfigPath: configPath}
}

// command picks the executable and base arguments.
func (r *Runner) command() (string, []string) {
	if r.Binary != "" {
		return r.Binary, nil
	}
	if path, err := exec.LookPath("svgo"); err == nil {
		return path, nil
	}
	return "npx", []string{"svgo"}
}

// args builds the full argument list for one invocation.
func (r *Runner) args(base []string) []string {
	args := append(base, "--input", "-", "--output", "-")
	if r.ConfigPath != "" {
		args = append(args, "--config", r.ConfigPath)
	}
	return args
}

// Optimize pipes content through svgo and returns the optimized markup.
// Failures are fatal for the importing module; stderr is surfaced in the
// error detail.
func (r *Runner) Optimize(ctx context.Context, content []byte, path string) (string, error) {
	exe, base := r.command()

	cmd := exec.CommandContext(ctx, exe, r.args(base)...)
	cmd.Stdin = bytes.NewReader(content)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.New("E222").
			WithDetail(strings.TrimSpace(path + ": " + stderr.String())).
			WithSuggestion("Check the SVG markup, or disable optimization in svgkit.json").
			Wrap(err)
	}

	return stdout.String(), nil
}

// Passthrough returns markup unchanged. Used when optimization is
// disabled and in tests.
type Passthrough struct{}

// Optimize implements the optimizer contract without touching the markup.
func (Passthrough) Optimize(_ context.Context, content []byte, _ string) (string, error) {
	return string(content), nil
}
