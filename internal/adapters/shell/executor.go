// Package shell runs module build commands.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/tangle/internal/core/domain"
	"go.trai.ch/tangle/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Builder by running the merged build command of a
// configuration inside the module checkout.
type Executor struct {
	settings ports.BuildSettingsSource
	root     string
	logger   ports.Logger
}

// NewExecutor creates an Executor for the workspace at root.
func NewExecutor(settings ports.BuildSettingsSource, root string, logger ports.Logger) *Executor {
	return &Executor{
		settings: settings,
		root:     root,
		logger:   logger,
	}
}

// Build runs the build command of ref. Output goes to the vertex carried by ctx,
// or to the logger when there is none.
//
// The environment is merged with the following priority (low to high):
// 1. os.Environ()
// 2. TANGLE_WORKSPACE, TANGLE_MODULE and TANGLE_CONFIGURATION
// 3. the configuration's build env.
func (e *Executor) Build(ctx context.Context, ref domain.Dep) error {
	settings, err := e.settings.BuildSettings(ref.Name, ref.Configuration)
	if err != nil {
		return err
	}
	if len(settings.Cmd) == 0 {
		e.logger.Debug("nothing to build", "module", ref.String())
		return nil
	}

	name := settings.Cmd[0]
	args := settings.Cmd[1:]

	cmdEnv := resolveEnvironment(os.Environ(), map[string]string{
		"TANGLE_WORKSPACE":     e.root,
		"TANGLE_MODULE":        ref.Name,
		"TANGLE_CONFIGURATION": ref.Configuration,
	}, settings.Environment)

	executable := name
	if !filepath.IsAbs(name) && !strings.Contains(name, string(filepath.Separator)) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // command comes from module.yaml
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Dir = filepath.Join(e.root, ref.Name)
	cmd.Env = cmdEnv

	var stdout, stderr io.Writer
	if vertex, ok := ports.VertexFromContext(ctx); ok {
		stdout, stderr = vertex.Stdout(), vertex.Stderr()
	} else {
		out := &lineWriter{emit: func(line string) { e.logger.Info(line, "module", ref.String()) }}
		errOut := &lineWriter{emit: func(line string) { e.logger.Warn(line, "module", ref.String()) }}
		defer out.Flush()
		defer errOut.Flush()
		stdout, stderr = out, errOut
	}
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		cmdErr := zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
		return zerr.With(cmdErr, "command", strings.Join(settings.Cmd, " "))
	}
	return nil
}

// lineWriter hands complete lines to emit and buffers partial ones.
type lineWriter struct {
	emit func(string)

	mu  sync.Mutex
	buf bytes.Buffer
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		line, err := w.buf.ReadString('\n')
		if err != nil {
			// Put the partial line back until its newline arrives.
			w.buf.Reset()
			w.buf.WriteString(line)
			break
		}
		w.emit(strings.TrimSuffix(line, "\n"))
	}
	return len(p), nil
}

// Flush emits any trailing partial line.
func (w *lineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.buf.Len() > 0 {
		w.emit(w.buf.String())
		w.buf.Reset()
	}
}

// resolveEnvironment merges environment layers, later layers overriding earlier ones.
// The result is sorted by key.
func resolveEnvironment(sysEnv []string, layers ...map[string]string) []string {
	envMap := make(map[string]string, len(sysEnv))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for _, layer := range layers {
		for k, v := range layer {
			envMap[k] = v
		}
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
