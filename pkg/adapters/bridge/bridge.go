// Package bridge implements ports.Toolkit against the vendor SDK.
//
// The SDK lives in a managed runtime, so the binding is out of process: a
// small bridge host is launched with the vendor's runtime libraries on its
// search path, and the two sides speak newline-delimited JSON over the
// host's stdin/stdout. Configuration objects stay host-side and are
// referenced by handle strings.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/aretw0/mcdgen/pkg/domain"
	"github.com/aretw0/mcdgen/pkg/ports"
)

// Command describes how to launch the bridge host.
type Command struct {
	// Path is the host executable (typically "dotnet").
	Path string
	// Args are passed to the executable (typically the host assembly).
	Args []string
	// Env is extra environment for the host.
	Env map[string]string
	// BinDir is the vendor runtime library directory; it is prepended to
	// PATH so the host resolves the vendor assemblies from the selected
	// install.
	BinDir string
}

// Toolkit drives the vendor configuration engine through the bridge host.
type Toolkit struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	conn   *conn
	logger *slog.Logger
	closed bool
}

// Option configures the Toolkit.
type Option func(*Toolkit)

// WithLogger sets a structured logger for host diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Toolkit) {
		t.logger = logger
	}
}

// Launch starts the bridge host and verifies its operation surface.
// Any required operation the host does not expose fails the bind with
// domain.ErrOperationUnresolved; nothing partially initialized is returned.
func Launch(ctx context.Context, cfg Command, opts ...Option) (*Toolkit, error) {
	t := &Toolkit{logger: slog.Default()}
	for _, opt := range opts {
		opt(t)
	}

	cmd := exec.CommandContext(ctx, cfg.Path, cfg.Args...)
	env := cmd.Environ()
	if cfg.BinDir != "" {
		env = append(env, "PATH="+cfg.BinDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
	for k, v := range cfg.Env {
		env = append(env, k+"="+v)
	}
	cmd.Env = env
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("open host stdin: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("open host stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("launch bridge host: %w", err)
	}

	t.cmd = cmd
	t.stdin = stdin
	t.conn = newConn(stdin, stdout)

	if err := t.bind(ctx); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, err
	}
	t.logger.Debug("bridge host bound", "command", cfg.Path, "binDir", cfg.BinDir)
	return t, nil
}

// bind performs the handshake and checks that every required operation is
// resolvable on the host side.
func (t *Toolkit) bind(ctx context.Context) error {
	resp, err := t.conn.roundTrip(ctx, opHello, nil)
	if err != nil {
		return fmt.Errorf("bridge handshake: %w", err)
	}
	var hello struct {
		Operations []string `json:"operations"`
	}
	if err := json.Unmarshal(resp.Result, &hello); err != nil {
		return fmt.Errorf("bridge handshake: %w", err)
	}

	exposed := make(map[string]bool, len(hello.Operations))
	for _, op := range hello.Operations {
		exposed[op] = true
	}
	var missing []string
	for _, op := range requiredOps {
		if !exposed[op] {
			missing = append(missing, op)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrOperationUnresolved, strings.Join(missing, ", "))
	}
	return nil
}

// Close shuts the host down. Idempotent.
func (t *Toolkit) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	// Best effort: ask the host to exit, then reap it.
	_, _ = t.conn.roundTrip(context.Background(), opShutdown, nil)
	_ = t.stdin.Close()
	return t.cmd.Wait()
}

// Parse implements ports.Toolkit.
func (t *Toolkit) Parse(ctx context.Context, document []byte) (ports.Document, error) {
	resp, err := t.conn.roundTrip(ctx, opParse, map[string]any{"document": string(document)})
	if err != nil {
		return nil, err
	}
	h, err := decodeHandle(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opParse, err)
	}
	return h.Handle, nil
}

// ConvertToMCD implements ports.Toolkit.
func (t *Toolkit) ConvertToMCD(ctx context.Context, doc ports.Document) (ports.Definition, domain.Warnings, error) {
	handle, ok := doc.(string)
	if !ok {
		return nil, nil, fmt.Errorf("document was not produced by this toolkit")
	}
	resp, err := t.conn.roundTrip(ctx, opConvertToMcd, map[string]any{"document": handle})
	if err != nil {
		return nil, nil, err
	}
	def, err := t.decodeDefinition(resp.Result)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opConvertToMcd, err)
	}
	return def, resp.Warnings, nil
}

// ConvertToJSON implements ports.Toolkit.
func (t *Toolkit) ConvertToJSON(ctx context.Context, def ports.Definition) ([]byte, domain.Warnings, error) {
	d, ok := def.(*Definition)
	if !ok {
		return nil, nil, fmt.Errorf("definition was not produced by this toolkit")
	}
	resp, err := t.conn.roundTrip(ctx, opConvertToJSON, map[string]any{"definition": d.handle})
	if err != nil {
		return nil, nil, err
	}
	var result struct {
		JSON string `json:"json"`
	}
	if err := json.Unmarshal(resp.Result, &result); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opConvertToJSON, err)
	}
	return []byte(result.JSON), resp.Warnings, nil
}

// Calculate implements ports.Toolkit.
func (t *Toolkit) Calculate(ctx context.Context, def ports.Definition) (ports.Definition, domain.Warnings, error) {
	d, ok := def.(*Definition)
	if !ok {
		return nil, nil, fmt.Errorf("definition was not produced by this toolkit")
	}
	resp, err := t.conn.roundTrip(ctx, opCalculate, map[string]any{"definition": d.handle})
	if err != nil {
		return nil, nil, err
	}
	calc, err := t.decodeDefinition(resp.Result)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", opCalculate, err)
	}
	return calc, resp.Warnings, nil
}

// ReadDefinition implements ports.Toolkit.
func (t *Toolkit) ReadDefinition(ctx context.Context, path string) (ports.Definition, error) {
	resp, err := t.conn.roundTrip(ctx, opReadFromFile, map[string]any{"path": path})
	if err != nil {
		return nil, err
	}
	def, err := t.decodeDefinition(resp.Result)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opReadFromFile, err)
	}
	return def, nil
}

type handleResult struct {
	Handle          string `json:"handle"`
	SoftwareVersion string `json:"softwareVersion"`
}

func decodeHandle(raw json.RawMessage) (handleResult, error) {
	var h handleResult
	if err := json.Unmarshal(raw, &h); err != nil {
		return handleResult{}, err
	}
	if h.Handle == "" {
		return handleResult{}, fmt.Errorf("host returned no handle")
	}
	return h, nil
}

func (t *Toolkit) decodeDefinition(raw json.RawMessage) (*Definition, error) {
	h, err := decodeHandle(raw)
	if err != nil {
		return nil, err
	}
	return &Definition{toolkit: t, handle: h.Handle, version: h.SoftwareVersion}, nil
}
