package mcdgen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/aretw0/mcdgen/internal/config"
	"github.com/aretw0/mcdgen/internal/logging"
	"github.com/aretw0/mcdgen/internal/notify"
	"github.com/aretw0/mcdgen/internal/version"
	"github.com/aretw0/mcdgen/pkg/adapters/bridge"
	"github.com/aretw0/mcdgen/pkg/domain"
	"github.com/aretw0/mcdgen/pkg/params"
	"github.com/aretw0/mcdgen/pkg/ports"
	"github.com/aretw0/mcdgen/pkg/template"
)

// Session is the high-level entry point for the mcdgen library. It owns
// the resolved runtime install, the template/working documents, and the
// bound toolkit, and exposes the conversion and calculation workflows.
//
// A Session is single-threaded: the working document is overwritten in
// place on every specs conversion, so callers must not run workflows
// concurrently on one session.
type Session struct {
	logger   *slog.Logger
	notifier ports.Notifier
	toolkit  ports.Toolkit
	closer   io.Closer

	installRoot string
	assetsDir   string
	workingDir  string
	mcdName     string

	bridgeCommand string
	bridgeArgs    []string
	bridgeEnv     map[string]string

	install      *version.Install
	templatePath string
	workingPath  string
	initialized  bool
}

// Option defines a functional option for configuring the Session.
type Option func(*Session)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithNotifier sets the surface for user-facing notices.
func WithNotifier(n ports.Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithToolkit injects a vendor toolkit binding, bypassing install
// discovery and the default bridge launch. This is how tests substitute
// the engine.
func WithToolkit(t ports.Toolkit) Option {
	return func(s *Session) { s.toolkit = t }
}

// WithInstallRoot overrides the directory scanned for runtime installs.
func WithInstallRoot(root string) Option {
	return func(s *Session) { s.installRoot = root }
}

// WithAssetsDir sets the directory holding the stage template and the
// working document.
func WithAssetsDir(dir string) Option {
	return func(s *Session) { s.assetsDir = dir }
}

// WithWorkingDir sets the directory receiving generated MCD files.
func WithWorkingDir(dir string) Option {
	return func(s *Session) { s.workingDir = dir }
}

// WithMCDName overrides the stage type in output file names.
func WithMCDName(name string) Option {
	return func(s *Session) { s.mcdName = name }
}

// WithBridgeCommand sets the bridge host launch command.
func WithBridgeCommand(command string, args ...string) Option {
	return func(s *Session) {
		s.bridgeCommand = command
		s.bridgeArgs = args
	}
}

// WithBridgeEnv sets extra environment for the bridge host.
func WithBridgeEnv(env map[string]string) Option {
	return func(s *Session) { s.bridgeEnv = env }
}

// New constructs a Session. It resolves the assets directory (which must
// exist) and, unless a toolkit was injected, discovers the newest runtime
// install. A missing install is not fatal here: the user is warned and the
// session stays degraded until Initialize, which will then fail.
func New(opts ...Option) (*Session, error) {
	defaults := config.Default()
	s := &Session{
		installRoot:   defaults.InstallRoot,
		assetsDir:     defaults.AssetsDir,
		workingDir:    defaults.WorkingDir,
		bridgeCommand: defaults.Bridge.Command,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.New(slog.LevelInfo)
	}
	if s.notifier == nil {
		s.notifier = notify.NewConsole()
	}

	if _, err := os.Stat(s.assetsDir); err != nil {
		return nil, fmt.Errorf("assets directory not found: %w", err)
	}
	s.templatePath = filepath.Join(s.assetsDir, domain.TemplateFileName)
	s.workingPath = filepath.Join(s.assetsDir, domain.WorkingFileName)

	if s.toolkit == nil {
		install, err := version.Discover(s.installRoot)
		switch {
		case errors.Is(err, domain.ErrInstallNotFound):
			s.notifier.Warn("Controller Runtime Not Found",
				"This tool works with controller software 2.11 or newer.\n"+
					"No runtime install was found under "+s.installRoot+".")
		case err != nil:
			return nil, err
		default:
			s.install = install
			s.logger.Debug("runtime install selected", "version", install.Version, "binDir", install.BinDir)
		}
	}
	return s, nil
}

// Initialize binds the vendor toolkit. It must be called before any
// conversion or calculation and is idempotent: repeat calls after success
// are no-ops. On failure the session stays uninitialized.
func (s *Session) Initialize(ctx context.Context) error {
	if s.initialized {
		s.logger.Debug("session already initialized")
		return nil
	}

	if s.toolkit == nil {
		if s.install == nil {
			return fmt.Errorf("initialize controller session: %w", domain.ErrInstallNotFound)
		}
		args := s.bridgeArgs
		if len(args) == 0 {
			// The bridge host assembly ships in the assets directory.
			args = []string{filepath.Join(s.assetsDir, "bridge", "McdBridgeHost.dll")}
		}
		toolkit, err := bridge.Launch(ctx, bridge.Command{
			Path:   s.bridgeCommand,
			Args:   args,
			Env:    s.bridgeEnv,
			BinDir: s.install.BinDir,
		}, bridge.WithLogger(s.logger))
		if err != nil {
			return fmt.Errorf("initialize controller session: %w", err)
		}
		s.toolkit = toolkit
		s.closer = toolkit
	}

	s.initialized = true
	return nil
}

// Close releases the toolkit binding. Idempotent.
func (s *Session) Close() error {
	s.initialized = false
	if s.closer == nil {
		return nil
	}
	closer := s.closer
	s.closer = nil
	s.toolkit = nil
	return closer.Close()
}

func (s *Session) checkInitialized() error {
	if !s.initialized {
		return domain.ErrNotInitialized
	}
	return nil
}

// ConvertToMCD builds an uncalculated configuration object from a stage
// spec. With Options set, the bundled template is patched and written to
// the working document; otherwise a prepared "<StageType>.json" is read
// from the working directory. The result is written to
// "Uncalculated_<name>.mcd" and returned with its path and the vendor's
// conversion warnings.
func (s *Session) ConvertToMCD(ctx context.Context, spec domain.StageSpec) (ports.Definition, string, domain.Warnings, error) {
	if err := s.checkInitialized(); err != nil {
		return nil, "", nil, err
	}

	var data []byte
	if len(spec.Options) > 0 {
		doc, err := template.Load(s.templatePath)
		if err != nil {
			return nil, "", nil, err
		}
		if err := doc.Patch(spec); err != nil {
			return nil, "", nil, err
		}
		if err := doc.WriteTo(s.workingPath); err != nil {
			return nil, "", nil, err
		}
		s.logger.Info("working document updated", "path", s.workingPath)
		if data, err = os.ReadFile(s.workingPath); err != nil {
			return nil, "", nil, fmt.Errorf("read working document: %w", err)
		}
	} else {
		prepared := filepath.Join(s.workingDir, spec.StageType+".json")
		var err error
		if data, err = os.ReadFile(prepared); err != nil {
			return nil, "", nil, fmt.Errorf("read prepared document: %w", err)
		}
	}

	parsed, err := s.toolkit.Parse(ctx, data)
	if err != nil {
		return nil, "", nil, err
	}
	def, warnings, err := s.toolkit.ConvertToMCD(ctx, parsed)
	if err != nil {
		return nil, "", nil, err
	}
	s.logWarnings("conversion", warnings)

	path := filepath.Join(s.workingDir, domain.UncalculatedPrefix+s.outputName(spec.StageType)+domain.McdExt)
	if err := def.WriteTo(path); err != nil {
		return nil, "", nil, fmt.Errorf("write configuration: %w", err)
	}
	return def, path, warnings, nil
}

// ConvertToJSON reads an existing MCD file, validates its software
// version, and writes its JSON rendering verbatim to outPath.
func (s *Session) ConvertToJSON(ctx context.Context, mcdPath, outPath string) (domain.Warnings, error) {
	if err := s.checkInitialized(); err != nil {
		return nil, err
	}
	def, err := s.readDefinition(ctx, mcdPath)
	if err != nil {
		return nil, err
	}
	data, warnings, err := s.toolkit.ConvertToJSON(ctx, def)
	if err != nil {
		return nil, err
	}
	s.logWarnings("conversion", warnings)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return nil, fmt.Errorf("write JSON output: %w", err)
	}
	return warnings, nil
}

// Calculate converts a stage spec and runs the vendor's parameter
// calculation on the result, writing "Calculated_<name>.mcd". Warnings
// list conversion first, then calculation.
func (s *Session) Calculate(ctx context.Context, spec domain.StageSpec) (ports.Definition, domain.Warnings, string, error) {
	if err := s.checkInitialized(); err != nil {
		return nil, nil, "", err
	}

	def, _, conversionWarnings, err := s.ConvertToMCD(ctx, spec)
	if err != nil {
		return nil, nil, "", err
	}

	calculated, calculationWarnings, err := s.toolkit.Calculate(ctx, def)
	if err != nil {
		return nil, nil, "", err
	}
	s.logWarnings("calculation", calculationWarnings)

	path := filepath.Join(s.workingDir, domain.CalculatedPrefix+s.outputName(spec.StageType)+domain.McdExt)
	if err := calculated.WriteTo(path); err != nil {
		return nil, nil, "", fmt.Errorf("write calculated configuration: %w", err)
	}
	return calculated, conversionWarnings.Merge(calculationWarnings), path, nil
}

// Recalculate runs the vendor's parameter calculation on an existing MCD
// file and writes "Recalculated.mcd". Only calculation warnings are
// returned; there is no conversion stage.
func (s *Session) Recalculate(ctx context.Context, mcdPath string) (ports.Definition, string, domain.Warnings, error) {
	if err := s.checkInitialized(); err != nil {
		return nil, "", nil, err
	}
	def, err := s.readDefinition(ctx, mcdPath)
	if err != nil {
		return nil, "", nil, err
	}

	calculated, warnings, err := s.toolkit.Calculate(ctx, def)
	if err != nil {
		return nil, "", nil, err
	}
	s.logWarnings("calculation", warnings)

	path := filepath.Join(s.workingDir, domain.RecalculatedFileName)
	if err := calculated.WriteTo(path); err != nil {
		return nil, "", nil, fmt.Errorf("write recalculated configuration: %w", err)
	}
	return calculated, path, warnings, nil
}

// ReadDefinition loads and validates an existing MCD file without
// converting or calculating anything.
func (s *Session) ReadDefinition(ctx context.Context, mcdPath string) (ports.Definition, error) {
	if err := s.checkInitialized(); err != nil {
		return nil, err
	}
	return s.readDefinition(ctx, mcdPath)
}

// readDefinition loads an MCD file and gates on its embedded software
// version: releases older than 2.11, and versions that do not parse, are
// rejected after a user-facing notice.
func (s *Session) readDefinition(ctx context.Context, mcdPath string) (ports.Definition, error) {
	if _, err := os.Stat(mcdPath); err != nil {
		return nil, fmt.Errorf("configuration file not found at %s: %w", mcdPath, err)
	}
	def, err := s.toolkit.ReadDefinition(ctx, mcdPath)
	if err != nil {
		return nil, err
	}

	v := def.SoftwareVersion()
	if !version.IsSupported(v) {
		s.notifier.Warn("Unsupported Controller Version",
			"This tool supports controller software 2.11 or newer.\n"+
				"Detected version: "+v)
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedVersion, v)
	}
	return def, nil
}

// InspectParameters scrapes the servo-loop and feedforward parameter
// families out of a calculated configuration object. Decode and parse
// failures are reported and degrade to a nil result; they are never
// returned as errors.
func (s *Session) InspectParameters(def ports.Definition) (servo, feedforward domain.AxisParameters, err error) {
	files, err := def.ConfigurationFiles()
	if err != nil {
		return nil, nil, fmt.Errorf("inspect configuration files: %w", err)
	}

	content, ok := files[domain.ParametersFileKey]
	if !ok || len(content) == 0 {
		s.logger.Warn("parameters entry not found in configuration files")
		return nil, nil, nil
	}
	if !utf8.Valid(content) {
		s.notifier.Warn("Parameter Extraction",
			"Could not decode the Parameters content as UTF-8 text.")
		return nil, nil, nil
	}

	text := string(content)
	servo, err = params.ExtractServoLoop(text)
	if err != nil {
		s.notifier.Warn("Parameter Extraction", "Could not parse the parameter document: "+err.Error())
		return nil, nil, nil
	}
	feedforward, err = params.ExtractFeedforward(text)
	if err != nil {
		s.notifier.Warn("Parameter Extraction", "Could not parse the parameter document: "+err.Error())
		return nil, nil, nil
	}
	return servo, feedforward, nil
}

// outputName picks the identifier used in output file names: the session
// override when set, else the stage type.
func (s *Session) outputName(stageType string) string {
	if s.mcdName != "" {
		return s.mcdName
	}
	return stageType
}

// logWarnings surfaces a vendor warning list without ever failing on it.
func (s *Session) logWarnings(stage string, warnings domain.Warnings) {
	for _, w := range warnings {
		s.logger.Warn("vendor warning", "stage", stage, "warning", w)
	}
}
