package mcdgen_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/mcdgen"
	"github.com/aretw0/mcdgen/internal/logging"
	"github.com/aretw0/mcdgen/pkg/adapters/memory"
	"github.com/aretw0/mcdgen/pkg/domain"
)

const testTemplate = `{
  "MechanicalProducts": [
    {"Name": "Generic", "DisplayName": "Generic", "ConfiguredOptions": {"Travel": "100mm"}}
  ],
  "InterconnectedAxes": [
    {"Name": "Axis1", "MechanicalAxis": {"DisplayName": "Generic"}}
  ]
}`

// recordingNotifier captures notices for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (n *recordingNotifier) Warn(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.titles = append(n.titles, title)
}

func (n *recordingNotifier) Titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.titles...)
}

type fixture struct {
	sess     *mcdgen.Session
	toolkit  *memory.Toolkit
	notifier *recordingNotifier
	assets   string
	working  string
}

func newFixture(t *testing.T, opts ...mcdgen.Option) *fixture {
	t.Helper()
	assets := t.TempDir()
	working := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(assets, domain.TemplateFileName), []byte(testTemplate), 0o644))

	toolkit := memory.New()
	notifier := &recordingNotifier{}
	all := append([]mcdgen.Option{
		mcdgen.WithToolkit(toolkit),
		mcdgen.WithNotifier(notifier),
		mcdgen.WithLogger(logging.NewNop()),
		mcdgen.WithAssetsDir(assets),
		mcdgen.WithWorkingDir(working),
	}, opts...)

	sess, err := mcdgen.New(all...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })
	return &fixture{sess: sess, toolkit: toolkit, notifier: notifier, assets: assets, working: working}
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestNew_MissingAssetsDir(t *testing.T) {
	_, err := mcdgen.New(
		mcdgen.WithToolkit(memory.New()),
		mcdgen.WithLogger(logging.NewNop()),
		mcdgen.WithAssetsDir(filepath.Join(t.TempDir(), "nope")),
	)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNew_NoInstallWarnsButSucceeds(t *testing.T) {
	assets := t.TempDir()
	notifier := &recordingNotifier{}
	sess, err := mcdgen.New(
		mcdgen.WithAssetsDir(assets),
		mcdgen.WithLogger(logging.NewNop()),
		mcdgen.WithNotifier(notifier),
		mcdgen.WithInstallRoot(filepath.Join(t.TempDir(), "empty")),
	)
	require.NoError(t, err)
	assert.Contains(t, notifier.Titles(), "Controller Runtime Not Found")

	// Degraded session: initialization must fail loudly.
	err = sess.Initialize(context.Background())
	assert.ErrorIs(t, err, domain.ErrInstallNotFound)
}

func TestCallsBeforeInitialize(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	spec := domain.StageSpec{StageType: "XY-500", Options: map[string]any{"Travel": "500mm"}}

	_, _, _, err := fx.sess.ConvertToMCD(ctx, spec)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	_, _, _, err = fx.sess.Calculate(ctx, spec)
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	_, err = fx.sess.ConvertToJSON(ctx, "in.mcd", "out.json")
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	_, _, _, err = fx.sess.Recalculate(ctx, "in.mcd")
	assert.ErrorIs(t, err, domain.ErrNotInitialized)

	// No filesystem writes and no vendor calls happened.
	assert.Empty(t, dirEntries(t, fx.working))
	assert.Equal(t, []string{domain.TemplateFileName}, dirEntries(t, fx.assets))
	assert.Zero(t, fx.toolkit.Calls("parse"))
	assert.Zero(t, fx.toolkit.Calls("calculate"))
}

func TestInitialize_Idempotent(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))
	require.NoError(t, fx.sess.Initialize(ctx))
}

func TestConvertToMCD_FromSpecs(t *testing.T) {
	fx := newFixture(t)
	fx.toolkit.ConvertWarnings = domain.Warnings{"option Travel coerced"}
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))

	def, path, warnings, err := fx.sess.ConvertToMCD(ctx, domain.StageSpec{
		StageType: "XY-500",
		Axis:      "X",
		Options:   map[string]any{"Travel": "500mm"},
	})
	require.NoError(t, err)
	assert.NotNil(t, def)
	assert.Equal(t, domain.Warnings{"option Travel coerced"}, warnings)

	assert.Equal(t, filepath.Join(fx.working, "Uncalculated_XY-500.mcd"), path)
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(fx.assets, domain.WorkingFileName))

	working, err := os.ReadFile(filepath.Join(fx.assets, domain.WorkingFileName))
	require.NoError(t, err)
	assert.Contains(t, string(working), `"500mm"`)
	assert.Contains(t, string(working), `"XY-500"`)
}

func TestConvertToMCD_PreparedDocument(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))

	require.NoError(t, os.WriteFile(filepath.Join(fx.working, "XY-500.json"), []byte(testTemplate), 0o644))

	_, path, _, err := fx.sess.ConvertToMCD(ctx, domain.StageSpec{StageType: "XY-500"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.working, "Uncalculated_XY-500.mcd"), path)

	// No options: the working document is untouched.
	assert.NoFileExists(t, filepath.Join(fx.assets, domain.WorkingFileName))
}

func TestConvertToMCD_PreparedDocumentMissing(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))

	_, _, _, err := fx.sess.ConvertToMCD(ctx, domain.StageSpec{StageType: "Ghost"})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvertToMCD_NameOverride(t *testing.T) {
	fx := newFixture(t, mcdgen.WithMCDName("BenchRig"))
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))

	_, path, _, err := fx.sess.ConvertToMCD(ctx, domain.StageSpec{
		StageType: "XY-500",
		Options:   map[string]any{"Travel": "500mm"},
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.working, "Uncalculated_BenchRig.mcd"), path)
}

func TestCalculate_CombinesWarningsInOrder(t *testing.T) {
	fx := newFixture(t)
	fx.toolkit.ConvertWarnings = domain.Warnings{"conv-1", "conv-2"}
	fx.toolkit.CalculateWarnings = domain.Warnings{"calc-1"}
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))

	def, warnings, path, err := fx.sess.Calculate(ctx, domain.StageSpec{
		StageType: "XY-500",
		Options:   map[string]any{"Travel": "500mm"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Warnings{"conv-1", "conv-2", "calc-1"}, warnings)
	assert.Equal(t, filepath.Join(fx.working, "Calculated_XY-500.mcd"), path)
	assert.FileExists(t, path)

	calculated, ok := def.(*memory.Definition)
	require.True(t, ok)
	assert.True(t, calculated.Calculated())
}

func TestConvertToJSON(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))

	in := filepath.Join(fx.working, "existing.mcd")
	require.NoError(t, os.WriteFile(in, []byte("mcd"), 0o644))
	out := filepath.Join(fx.working, "existing.json")

	warnings, err := fx.sess.ConvertToJSON(ctx, in, out)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.FileExists(t, out)
}

func TestConvertToJSON_MissingInput(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))

	_, err := fx.sess.ConvertToJSON(ctx, filepath.Join(fx.working, "ghost.mcd"), "out.json")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Zero(t, fx.toolkit.Calls("readFromFile"))
}

func TestRecalculate(t *testing.T) {
	fx := newFixture(t)
	fx.toolkit.CalculateWarnings = domain.Warnings{"recalc warning"}
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))

	in := filepath.Join(fx.working, "existing.mcd")
	require.NoError(t, os.WriteFile(in, []byte("mcd"), 0o644))

	_, path, warnings, err := fx.sess.Recalculate(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(fx.working, domain.RecalculatedFileName), path)
	assert.FileExists(t, path)
	assert.Equal(t, domain.Warnings{"recalc warning"}, warnings)
}

func TestRecalculate_UnsupportedVersion(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))

	in := filepath.Join(fx.working, "old.mcd")
	require.NoError(t, os.WriteFile(in, []byte("mcd"), 0o644))
	fx.toolkit.FileVersions = map[string]string{in: "2.9"}

	_, _, _, err := fx.sess.Recalculate(ctx, in)
	assert.ErrorIs(t, err, domain.ErrUnsupportedVersion)
	assert.Contains(t, fx.notifier.Titles(), "Unsupported Controller Version")

	// The calculation call never ran and nothing was written.
	assert.Zero(t, fx.toolkit.Calls("calculate"))
	assert.NoFileExists(t, filepath.Join(fx.working, domain.RecalculatedFileName))
}

func TestInspectParameters(t *testing.T) {
	fx := newFixture(t)
	fx.toolkit.Files = map[string][]byte{
		domain.ParametersFileKey: []byte(`<Parameters><Axes>
			<Axis Index="0">
				<P n="ServoLoopGainKp">120.5</P>
				<P n="FeedforwardMass">3.2</P>
				<P n="FaultMask">255</P>
			</Axis>
			<Axis Index="1">
				<P n="FeedforwardFriction">0.02</P>
			</Axis>
		</Axes></Parameters>`),
	}
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))

	def, _, _, err := fx.sess.Calculate(ctx, domain.StageSpec{
		StageType: "XY-500",
		Options:   map[string]any{"Travel": "500mm"},
	})
	require.NoError(t, err)

	servo, feedforward, err := fx.sess.InspectParameters(def)
	require.NoError(t, err)
	assert.Equal(t, domain.AxisParameters{
		"0": {{Name: "ServoLoopGainKp", Value: "120.5"}},
	}, servo)
	assert.Equal(t, domain.AxisParameters{
		"0": {{Name: "FeedforwardMass", Value: "3.2"}},
		"1": {{Name: "FeedforwardFriction", Value: "0.02"}},
	}, feedforward)
}

func TestInspectParameters_UndecodableContent(t *testing.T) {
	fx := newFixture(t)
	fx.toolkit.Files = map[string][]byte{
		domain.ParametersFileKey: {0xff, 0xfe, 0x00, 0x81},
	}
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))

	def, _, _, err := fx.sess.Calculate(ctx, domain.StageSpec{
		StageType: "XY-500",
		Options:   map[string]any{"Travel": "500mm"},
	})
	require.NoError(t, err)

	servo, feedforward, err := fx.sess.InspectParameters(def)
	require.NoError(t, err)
	assert.Nil(t, servo)
	assert.Nil(t, feedforward)
	assert.Contains(t, fx.notifier.Titles(), "Parameter Extraction")
}

func TestInspectParameters_MissingEntry(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	require.NoError(t, fx.sess.Initialize(ctx))

	def, _, _, err := fx.sess.Calculate(ctx, domain.StageSpec{
		StageType: "XY-500",
		Options:   map[string]any{"Travel": "500mm"},
	})
	require.NoError(t, err)

	servo, feedforward, err := fx.sess.InspectParameters(def)
	require.NoError(t, err)
	assert.Nil(t, servo)
	assert.Nil(t, feedforward)
}
