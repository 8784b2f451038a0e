package gateway

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/GlintPay/storefront/backend"
	"github.com/GlintPay/storefront/backend/file"
	"github.com/GlintPay/storefront/config"
	"github.com/GlintPay/storefront/metrics"
	"github.com/GlintPay/storefront/store"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripThroughFile(t *testing.T) {
	appConfig := config.ApplicationConfiguration{File: config.FileConfig{Path: filepath.Join(t.TempDir(), "data", "data.json")}}
	appConfig.ApplyDefaults()

	fb := &file.Backend{}
	require.NoError(t, fb.Init(context.Background(), appConfig))

	g := New(backend.Backends{fb}, appConfig, metrics.New(prometheus.NewRegistry(), "test"))
	ctx := context.Background()

	doc := store.Defaults()
	doc.Store.Name = "Pizzaria"
	doc.Products[0].Price = decimal.RequireFromString("42.5")

	result := g.SaveData(ctx, doc)
	assert.True(t, result.Success)
	assert.Equal(t, "Saved to file", result.Message)

	got := g.GetData(ctx)
	assert.Equal(t, "Pizzaria", got.Store.Name)
	assert.True(t, got.Products[0].Price.Equal(decimal.RequireFromString("42.5")))
	assert.Equal(t, len(doc.Categories), len(got.Categories))
}

func TestAllBackendsFailingServesDefaults(t *testing.T) {
	g := _gateway(config.WriteModeFirst,
		&fakeBackend{name: "gist", order: 10, readErr: backend.Failure(backend.ErrRemoteUnavailable, nil, "down")},
		&fakeBackend{name: "file", order: 100, readErr: backend.Failure(backend.ErrLocalIO, nil, "denied")},
	)

	assert.Equal(t, store.Defaults(), g.GetData(context.Background()))
}

func TestNothingStoredServesDefaults(t *testing.T) {
	g := _gateway(config.WriteModeFirst, &fakeBackend{name: "gist", order: 10, data: []byte(" ")}, &fakeBackend{name: "file", order: 100})

	assert.Equal(t, store.Defaults(), g.GetData(context.Background()))

	doc, err := g.LoadData(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, store.Defaults(), doc)
}

func TestLoadDataReportsUnreadableDocument(t *testing.T) {
	g := _gateway(config.WriteModeFirst,
		&fakeBackend{name: "gist", order: 10, readErr: backend.Failure(backend.ErrRemoteUnavailable, nil, "down")},
		&fakeBackend{name: "postgres", order: 30, data: []byte(`{"store":{}}`)},
		&fakeBackend{name: "file", order: 100},
	)

	doc, err := g.LoadData(context.Background())
	assert.ErrorIs(t, err, ErrUnreadable)
	assert.EqualError(t, err, "stored document could not be read (gist: remote unavailable; postgres: invalid document)")
	assert.Equal(t, store.Defaults(), doc)
}

func TestLoadDataFallsBackPastFailures(t *testing.T) {
	g := _gateway(config.WriteModeFirst,
		&fakeBackend{name: "gist", order: 10, readErr: backend.Failure(backend.ErrRemoteUnavailable, nil, "down")},
		&fakeBackend{name: "file", order: 100, data: _doc("Local")},
	)

	doc, err := g.LoadData(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "Local", doc.Store.Name)
}

func TestStoredDocumentSurvivesUnreadableFields(t *testing.T) {
	appConfig := config.ApplicationConfiguration{File: config.FileConfig{Path: filepath.Join(t.TempDir(), "data.json")}}
	appConfig.ApplyDefaults()

	require.NoError(t, os.WriteFile(appConfig.File.Path, []byte(`{
		"store": {"name": "Pizzaria Real"},
		"categories": [{"id": "c1", "name": "Combos"}],
		"products": [
			{"id": "p1", "name": "Combo Família", "price": "1.045,00", "category": "c1"},
			{"id": "p2", "name": "Combo Casal", "price": "a combinar", "category": "c1"}
		]
	}`), 0644))

	fb := &file.Backend{}
	require.NoError(t, fb.Init(context.Background(), appConfig))
	g := New(backend.Backends{fb}, appConfig, nil)
	ctx := context.Background()

	doc, err := g.LoadData(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Pizzaria Real", doc.Store.Name)
	require.Len(t, doc.Products, 2)
	assert.True(t, doc.Products[0].Price.Equal(decimal.NewFromInt(1045)))
	assert.True(t, doc.Products[1].Price.IsZero())

	// saving it back keeps the store intact
	assert.True(t, g.SaveData(ctx, doc).Success)

	saved, err := os.ReadFile(appConfig.File.Path)
	require.NoError(t, err)
	assert.Contains(t, string(saved), "Pizzaria Real")
	assert.Contains(t, string(saved), `"price": 1045`)
}

func TestReadPriorityAndSkipping(t *testing.T) {
	tests := []struct {
		name     string
		backends []*fakeBackend
		want     string
	}{
		{
			name: "highest priority wins regardless of list order",
			backends: []*fakeBackend{
				{name: "file", order: 100, data: _doc("Local")},
				{name: "gist", order: 10, data: _doc("Remote")},
			},
			want: "Remote",
		},
		{
			name: "unavailable remote falls through",
			backends: []*fakeBackend{
				{name: "gist", order: 10, readErr: backend.Failure(backend.ErrRemoteUnavailable, nil, "timeout")},
				{name: "file", order: 100, data: _doc("Local")},
			},
			want: "Local",
		},
		{
			name: "empty payload falls through",
			backends: []*fakeBackend{
				{name: "gist", order: 10, data: []byte("  ")},
				{name: "file", order: 100, data: _doc("Local")},
			},
			want: "Local",
		},
		{
			name: "structurally invalid document falls through",
			backends: []*fakeBackend{
				{name: "gist", order: 10, data: []byte(`{"store":{"name":"NoProducts"}}`)},
				{name: "postgres", order: 30, data: []byte(`[1,2,3]`)},
				{name: "file", order: 100, data: _doc("Local")},
			},
			want: "Local",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var bs []backend.Backend
			for _, each := range tt.backends {
				bs = append(bs, each)
			}
			g := _gateway(config.WriteModeFirst, bs...)

			assert.Equal(t, tt.want, g.GetData(context.Background()).Store.Name)
		})
	}
}

func TestSaveFirstMode(t *testing.T) {
	remote := &fakeBackend{name: "gist", order: 10}
	local := &fakeBackend{name: "file", order: 100}
	g := _gateway(config.WriteModeFirst, local, remote)

	result := g.SaveData(context.Background(), store.Defaults())
	assert.True(t, result.Success)
	assert.Equal(t, "Saved to gist", result.Message)
	assert.Equal(t, 1, remote.writes)
	assert.Equal(t, 0, local.writes)

	remote.writeErr = backend.Failure(backend.ErrRemoteUnavailable, errors.New("503"), "patch")

	result = g.SaveData(context.Background(), store.Defaults())
	assert.True(t, result.Success)
	assert.Equal(t, "Saved to file (gist: remote unavailable)", result.Message)
	assert.Equal(t, 1, local.writes)
}

func TestSaveAllMode(t *testing.T) {
	remote := &fakeBackend{name: "postgres", order: 30}
	local := &fakeBackend{name: "file", order: 100}
	g := _gateway(config.WriteModeAll, remote, local)

	result := g.SaveData(context.Background(), store.Defaults())
	assert.True(t, result.Success)
	assert.Equal(t, "Saved to postgres, file", result.Message)
	assert.Equal(t, 1, remote.writes)
	assert.Equal(t, 1, local.writes)

	// the local copy alone still counts as saved
	remote.writeErr = backend.Failure(backend.ErrConfigurationMissing, nil, "bad credentials")

	result = g.SaveData(context.Background(), store.Defaults())
	assert.True(t, result.Success)
	assert.Equal(t, "Saved to file (postgres: configuration missing)", result.Message)
}

func TestSaveSucceedsIffAnyWriteSucceeds(t *testing.T) {
	remoteDown := backend.Failure(backend.ErrRemoteUnavailable, nil, "down")
	diskDenied := backend.Failure(backend.ErrLocalIO, nil, "denied")

	for _, mode := range []string{config.WriteModeFirst, config.WriteModeAll} {
		t.Run(mode, func(t *testing.T) {
			g := _gateway(mode,
				&fakeBackend{name: "gist", order: 10, writeErr: remoteDown},
				&fakeBackend{name: "file", order: 100, writeErr: diskDenied},
			)

			result := g.SaveData(context.Background(), store.Defaults())
			assert.False(t, result.Success)
			assert.Equal(t, "Save failed (gist: remote unavailable; file: local I/O failure)", result.Message)
		})
	}
}

func TestSaveWithoutBackends(t *testing.T) {
	g := _gateway(config.WriteModeFirst)

	result := g.SaveData(context.Background(), store.Defaults())
	assert.False(t, result.Success)
	assert.Equal(t, "Save failed: configuration missing", result.Message)
}

func TestLastWriterWins(t *testing.T) {
	fb := &fakeBackend{name: "file", order: 100}
	g := _gateway(config.WriteModeFirst, fb)
	ctx := context.Background()

	first := store.Defaults()
	first.Store.Name = "A"
	second := store.Defaults()
	second.Store.Name = "B"

	require.True(t, g.SaveData(ctx, first).Success)
	require.True(t, g.SaveData(ctx, second).Success)

	assert.Equal(t, "B", g.GetData(ctx).Store.Name)
}

func TestCheck(t *testing.T) {
	down := backend.Failure(backend.ErrRemoteUnavailable, nil, "down")

	assert.NoError(t, _gateway(config.WriteModeFirst).Check(context.Background()))

	g := _gateway(config.WriteModeFirst,
		&checkingBackend{fakeBackend{name: "gist", order: 10}, down},
		&checkingBackend{fakeBackend{name: "postgres", order: 30}, nil},
	)
	assert.NoError(t, g.Check(context.Background()))

	g = _gateway(config.WriteModeFirst, &checkingBackend{fakeBackend{name: "gist", order: 10}, down})
	assert.ErrorIs(t, g.Check(context.Background()), backend.ErrRemoteUnavailable)

	// a backend without a remote end is always reachable
	g = _gateway(config.WriteModeFirst,
		&checkingBackend{fakeBackend{name: "gist", order: 10}, down},
		&fakeBackend{name: "file", order: 100},
	)
	assert.NoError(t, g.Check(context.Background()))
}

func _gateway(writeMode string, bs ...backend.Backend) *Gateway {
	appConfig := config.ApplicationConfiguration{Persistence: config.Persistence{WriteMode: writeMode}}
	return New(bs, appConfig, nil)
}

func _doc(name string) []byte {
	doc := store.Defaults()
	doc.Store.Name = name
	data, _ := store.Encode(doc)
	return data
}

type fakeBackend struct {
	name     string
	order    int
	data     []byte
	readErr  error
	writeErr error
	writes   int
}

func (f *fakeBackend) Order() int         { return f.order }
func (f *fakeBackend) Name() string       { return f.name }
func (f *fakeBackend) Kind() backend.Kind { return backend.KeyValue }
func (f *fakeBackend) Close()             {}

func (f *fakeBackend) Init(context.Context, config.ApplicationConfiguration) error {
	return nil
}

func (f *fakeBackend) Read(context.Context) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if f.data == nil {
		return nil, backend.ErrNotFound
	}
	return f.data, nil
}

func (f *fakeBackend) Write(_ context.Context, payload []byte) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.writes++
	f.data = payload
	return nil
}

type checkingBackend struct {
	fakeBackend
	checkErr error
}

func (c *checkingBackend) Check(context.Context) error {
	return c.checkErr
}
