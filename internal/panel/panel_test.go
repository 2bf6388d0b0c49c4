package panel

import (
	"context"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type sink struct{ got []color.NRGBA }

func (s *sink) set(c color.Color) {
	s.got = append(s.got, color.NRGBAModel.Convert(c).(color.NRGBA))
}

func newPanel(t *testing.T) (*Panel, *sink, *sink) {
	t.Helper()
	p := New(quiet())
	mat, pts := &sink{}, &sink{}
	require.NoError(t, p.AddColor(MaterialColor, "#E94560", mat.set))
	require.NoError(t, p.AddColor(ParticleMaterialColor, "#0F3460", pts.set))
	return p, mat, pts
}

func TestSetInvokesCallback(t *testing.T) {
	p, mat, pts := newPanel(t)
	assert.Empty(t, mat.got, "registration alone does not fire")

	require.NoError(t, p.Set(MaterialColor, "#00ff00"))
	require.Len(t, mat.got, 1)
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, mat.got[0])
	assert.Empty(t, pts.got)

	// Same value is not an edit.
	require.NoError(t, p.Set(MaterialColor, "#00FF00"))
	assert.Len(t, mat.got, 1)

	assert.Equal(t, []Param{
		{MaterialColor, "#00ff00"},
		{ParticleMaterialColor, "#0f3460"},
	}, p.Params())
}

func TestSetRejectsBadInput(t *testing.T) {
	p, mat, _ := newPanel(t)
	assert.Error(t, p.Set(MaterialColor, "red"))
	assert.Error(t, p.Set("nope", "#ffffff"))
	assert.Empty(t, mat.got)

	c, ok := p.Value(MaterialColor)
	require.True(t, ok)
	assert.Equal(t, "#e94560", c.Hex())

	assert.Error(t, p.AddColor(MaterialColor, "#000000", nil), "duplicate")
	assert.Error(t, p.AddColor("other", "zzz", nil))
}

func TestSubmitThenDrain(t *testing.T) {
	p, mat, pts := newPanel(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p.Submit(ParticleMaterialColor, "#ffffff")
		}()
	}
	wg.Wait()
	p.Submit(MaterialColor, "bogus")
	assert.Empty(t, pts.got, "nothing applies before Drain")

	assert.Equal(t, 8, p.Drain())
	assert.Len(t, pts.got, 1, "repeated identical edits fire once")
	assert.Empty(t, mat.got)
	assert.Equal(t, 0, p.Drain())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	js := filepath.Join(dir, "params.json")
	require.NoError(t, os.WriteFile(js, []byte(`{"materialColor": "#112233"}`), 0644))
	v, err := LoadFile(js)
	require.NoError(t, err)
	assert.Equal(t, "#112233", v[MaterialColor])

	tm := filepath.Join(dir, "params.toml")
	require.NoError(t, os.WriteFile(tm, []byte("particleMaterialColor = \"#445566\"\n"), 0644))
	v, err = LoadFile(tm)
	require.NoError(t, err)
	assert.Equal(t, "#445566", v[ParticleMaterialColor])

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0644))
	_, err = LoadFile(bad)
	assert.ErrorContains(t, err, "parse")
}

func TestWatchAppliesFileEdits(t *testing.T) {
	p, mat, _ := newPanel(t)
	path := filepath.Join(t.TempDir(), "params.toml")
	require.NoError(t, os.WriteFile(path, []byte("materialColor = \"#E94560\"\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Watch(ctx, path) }()

	// Wait until the initial load is queued, so the watcher is about to start.
	require.Eventually(t, func() bool {
		p.Drain()
		c, _ := p.Value(MaterialColor)
		return c.Hex() == "#e94560"
	}, time.Second, 10*time.Millisecond)

	require.Eventually(t, func() bool {
		// Rewrite until the watcher has registered and picked it up.
		os.WriteFile(path, []byte("materialColor = \"#010203\"\n"), 0644)
		p.Drain()
		c, _ := p.Value(MaterialColor)
		return c.Hex() == "#010203"
	}, 5*time.Second, 50*time.Millisecond)

	assert.Equal(t, color.NRGBA{1, 2, 3, 255}, mat.got[len(mat.got)-1])

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestCycleWrapsThroughPresets(t *testing.T) {
	p, mat, _ := newPanel(t)
	presets := []string{"#e94560", "#ffffff", "#000000"}

	require.NoError(t, p.Cycle(MaterialColor, presets))
	c, _ := p.Value(MaterialColor)
	assert.Equal(t, "#ffffff", c.Hex())

	require.NoError(t, p.Cycle(MaterialColor, presets))
	require.NoError(t, p.Cycle(MaterialColor, presets))
	c, _ = p.Value(MaterialColor)
	assert.Equal(t, "#e94560", c.Hex(), "wraps to the first preset")
	assert.Len(t, mat.got, 3)

	require.NoError(t, p.Set(MaterialColor, "#123456"))
	require.NoError(t, p.Cycle(MaterialColor, presets))
	c, _ = p.Value(MaterialColor)
	assert.Equal(t, "#e94560", c.Hex(), "unknown value restarts the cycle")

	assert.Error(t, p.Cycle("nope", presets))
	assert.NoError(t, p.Cycle(MaterialColor, nil))
}
