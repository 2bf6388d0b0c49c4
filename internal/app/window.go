// Package app presents the render loop in a desktop window.
package app

import (
	"fmt"
	"image/color"
	"math"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"scroll-scene-renderer/internal/input"
	"scroll-scene-renderer/internal/loop"
	"scroll-scene-renderer/internal/panel"
	"scroll-scene-renderer/internal/raster"
)

// WheelStep is the scroll distance in logical pixels per wheel notch.
const WheelStep = 100.0

// Options configures the window.
type Options struct {
	Title      string
	Width      int
	Height     int
	Background color.Color
}

// Run opens a window that scrolls through the scene. It blocks until the
// window closes or Esc is pressed.
func Run(l *loop.Loop, opts Options) error {
	g := &game{
		l:       l,
		bg:      opts.Background,
		overlay: true,
		w:       opts.Width,
		h:       opts.Height,
		ratio:   1,
		resized: true,
	}
	if g.bg == nil {
		g.bg = color.Black
	}

	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(g)
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type game struct {
	l       *loop.Loop
	bg      color.Color
	overlay bool
	scroll  float64
	frame   loop.Frame
	img     *ebiten.Image

	// Layout may run outside Update, so size changes are handed over here.
	mu      sync.Mutex
	w, h    int
	ratio   float64
	resized bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.overlay = !g.overlay
	}
	if pn := g.l.Panel; pn != nil {
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
			_ = pn.Cycle(panel.MaterialColor, panel.MaterialPresets)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
			_ = pn.Cycle(panel.ParticleMaterialColor, panel.ParticlePresets)
		}
	}

	g.mu.Lock()
	w, h, ratio, resized := g.w, g.h, g.ratio, g.resized
	g.resized = false
	g.mu.Unlock()
	if resized {
		g.l.Resize(w, h, ratio)
		// A minimized window reports zero height; keep the page position for
		// when it comes back.
		if h > 0 {
			g.scroll = input.ClampScroll(g.scroll, h, g.l.Scene.Sections())
			g.l.Scroll(g.scroll)
		}
	}

	if _, dy := ebiten.Wheel(); dy != 0 && h > 0 {
		g.scroll = input.ClampScroll(g.scroll-dy*WheelStep, h, g.l.Scene.Sections())
		g.l.Scroll(g.scroll)
	}

	// The screen is laid out in device pixels; the loop wants logical ones.
	cx, cy := ebiten.CursorPosition()
	r := raster.ClampPixelRatio(ratio)
	g.l.MouseMove(float64(cx)/r, float64(cy)/r)

	g.frame = g.l.Tick()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)

	src := g.frame.Image
	if src != nil {
		b := src.Bounds()
		if g.img == nil || g.img.Bounds().Dx() != b.Dx() || g.img.Bounds().Dy() != b.Dy() {
			if g.img != nil {
				g.img.Deallocate()
			}
			g.img = ebiten.NewImage(b.Dx(), b.Dy())
		}
		// Frames hold only opaque or cleared pixels, which are the same
		// premultiplied or not.
		g.img.WritePixels(src.Pix)
		screen.DrawImage(g.img, nil)
	}

	if g.overlay {
		ebitenutil.DebugPrintAt(screen, g.status(), 8, 8)
	}
}

func (g *game) status() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "section %d  scroll %.0f  %.0f fps\n", g.frame.Section, g.frame.ScrollY, ebiten.ActualFPS())
	if pn := g.l.Panel; pn != nil {
		for _, p := range pn.Params() {
			fmt.Fprintf(&sb, "%s %s\n", p.Name, p.Hex)
		}
	}
	sb.WriteString("wheel scroll  1/2 presets  tab hide  esc quit")
	return sb.String()
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := ebiten.Monitor().DeviceScaleFactor()

	g.mu.Lock()
	if outsideWidth != g.w || outsideHeight != g.h || ratio != g.ratio {
		g.w, g.h, g.ratio = outsideWidth, outsideHeight, ratio
		g.resized = true
	}
	g.mu.Unlock()

	r := raster.ClampPixelRatio(ratio)
	return max(int(math.Round(float64(outsideWidth)*r)), 1), max(int(math.Round(float64(outsideHeight)*r)), 1)
}
