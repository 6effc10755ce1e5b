package reveal

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
	// OnUpdate, when set, is called once per tick after the scene updates.
	// A non-nil error stops the loop and is returned from Run.
	OnUpdate func() error
}

type runner struct {
	scene *Scene
	cfg   RunConfig
}

func (r *runner) Update() error {
	r.scene.Update()
	if r.cfg.OnUpdate != nil {
		return r.cfg.OnUpdate()
	}
	return nil
}

func (r *runner) Draw(screen *ebiten.Image) {
	r.scene.Draw(screen)
	if r.cfg.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.0f  TPS: %.0f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

func (r *runner) Layout(w, h int) (int, int) {
	return w, h
}

// Run opens a window and drives the scene until the window closes. For full
// control, implement ebiten.Game and call Scene.Update and Scene.Draw.
func Run(scene *Scene, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 640, 480
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if scene.viewport != nil && scene.viewport.Width == 0 {
		scene.viewport.Width, scene.viewport.Height = float64(cfg.Width), float64(cfg.Height)
	}
	return ebiten.RunGame(&runner{scene: scene, cfg: cfg})
}
