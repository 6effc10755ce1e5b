package reveal

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultScreenshotDir = "screenshots"

type screenshotRequest struct {
	label string
	frame uint64
}

// Screenshot queues a labeled capture of the next Draw. The PNG is written
// to ScreenshotDir as <timestamp>_f<frame>_<label>.png, so a test script can
// record an effect's progress frame by frame.
func (s *Scene) Screenshot(label string) {
	s.screenshots = append(s.screenshots, screenshotRequest{label: label, frame: s.frame})
}

// flushScreenshots writes every queued capture. Called at the end of Draw.
func (s *Scene) flushScreenshots(screen *ebiten.Image) {
	if len(s.screenshots) == 0 {
		return
	}
	defer func() { s.screenshots = s.screenshots[:0] }()

	if err := os.MkdirAll(s.ScreenshotDir, 0o755); err != nil {
		s.warnf("screenshot: mkdir %s: %v", s.ScreenshotDir, err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	stamp := time.Now().Format("20060102_150405")
	for _, req := range s.screenshots {
		name := fmt.Sprintf("%s_f%d_%s.png", stamp, req.frame, sanitizeLabel(req.label))
		if err := writePNG(filepath.Join(s.ScreenshotDir, name), img); err != nil {
			s.warnf("screenshot: %v", err)
		}
	}
}

// unpremultiply converts premultiplied RGBA pixels to a straight-alpha image.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing everything
// else with '_'. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
