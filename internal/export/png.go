package export

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/Lulu110106/projet-Rpaint/internal/board"
)

const (
	minPNGWidth  = 640
	minPNGHeight = 480
	pngMargin    = 40
)

// ToPNG rasterizes the strokes onto a white canvas sized to fit them, with
// an optional caption in the bottom-left corner.
func ToPNG(path string, strokes []board.Stroke, caption string) error {
	w, h := minPNGWidth, minPNGHeight
	for _, st := range strokes {
		if r, ok := st.Bounds(); ok {
			w = max(w, int(math.Ceil(float64(r.Max.X)))+pngMargin)
			h = max(h, int(math.Ceil(float64(r.Max.Y)))+pngMargin)
		}
	}

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	for _, st := range strokes {
		if len(st.Points) == 0 {
			continue
		}
		dc.SetColor(st.Color)
		dc.SetLineWidth(float64(st.Width))
		if len(st.Points) == 1 {
			// A lone point still deserves a dot.
			p := st.Points[0]
			dc.DrawCircle(float64(p.X), float64(p.Y), float64(st.Width)/2)
			dc.Fill()
			continue
		}
		dc.MoveTo(float64(st.Points[0].X), float64(st.Points[0].Y))
		for _, p := range st.Points[1:] {
			dc.LineTo(float64(p.X), float64(p.Y))
		}
		dc.Stroke()
	}

	if caption != "" {
		if err := drawCaption(dc, caption, h); err != nil {
			return err
		}
	}
	return dc.SavePNG(path)
}

func drawCaption(dc *gg.Context, caption string, h int) error {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return fmt.Errorf("parse caption font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    12,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawString(caption, 8, float64(h)-10)
	return nil
}
