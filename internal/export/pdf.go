// Package export renders the board to portable formats.
package export

import (
	"github.com/jung-kurt/gofpdf"

	"github.com/Lulu110106/projet-Rpaint/internal/board"
)

// pxPerMM converts board pixels to page millimetres; an A4 page is 210mm
// wide, so a typical board fills it comfortably.
const pxPerMM = 3

// ToPDF writes the strokes as vector lines on an A4 page, keeping each
// stroke's color and width.
func ToPDF(path string, strokes []board.Stroke) error {
	p := gofpdf.New("P", "mm", "A4", "")
	p.AddPage()

	for _, st := range strokes {
		p.SetDrawColor(int(st.Color.R), int(st.Color.G), int(st.Color.B))
		w := float64(st.Width) / pxPerMM
		if w < 0.2 {
			w = 0.2
		}
		p.SetLineWidth(w)
		for i := 1; i < len(st.Points); i++ {
			p.Line(
				float64(st.Points[i-1].X/pxPerMM), float64(st.Points[i-1].Y/pxPerMM),
				float64(st.Points[i].X/pxPerMM), float64(st.Points[i].Y/pxPerMM),
			)
		}
	}
	return p.OutputFileAndClose(path)
}
