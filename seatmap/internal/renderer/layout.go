package renderer

import "github.com/meetupaws/flight_seat_map/seatmap/internal/model"

// Grid geometry in CSS pixels. A row is a 42px wide seat at 4:5 aspect plus
// an 8px gap.
const (
	RowHeight   = 60.5
	GridPadding = 24.0
	ColumnWidth = 42
	RowGap      = 8.0

	exitLabelInset = 8.0
	exitLineInset  = 26.0
)

// PixelOffset is the top edge of a grid row inside the padded grid box.
func PixelOffset(row int) float64 {
	return float64(row)*RowHeight + GridPadding
}

// Band is a vertical span drawn beside or across the grid.
type Band struct {
	Top    float64 `json:"top"`
	Height float64 `json:"height"`
}

type ExitMarker struct {
	Row      int     `json:"row"`
	LabelTop float64 `json:"labelTop"`
	LineTop  float64 `json:"lineTop"`
}

// Layout holds the overlays positioned around the seat grid.
type Layout struct {
	Columns     int          `json:"columns"`
	ColumnWidth int          `json:"columnWidth"`
	Wing        *Band        `json:"wing,omitempty"`
	Exits       []ExitMarker `json:"exits,omitempty"`
	Nose        bool         `json:"nose"`
}

func ComputeLayout(cfg model.DeckConfiguration) Layout {
	l := Layout{
		Columns:     max(cfg.Width, 0),
		ColumnWidth: ColumnWidth,
		Nose:        true,
	}

	if cfg.StartWingsX != nil && cfg.EndWingsX != nil && *cfg.EndWingsX >= *cfg.StartWingsX {
		start, end := *cfg.StartWingsX, *cfg.EndWingsX
		l.Wing = &Band{
			Top:    PixelOffset(start),
			Height: float64(end-start+1)*RowHeight - RowGap,
		}
	}

	for _, x := range cfg.ExitRowsX {
		l.Exits = append(l.Exits, ExitMarker{
			Row:      x,
			LabelTop: PixelOffset(x) + exitLabelInset,
			LineTop:  PixelOffset(x) + exitLineInset,
		})
	}
	return l
}

func exitRowSet(cfg model.DeckConfiguration) map[int]bool {
	rows := make(map[int]bool, len(cfg.ExitRowsX))
	for _, x := range cfg.ExitRowsX {
		rows[x] = true
	}
	return rows
}
