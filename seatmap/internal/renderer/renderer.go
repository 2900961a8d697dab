// Package renderer turns a deck-map payload into an interactive seat map:
// a lookup grid, per-seat visual and interaction state, facility
// placeholders, overlay geometry and the hover detail panel. It never owns
// the selection map; selection intent leaves through Props.OnSelect.
package renderer

import (
	"bytes"
	"errors"
	"html/template"
	"io"

	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
)

var (
	ErrNoSeatMap         = errors.New("no_seat_map_available")
	ErrSeatNotFound      = errors.New("seat_not_found_in_seat_map")
	ErrSeatNotSelectable = errors.New("seat_not_selectable")
	ErrReadOnly          = errors.New("seat_map_is_read_only")
)

// SelectFunc receives selection intent. Applying it to the selection map is
// the caller's job.
type SelectFunc func(travelerID string, seatNumber string, price *model.Price) error

type Props struct {
	SeatMap    model.SeatMap
	Selections model.Selections
	TravelerID string
	ReadOnly   bool
	OnSelect   SelectFunc
}

type CellKind string

const (
	CellSeat     CellKind = "seat"
	CellFacility CellKind = "facility"
	CellVoid     CellKind = "void"
)

type CellView struct {
	Kind     CellKind      `json:"kind"`
	Seat     *SeatCell     `json:"seat,omitempty"`
	Facility *FacilityCell `json:"facility,omitempty"`
}

type RowView struct {
	Index   int        `json:"index"`
	ExitRow bool       `json:"exitRow"`
	Cells   []CellView `json:"cells"`
}

type LegendItem struct {
	Class string `json:"class"`
	Label string `json:"label"`
}

var legend = []LegendItem{
	{"free", "Free"},
	{"preferred", "Preferred"},
	{"selected", "Selected"},
	{"occupied", "Occupied"},
	{"blocked", "Blocked"},
	{"wing", "Wing"},
}

// View is the complete projection of one render.
type View struct {
	Empty      bool         `json:"empty"`
	TravelerID string       `json:"travelerId"`
	ReadOnly   bool         `json:"readOnly"`
	Layout     Layout       `json:"layout"`
	Rows       []RowView    `json:"rows,omitempty"`
	Legend     []LegendItem `json:"legend,omitempty"`
	Detail     DetailPanel  `json:"detail"`
}

type Renderer struct {
	grids *GridCache
	tmpl  *template.Template
}

func New(grids *GridCache) *Renderer {
	if grids == nil {
		grids = NewGridCache(defaultGridCacheSize)
	}
	return &Renderer{
		grids: grids,
		tmpl:  template.Must(template.New("seatmap").Funcs(templateFuncs).Parse(seatMapTemplate)),
	}
}

const defaultGridCacheSize = 64

func firstDeck(m model.SeatMap) (model.Deck, bool) {
	if len(m.Decks) == 0 {
		return model.Deck{}, false
	}
	return m.Decks[0], true
}

func (r *Renderer) View(p Props, hover Hover) View {
	view := View{
		TravelerID: p.TravelerID,
		ReadOnly:   p.ReadOnly,
	}

	deck, ok := firstDeck(p.SeatMap)
	if !ok {
		view.Empty = true
		view.Detail = NewDetailPanel(nil, p.Selections, p.TravelerID)
		return view
	}

	grid := r.grids.Grid(p.SeatMap.Revision, deck)
	cfg := deck.DeckConfiguration

	var hovered *model.Seat
	if seat, _, ok := grid.Seat(hover.Seat()); ok {
		hovered = &seat
	}

	ctx := cellContext{
		travelerID: p.TravelerID,
		selections: p.Selections,
		readOnly:   p.ReadOnly,
		exitRows:   exitRowSet(cfg),
		width:      grid.Width,
	}
	if hovered != nil {
		ctx.hovered = hovered.Number
	}

	view.Layout = ComputeLayout(cfg)
	view.Layout.Columns = grid.Width
	view.Legend = legend
	view.Rows = make([]RowView, grid.Length)
	for row := range grid.Cells {
		rv := RowView{
			Index:   row,
			ExitRow: ctx.exitRows[row],
			Cells:   make([]CellView, grid.Width),
		}
		for column, cell := range grid.Cells[row] {
			switch {
			case cell.Seat != nil:
				sc := newSeatCell(*cell.Seat, model.Coordinates{X: row, Y: column}, ctx)
				rv.Cells[column] = CellView{Kind: CellSeat, Seat: &sc}
			case cell.Facility != nil:
				fc := NewFacilityCell(*cell.Facility)
				rv.Cells[column] = CellView{Kind: CellFacility, Facility: &fc}
			default:
				rv.Cells[column] = CellView{Kind: CellVoid}
			}
		}
		view.Rows[row] = rv
	}
	view.Detail = NewDetailPanel(hovered, p.Selections, p.TravelerID)
	return view
}

// Render writes the seat map as an HTML fragment.
func (r *Renderer) Render(w io.Writer, p Props, hover Hover) error {
	return r.tmpl.Execute(w, r.View(p, hover))
}

func (r *Renderer) RenderString(p Props, hover Hover) (string, error) {
	buf := bytes.Buffer{}
	if err := r.Render(&buf, p, hover); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Select applies the interaction contract for a click on seatNumber: only
// AVAILABLE seats, or seats already SELECTED, reach OnSelect. Everything else
// returns an error and the callback is not invoked.
func (r *Renderer) Select(p Props, seatNumber string) error {
	deck, ok := firstDeck(p.SeatMap)
	if !ok {
		return ErrNoSeatMap
	}
	if p.ReadOnly {
		return ErrReadOnly
	}

	grid := r.grids.Grid(p.SeatMap.Revision, deck)
	seat, pos, ok := grid.Seat(seatNumber)
	if !ok {
		return ErrSeatNotFound
	}

	cell := newSeatCell(seat, pos, cellContext{
		travelerID: p.TravelerID,
		selections: p.Selections,
		exitRows:   exitRowSet(deck.DeckConfiguration),
		width:      grid.Width,
	})
	if !cell.Interactive {
		return ErrSeatNotSelectable
	}

	if p.OnSelect == nil {
		return nil
	}
	return p.OnSelect(p.TravelerID, seat.Number, cell.Price)
}
