package renderer

import (
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/meetupaws/flight_seat_map/seatmap/internal/model"
	"github.com/zeebo/blake3"
)

// Cell holds at most one of a seat or a facility. Both nil means the
// position is empty (an aisle or a gap in the cabin).
type Cell struct {
	Seat     *model.Seat
	Facility *model.Facility
}

func (c Cell) Empty() bool {
	return c.Seat == nil && c.Facility == nil
}

// Grid is the Length x Width lookup built from a deck, indexed [row][column].
type Grid struct {
	Width  int
	Length int
	Cells  [][]Cell

	seats map[string]model.Coordinates
}

func (g *Grid) inBounds(c model.Coordinates) bool {
	return c.X >= 0 && c.X < g.Length && c.Y >= 0 && c.Y < g.Width
}

// Seat finds a placed seat by number.
func (g *Grid) Seat(number string) (model.Seat, model.Coordinates, bool) {
	pos, ok := g.seats[number]
	if !ok {
		return model.Seat{}, model.Coordinates{}, false
	}
	return *g.Cells[pos.X][pos.Y].Seat, pos, true
}

// Upper bounds for a deck. The largest cabins in service stay well below
// them; anything bigger is clamped.
const (
	maxGridRows    = 256
	maxGridColumns = 32
)

// BuildGrid places seats first and facilities after them, so a facility
// wins a contested cell. Entries outside [0, length) x [0, width) are
// dropped, and length and width are clamped to maxGridRows x maxGridColumns.
func BuildGrid(deck model.Deck) *Grid {
	width := min(max(deck.DeckConfiguration.Width, 0), maxGridColumns)
	length := min(max(deck.DeckConfiguration.Length, 0), maxGridRows)

	g := &Grid{
		Width:  width,
		Length: length,
		Cells:  make([][]Cell, length),
		seats:  map[string]model.Coordinates{},
	}
	for row := range g.Cells {
		g.Cells[row] = make([]Cell, width)
	}

	for _, s := range deck.Seats {
		if !g.inBounds(s.Coordinates) {
			continue
		}
		seat := s
		g.Cells[s.Coordinates.X][s.Coordinates.Y] = Cell{Seat: &seat}
	}
	for _, f := range deck.Facilities {
		if !g.inBounds(f.Coordinates) {
			continue
		}
		facility := f
		g.Cells[f.Coordinates.X][f.Coordinates.Y] = Cell{Facility: &facility}
	}

	for row := range g.Cells {
		for column, cell := range g.Cells[row] {
			if cell.Seat == nil {
				continue
			}
			if _, dup := g.seats[cell.Seat.Number]; !dup {
				g.seats[cell.Seat.Number] = model.Coordinates{X: row, Y: column}
			}
		}
	}

	return g
}

// Fingerprint identifies a deck by content. Payloads are decoded fresh on
// every request, so pointer identity never repeats.
type Fingerprint [32]byte

func DeckFingerprint(deck model.Deck) (Fingerprint, error) {
	raw, err := json.Marshal(deck)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint(blake3.Sum256(raw)), nil
}

// GridCache memoizes BuildGrid per deck revision. Oldest entries are
// evicted first once the cache holds size grids.
type GridCache struct {
	mu      sync.Mutex
	size    int
	entries map[string]*Grid
	order   []string
}

func NewGridCache(size int) *GridCache {
	if size < 1 {
		size = 1
	}
	return &GridCache{
		size:    size,
		entries: map[string]*Grid{},
	}
}

// Grid returns the cached grid for deck, building it on a miss. revision is
// the SeatMap revision stamped at decode time; without one the deck is
// fingerprinted. Callers must treat the result as read-only.
func (c *GridCache) Grid(revision string, deck model.Deck) *Grid {
	key := revision
	if key == "" {
		fp, err := DeckFingerprint(deck)
		if err != nil {
			return BuildGrid(deck)
		}
		key = "deck:" + hex.EncodeToString(fp[:])
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if g, ok := c.entries[key]; ok {
		return g
	}

	g := BuildGrid(deck)
	if len(c.order) >= c.size {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = g
	c.order = append(c.order, key)
	return g
}

func (c *GridCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
