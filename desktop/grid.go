// Package desktop computes icon placement for the desktop surface: a
// logical cell grid derived from the viewport, free-cell allocation,
// drag rearrangement and the persisted id to cell layout.
package desktop

import (
	"math"
)

const (
	// CellWidth and CellHeight are the pixel dimensions of one icon cell.
	CellWidth  = 80
	CellHeight = 90

	// GridMargin keeps icons off the viewport edges.
	GridMargin = 16

	// MergeThreshold is how close to an icon's visual center a drop must
	// land to count as a drop onto the icon instead of beside it.
	MergeThreshold = 35
)

// Cell is one logical icon slot. Column 0 is the leftmost column; new
// icons fill up from the top right, see NextFreeCell.
type Cell struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// GridConfig is the cell grid derived from a viewport. Equal viewports
// always produce equal configs.
type GridConfig struct {
	CellWidth  int
	CellHeight int
	MarginX    int
	MarginY    int
	Columns    int
	Rows       int
}

// Config derives the icon grid for a viewport. Degenerate viewports still
// yield at least one cell.
func Config(viewportWidth, viewportHeight int) GridConfig {
	columns := (viewportWidth - 2*GridMargin) / CellWidth
	if columns < 1 {
		columns = 1
	}
	rows := (viewportHeight - 2*GridMargin) / CellHeight
	if rows < 1 {
		rows = 1
	}

	return GridConfig{
		CellWidth:  CellWidth,
		CellHeight: CellHeight,
		MarginX:    GridMargin,
		MarginY:    GridMargin,
		Columns:    columns,
		Rows:       rows,
	}
}

// CellToPixel returns the top-left pixel of a cell.
func CellToPixel(cell Cell, cfg GridConfig) (int, int) {
	x := cfg.MarginX + cell.Column*cfg.CellWidth
	y := cfg.MarginY + cell.Row*cfg.CellHeight
	return x, y
}

// PixelToCell returns the cell containing a pixel, clamped to the grid.
// It inverts CellToPixel for any pixel inside the cell.
func PixelToCell(x, y int, cfg GridConfig) Cell {
	return ClampCell(Cell{
		Column: (x - cfg.MarginX) / cfg.CellWidth,
		Row:    (y - cfg.MarginY) / cfg.CellHeight,
	}, cfg)
}

// ClampCell forces a cell into the grid bounds.
func ClampCell(cell Cell, cfg GridConfig) Cell {
	if cell.Column < 0 {
		cell.Column = 0
	}
	if cell.Column >= cfg.Columns {
		cell.Column = cfg.Columns - 1
	}
	if cell.Row < 0 {
		cell.Row = 0
	}
	if cell.Row >= cfg.Rows {
		cell.Row = cfg.Rows - 1
	}
	return cell
}

// CellCenter returns the pixel center of a cell, the anchor the merge
// distance is measured against.
func CellCenter(cell Cell, cfg GridConfig) (int, int) {
	x, y := CellToPixel(cell, cfg)
	return x + cfg.CellWidth/2, y + cfg.CellHeight/2
}

// WithinMergeRange reports whether a drop point lands close enough to an
// icon's center to count as dropping onto it. The caller decides what that
// means, usually moving the dragged file into a folder.
func WithinMergeRange(dropX, dropY int, cell Cell, cfg GridConfig) bool {
	centerX, centerY := CellCenter(cell, cfg)
	dx := float64(dropX - centerX)
	dy := float64(dropY - centerY)
	return math.Sqrt(dx*dx+dy*dy) <= MergeThreshold
}

// NextFreeCell scans columns right-to-left and rows top-to-bottom and
// returns the first cell missing from occupied. Returns false when the
// grid is full.
func NextFreeCell(occupied map[Cell]bool, cfg GridConfig) (Cell, bool) {
	for column := cfg.Columns - 1; column >= 0; column-- {
		for row := 0; row < cfg.Rows; row++ {
			cell := Cell{Column: column, Row: row}
			if !occupied[cell] {
				return cell, true
			}
		}
	}
	return Cell{}, false
}

// Rearrange computes the icon layout after dragging one icon onto a target
// cell. Whoever occupied the target is displaced to the next free cell,
// cascading until a free cell breaks the chain. The cell the drag vacated
// does not count as free; displaced icons only fall back to it when the
// grid holds no other spot. No icon is ever dropped.
func Rearrange(ids []string, positions map[string]Cell, draggedID string, target Cell, cfg GridConfig) map[string]Cell {
	result := make(map[string]Cell, len(positions))
	for id, cell := range positions {
		result[id] = cell
	}

	target = ClampCell(target, cfg)
	origin, hadOrigin := result[draggedID]
	result[draggedID] = target

	// Displaced icons land on free cells, so each pass shortens the set of
	// icons still sharing the target. The loop is bounded by the icon count.
	for range ids {
		occupant := ""
		for _, id := range ids {
			if id == draggedID {
				continue
			}
			if cell, exists := result[id]; exists && cell == target {
				occupant = id
				break
			}
		}
		if occupant == "" {
			break
		}

		occupied := occupiedCells(result)
		if hadOrigin {
			occupied[origin] = true
		}
		next, free := NextFreeCell(occupied, cfg)
		if !free {
			if hadOrigin {
				result[occupant] = origin
			}
			break
		}
		result[occupant] = next
	}

	return result
}

func occupiedCells(positions map[string]Cell) map[Cell]bool {
	occupied := make(map[Cell]bool, len(positions))
	for _, cell := range positions {
		occupied[cell] = true
	}
	return occupied
}
