package components

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/paulmach/orb"

	"github.com/rendis/mealee/internal/tui/styles"
)

// Minimap plots the two contenders, the line between them and the rest of
// the pool with braille dots. Width and Height are in terminal cells.
type Minimap struct {
	Width  int
	Height int
}

type layer int

const (
	layerPool layer = iota
	layerLink
	layerContender
	layerCount
)

// Braille cells are a 2x4 dot grid. Dot numbering:
//
//	0 3
//	1 4
//	2 5
//	6 7
var brailleDots = [8]rune{0x01, 0x02, 0x04, 0x08, 0x10, 0x20, 0x40, 0x80}

// dotOffsets maps each braille dot to its (row, col) inside the cell.
var dotOffsets = [8][2]int{
	{0, 0}, {1, 0}, {2, 0}, {0, 1},
	{1, 1}, {2, 1}, {3, 0}, {3, 1},
}

// Render draws left and right plus any other pool points. Points outside
// the contenders' padded bound are clipped.
func (m Minimap) Render(left, right orb.Point, pool []orb.Point) string {
	if m.Width <= 0 || m.Height <= 0 {
		return ""
	}

	bound := orb.MultiPoint{left, right}.Bound()
	pad := math.Max(bound.Right()-bound.Left(), bound.Top()-bound.Bottom()) * 0.15
	if pad == 0 {
		pad = 0.005
	}
	bound = bound.Pad(pad)

	dotW, dotH := m.Width*2, m.Height*4
	project := projection(bound, dotW, dotH)

	var grids [layerCount][][]bool
	for l := range grids {
		grids[l] = make([][]bool, dotH)
		for y := range grids[l] {
			grids[l][y] = make([]bool, dotW)
		}
	}

	plot := func(l layer, p orb.Point) {
		x, y := project(p)
		if x >= 0 && x < dotW && y >= 0 && y < dotH {
			grids[l][y][x] = true
		}
	}

	for _, p := range pool {
		plot(layerPool, p)
	}
	x0, y0 := project(left)
	x1, y1 := project(right)
	drawLine(grids[layerLink], x0, y0, x1, y1)
	plot(layerContender, left)
	plot(layerContender, right)

	layerStyles := [layerCount]lipgloss.Style{
		layerPool:      lipgloss.NewStyle().Foreground(styles.Muted),
		layerLink:      lipgloss.NewStyle().Foreground(styles.Accent),
		layerContender: lipgloss.NewStyle().Foreground(styles.Primary).Bold(true),
	}

	var sb strings.Builder
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			drawn := false
			// highest layer wins the cell
			for l := layerCount - 1; l >= 0; l-- {
				if cell := brailleCell(grids[l], row, col); cell != 0x2800 {
					sb.WriteString(layerStyles[l].Render(string(cell)))
					drawn = true
					break
				}
			}
			if !drawn {
				sb.WriteRune(' ')
			}
		}
		if row < m.Height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// projection maps lng/lat onto the dot grid keeping the aspect ratio: one
// degree of longitude shrinks by cos(lat).
func projection(b orb.Bound, dotW, dotH int) func(orb.Point) (int, int) {
	lngRange := b.Right() - b.Left()
	latRange := b.Top() - b.Bottom()
	cosLat := math.Cos(b.Center().Lat() * math.Pi / 180)

	geoAspect := lngRange * cosLat / latRange
	dotAspect := float64(dotW) / float64(dotH)

	effW, effH := dotW, dotH
	offX, offY := 0, 0
	if geoAspect < dotAspect {
		effW = max(int(float64(dotH)*geoAspect), 2)
		offX = (dotW - effW) / 2
	} else {
		effH = max(int(float64(dotW)/geoAspect), 2)
		offY = (dotH - effH) / 2
	}

	return func(p orb.Point) (int, int) {
		x := offX + int((p.Lon()-b.Left())/lngRange*float64(effW-1))
		y := offY + int((b.Top()-p.Lat())/latRange*float64(effH-1))
		return x, y
	}
}

func brailleCell(grid [][]bool, row, col int) rune {
	var cell rune = 0x2800
	for dot, off := range dotOffsets {
		y, x := row*4+off[0], col*2+off[1]
		if y < len(grid) && x < len(grid[y]) && grid[y][x] {
			cell |= brailleDots[dot]
		}
	}
	return cell
}

// drawLine marks the segment between two dots (Bresenham).
func drawLine(grid [][]bool, x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 >= x1 {
		sx = -1
	}
	if y0 >= y1 {
		sy = -1
	}
	err := dx + dy

	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) {
			grid[y0][x0] = true
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
