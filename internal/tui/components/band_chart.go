package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/finlit/internal/domain"
	"github.com/rgehrsitz/finlit/internal/tui/tuistyles"
)

// BandChart plots the P10, median and P90 portfolio values of a simulation
// by year.
type BandChart struct {
	Bands  []domain.PercentileBand
	Width  int
	Height int
}

const yAxisWidth = 9

// NewBandChart creates a chart with a default size.
func NewBandChart(bands []domain.PercentileBand) *BandChart {
	return &BandChart{Bands: bands, Width: 60, Height: 12}
}

// WithSize sets the plot area including the axis.
func (c *BandChart) WithSize(width, height int) *BandChart {
	c.Width = width
	c.Height = height
	return c
}

type bandLine struct {
	name  string
	mark  rune
	color lipgloss.TerminalColor
	value func(domain.PercentileBand) float64
}

var bandLines = []bandLine{
	{"90th", '˙', tuistyles.ColorBandOuter, func(b domain.PercentileBand) float64 { return b.P90 }},
	{"10th", '.', tuistyles.ColorBandOuter, func(b domain.PercentileBand) float64 { return b.P10 }},
	{"median", '•', tuistyles.ColorBandMedian, func(b domain.PercentileBand) float64 { return b.P50 }},
}

// Render draws the chart. Fewer than two years renders a placeholder.
func (c *BandChart) Render() string {
	if len(c.Bands) < 2 || c.Height < 3 || c.Width <= yAxisWidth+2 {
		return tuistyles.InfoStyle.Render("Not enough data to chart")
	}
	plotWidth := c.Width - yAxisWidth - 2

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, b := range c.Bands {
		lo = math.Min(lo, b.P10)
		hi = math.Max(hi, b.P90)
	}
	lo = math.Max(0, lo)
	if hi <= lo {
		hi = lo + 1
	}

	grid := make([][]rune, c.Height)
	owner := make([][]int, c.Height)
	for y := range grid {
		grid[y] = []rune(strings.Repeat(" ", plotWidth))
		owner[y] = make([]int, plotWidth)
	}

	toX := func(i int) int { return i * (plotWidth - 1) / (len(c.Bands) - 1) }
	toY := func(v float64) int {
		y := c.Height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(c.Height-1)))
		return max(0, min(c.Height-1, y))
	}

	// later lines overwrite earlier ones so the median stays visible
	for li, line := range bandLines {
		for i := 1; i < len(c.Bands); i++ {
			x0, y0 := toX(i-1), toY(line.value(c.Bands[i-1]))
			x1, y1 := toX(i), toY(line.value(c.Bands[i]))
			plotSegment(grid, owner, x0, y0, x1, y1, line.mark, li)
		}
	}

	var out strings.Builder
	axis := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Width(yAxisWidth).Align(lipgloss.Right)
	for y, row := range grid {
		label := ""
		if y == 0 || y == c.Height-1 || y == c.Height/2 {
			label = tuistyles.CompactCurrency(hi - float64(y)/float64(c.Height-1)*(hi-lo))
		}
		out.WriteString(axis.Render(label))
		out.WriteString(" │")
		for x, r := range row {
			if r == ' ' {
				out.WriteRune(r)
				continue
			}
			out.WriteString(lipgloss.NewStyle().Foreground(bandLines[owner[y][x]].color).Render(string(r)))
		}
		out.WriteString("\n")
	}
	out.WriteString(strings.Repeat(" ", yAxisWidth) + " └" + strings.Repeat("─", plotWidth) + "\n")

	first, last := c.Bands[0].Year, c.Bands[len(c.Bands)-1].Year
	left := fmt.Sprintf("year %d", first)
	right := fmt.Sprintf("year %d", last)
	gap := max(1, plotWidth-len(left)-len(right))
	out.WriteString(strings.Repeat(" ", yAxisWidth+2) + tuistyles.SubtitleStyle.Render(left+strings.Repeat(" ", gap)+right) + "\n")
	out.WriteString(c.legend())
	return out.String()
}

func (c *BandChart) legend() string {
	items := make([]string, 0, len(bandLines))
	for _, line := range bandLines {
		mark := lipgloss.NewStyle().Foreground(line.color).Render(string(line.mark))
		items = append(items, mark+" "+line.name)
	}
	return tuistyles.SubtitleStyle.Render("percentile: ") + strings.Join(items, "  ")
}

// plotSegment draws a line with Bresenham's algorithm.
func plotSegment(grid [][]rune, owner [][]int, x0, y0, x1, y1 int, mark rune, line int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		if y0 >= 0 && y0 < len(grid) && x0 >= 0 && x0 < len(grid[y0]) {
			grid[y0][x0] = mark
			owner[y0][x0] = line
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
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
