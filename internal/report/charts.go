package report

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/quantbench/election-study/internal/types"
	"github.com/quantbench/election-study/pkg/errors"
)

// LineSeries names one table column to draw on the line chart.
type LineSeries struct {
	Column string
	Label  string
}

// RenderPriceLines draws one line per series across election years and
// saves the chart as a PNG. Rows where a series has no value are skipped
// for that line.
func RenderPriceLines(path string, t types.Table, series []LineSeries) error {
	p := plot.New()
	p.Title.Text = "Closing prices around election dates"
	p.X.Label.Text = "Election year"
	p.Y.Label.Text = "Close"
	p.X.Tick.Marker = yearTicks(t.Years())
	p.Legend.Top = true

	args := make([]interface{}, 0, len(series)*2)

	for _, s := range series {
		xys := make(plotter.XYs, 0, len(t.Rows))

		for _, row := range t.Rows {
			cell := row.Cells[s.Column]
			if cell.IsNone() {
				continue
			}

			xys = append(xys, plotter.XY{X: float64(row.Year), Y: cell.Unwrap()})
		}

		args = append(args, s.Label, xys)
	}

	if err := plotutil.AddLinePoints(p, args...); err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, "failed to add line series", err)
	}

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrapf(errors.ErrCodeRenderFailed, err, "failed to save %s", path)
	}

	return nil
}

// RenderGroupedBars draws a grouped bar chart of two table columns per
// election year and saves it as a PNG. No-value cells draw as zero-height
// bars.
func RenderGroupedBars(path string, t types.Table, title, beforeCol, beforeLabel, afterCol, afterLabel string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Election year"
	p.Y.Label.Text = "Close"
	p.Legend.Top = true

	width := vg.Points(16)

	beforeBars, err := plotter.NewBarChart(columnValues(t, beforeCol), width)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, "failed to build before bars", err)
	}

	beforeBars.Offset = -width / 2
	beforeBars.Color = plotutil.Color(0)

	afterBars, err := plotter.NewBarChart(columnValues(t, afterCol), width)
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, "failed to build after bars", err)
	}

	afterBars.Offset = width / 2
	afterBars.Color = plotutil.Color(1)

	p.Add(beforeBars, afterBars)
	p.Legend.Add(beforeLabel, beforeBars)
	p.Legend.Add(afterLabel, afterBars)

	labels := make([]string, 0, len(t.Rows))
	for _, year := range t.Years() {
		labels = append(labels, strconv.Itoa(year))
	}

	p.NominalX(labels...)

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return errors.Wrapf(errors.ErrCodeRenderFailed, err, "failed to save %s", path)
	}

	return nil
}

// RenderCorrelationHeatmap draws the pairwise correlation matrix as a
// heatmap and saves it as a PNG. Undefined correlations (fewer than two
// complete observations for a pair) render as zero.
func RenderCorrelationHeatmap(path string, labels []string, matrix [][]float64) error {
	grid := corrGrid{
		labels: labels,
		values: make([][]float64, len(matrix)),
	}

	for i, row := range matrix {
		grid.values[i] = make([]float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) {
				v = 0
			}

			grid.values[i][j] = v
		}
	}

	p := plot.New()
	p.Title.Text = "Correlation of price movement columns"
	p.X.Tick.Marker = labelTicks(labels)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.Y.Tick.Marker = labelTicks(labels)

	heatmap := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	p.Add(heatmap)

	if err := p.Save(9*vg.Inch, 8*vg.Inch, path); err != nil {
		return errors.Wrapf(errors.ErrCodeRenderFailed, err, "failed to save %s", path)
	}

	return nil
}

// columnValues extracts a column as bar-chart values, zeroing no-value cells.
func columnValues(t types.Table, name string) plotter.Values {
	values := make(plotter.Values, 0, len(t.Rows))
	for _, cell := range t.Column(name) {
		values = append(values, cell.TakeOr(0))
	}

	return values
}

// yearTicks places one labeled tick per election year.
func yearTicks(years []int) plot.ConstantTicks {
	ticks := make([]plot.Tick, 0, len(years))
	for _, year := range years {
		ticks = append(ticks, plot.Tick{Value: float64(year), Label: strconv.Itoa(year)})
	}

	return plot.ConstantTicks(ticks)
}

// corrGrid adapts a correlation matrix to the heatmap grid interface.
type corrGrid struct {
	labels []string
	values [][]float64
}

func (g corrGrid) Dims() (c, r int) {
	return len(g.labels), len(g.labels)
}

func (g corrGrid) Z(c, r int) float64 {
	return g.values[r][c]
}

func (g corrGrid) X(c int) float64 {
	return float64(c)
}

func (g corrGrid) Y(r int) float64 {
	return float64(r)
}

// labelTicks places one labeled tick per matrix row/column.
func labelTicks(labels []string) plot.ConstantTicks {
	ticks := make([]plot.Tick, 0, len(labels))
	for i, label := range labels {
		ticks = append(ticks, plot.Tick{Value: float64(i), Label: label})
	}

	return plot.ConstantTicks(ticks)
}
