package debugdraw

import (
	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
)

// ResidualPlot charts the end effector error of each solved frame.
func ResidualPlot(title string, residuals []float64) (*plot.Plot, error) {
	if len(residuals) == 0 {
		return nil, errors.New("no residuals to plot")
	}
	xys := make(plotter.XYs, len(residuals))
	for i, r := range residuals {
		xys[i].X = float64(i)
		xys[i].Y = r
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "frame"
	p.Y.Label.Text = "effector error"
	p.Add(plotter.NewGrid(), line)
	return p, nil
}
