package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/benbjohnson/clock"
	"github.com/docker/go-units"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"gonum.org/v1/plot/vg"

	"go.viam.com/chainik/config"
	"go.viam.com/chainik/debugdraw"
	"go.viam.com/chainik/kinematics"
	"go.viam.com/chainik/kinematics/driver"
	"go.viam.com/chainik/logging"
	"go.viam.com/chainik/utils"
)

const defaultFPS = 60

type runOptions struct {
	frames   int
	realtime bool
	clock    clock.Clock
}

type runResult struct {
	id        uuid.UUID
	elapsed   time.Duration
	scene     *config.Scene
	host      *config.Host
	solver    *kinematics.Solver
	residuals []float64
	last      kinematics.FrameReport
}

// recentFrames is the window of the "recent error" column.
const recentFrames = 30

// runScene loads a scene and solves it frame by frame, moving the target along its path.
func runScene(ctx context.Context, path string, opts runOptions, logger logging.Logger) (*runResult, error) {
	scene, err := config.Read(ctx, path, logger)
	if err != nil {
		return nil, err
	}
	host, err := scene.Build(logger.Sublogger("collision"))
	if err != nil {
		return nil, err
	}
	solverConf := *scene.ConvertedSolver
	solverConf.DebugLines = true
	solver, err := kinematics.NewSolver(&solverConf, host.World, logger.Sublogger("solver"))
	if err != nil {
		return nil, err
	}
	joints, err := host.Joints(solverConf.Length)
	if err != nil {
		return nil, err
	}

	frames := scene.FrameCount()
	if opts.frames > 0 {
		frames = opts.frames
	}
	fps := scene.FPS
	if fps <= 0 {
		fps = defaultFPS
	}
	clk := opts.clock
	if clk == nil {
		clk = clock.New()
	}
	d, err := driver.New(clk, fps, logger.Sublogger("driver"))
	if err != nil {
		return nil, err
	}

	res := &runResult{id: uuid.New(), scene: scene, host: host, solver: solver}
	logger.Infow("solving scene",
		"run_id", res.id.String(),
		"scene", path,
		"frames", frames,
		"realtime", opts.realtime,
	)
	start := clk.Now()
	done := make(chan struct{})
	var once sync.Once
	input := func(frame int) kinematics.FrameInput {
		host.Target.SetWorldPose(scene.Target.PoseAt(frame))
		return kinematics.FrameInput{Joints: joints, Target: host.Target, Pole: host.Pole}
	}
	onReport := func(frame int, report kinematics.FrameReport) {
		if frame >= frames {
			return
		}
		res.residuals = append(res.residuals, report.EffectorError)
		res.last = report
		if frame == frames-1 {
			once.Do(func() { close(done) })
		}
	}
	if err := d.Add(solver, input, onReport); err != nil {
		return nil, err
	}

	if !opts.realtime {
		for i := 0; i < frames; i++ {
			d.Step()
		}
		res.elapsed = clk.Since(start)
		return res, nil
	}

	if err := d.Start(ctx); err != nil {
		return nil, err
	}
	stopSlowLogger := utils.SlowLogger(ctx, clk, "still solving scene", "scene", path, logger)
	defer stopSlowLogger()
	select {
	case <-done:
		d.Stop()
	case <-ctx.Done():
		d.Stop()
		return nil, ctx.Err()
	}
	res.elapsed = clk.Since(start)
	return res, nil
}

func residualTable(residuals []float64) (string, error) {
	if len(residuals) == 0 {
		return "", errors.New("no frames were solved")
	}
	data := stats.Float64Data(residuals)
	mean, err := stats.Mean(data)
	if err != nil {
		return "", err
	}
	maximum, err := stats.Max(data)
	if err != nil {
		return "", err
	}
	p95, err := stats.Percentile(data, 95)
	if err != nil {
		return "", err
	}
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	recent := utils.NewRollingAverage(recentFrames)
	for _, r := range residuals {
		recent.Add(r)
	}
	t.AppendHeader(table.Row{"Frames", "Mean error", "Max error", "P95 error", "Recent error"})
	t.AppendRow(table.Row{
		len(residuals),
		fmt.Sprintf("%.6f", mean),
		fmt.Sprintf("%.6f", maximum),
		fmt.Sprintf("%.6f", p95),
		fmt.Sprintf("%.6f", recent.Average()),
	})
	return t.Render(), nil
}

func statsTable(snap kinematics.StatsSnapshot) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Frames", "Skipped", "Reinitialized", "Unreachable", "Rollbacks", "Grounded", "Iterations"})
	t.AppendRow(table.Row{snap.Frames, snap.Skipped, snap.Reinitializations, snap.Unreachable, snap.Rollbacks, snap.Grounded, snap.Iterations})
	return t.Render()
}

// histogramBins is how many buckets the residual histogram uses.
const histogramBins = 10

func residualHistogram(w io.Writer, residuals []float64) error {
	if len(residuals) == 0 {
		return errors.New("no frames were solved")
	}
	minimum, _ := stats.Min(residuals)
	maximum, _ := stats.Max(residuals)
	if maximum-minimum <= 0 {
		_, err := fmt.Fprintf(w, "every frame ended %.6f from the target\n", minimum)
		return err
	}
	return histogram.Fprint(w, histogram.Hist(histogramBins, residuals), histogram.Linear(40))
}

// printStatus writes a one line verdict on the last solved frame.
func printStatus(w io.Writer, res *runResult) {
	status, verdict := color.New(color.FgGreen), "target reached"
	switch {
	case res.last.RolledBack:
		status, verdict = color.New(color.FgRed), "blocked by an obstacle"
	case res.last.Grounded:
		status, verdict = color.New(color.FgCyan), "foot grounded"
	case !res.last.Reachable:
		status, verdict = color.New(color.FgYellow), "target out of reach"
	case res.last.EffectorError > res.solver.Delta():
		status, verdict = color.New(color.FgYellow), "not converged"
	}
	status.Fprintf(w, "run %s: %s after %d frames (%s)\n",
		res.id, verdict, len(res.residuals), units.HumanDuration(res.elapsed))
}

func optionsFromContext(c *cli.Context) runOptions {
	return runOptions{frames: c.Int(flagFrames), realtime: c.Bool(flagRealtime), clock: clock.New()}
}

func solveAction(c *cli.Context, logger logging.Logger) error {
	if err := solveOnce(c, logger); err != nil {
		return err
	}
	if !c.Bool(flagWatch) {
		return nil
	}
	watcher, err := newSceneWatcher(c.Path(flagScene), logger.Sublogger("watch"))
	if err != nil {
		return err
	}
	defer watcher.Close()
	return watcher.Run(c.Context, func() {
		if err := solveOnce(c, logger); err != nil {
			logger.Errorw("scene failed", "scene", c.Path(flagScene), "error", err)
		}
	})
}

func solveOnce(c *cli.Context, logger logging.Logger) error {
	res, err := runScene(c.Context, c.Path(flagScene), optionsFromContext(c), logger)
	if err != nil {
		return err
	}
	residuals, err := residualTable(res.residuals)
	if err != nil {
		return err
	}
	w := c.App.Writer
	fmt.Fprintln(w, res.host.Hierarchy.String())
	fmt.Fprintln(w, residuals)
	fmt.Fprintln(w, statsTable(res.solver.Stats().Snapshot()))
	if c.Bool(flagHistogram) {
		if err := residualHistogram(w, res.residuals); err != nil {
			return err
		}
	}
	printStatus(w, res)
	return nil
}

func plotAction(c *cli.Context, logger logging.Logger) error {
	res, err := runScene(c.Context, c.Path(flagScene), optionsFromContext(c), logger)
	if err != nil {
		return err
	}
	title := res.scene.ConvertedSolver.Name
	if title == "" {
		title = "effector error"
	}
	p, err := debugdraw.ResidualPlot(title, res.residuals)
	if err != nil {
		return err
	}
	width := vg.Length(c.Float64(flagPlotWidth)) * vg.Inch
	height := vg.Length(c.Float64(flagPlotHeight)) * vg.Inch
	if err := p.Save(width, height, c.Path(flagOut)); err != nil {
		return err
	}
	logger.Infow("plotted", "path", c.Path(flagOut), "frames", len(res.residuals))
	return nil
}

func renderAction(c *cli.Context, logger logging.Logger) error {
	res, err := runScene(c.Context, c.Path(flagScene), optionsFromContext(c), logger)
	if err != nil {
		return err
	}
	if res.last.Positions == nil {
		return errors.New("no solved frame to render")
	}
	f, err := os.Create(c.Path(flagOut))
	if err != nil {
		return err
	}
	drawing := debugdraw.Drawing{
		Positions: res.last.Positions,
		Target:    res.host.Target.Position(),
		Pole:      res.host.Pole,
		Obstacles: res.host.World.Geometries(res.solver.ObstacleLayer()),
		LinkBoxes: res.scene.ConvertedSolver.DebugLines,
		Width:     c.Int(flagWidth),
		Height:    c.Int(flagHeight),
	}
	if err := debugdraw.RenderPNG(f, drawing); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	logger.Infow("rendered", "path", c.Path(flagOut))
	return nil
}
