// Package driver steps chain solvers once per frame, either on demand or on a fixed-rate clock.
package driver

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"golang.org/x/time/rate"

	"go.viam.com/chainik/kinematics"
	"go.viam.com/chainik/logging"
	"go.viam.com/chainik/utils"
)

// InputFunc produces the solver input for a frame. It runs on the chain's own goroutine.
type InputFunc func(frame int) kinematics.FrameInput

// ReportFunc receives the outcome of each solved frame.
type ReportFunc func(frame int, report kinematics.FrameReport)

type chain struct {
	solver   *kinematics.Solver
	input    InputFunc
	onReport ReportFunc
	frame    int
}

// Driver owns a set of solvers and advances all of them together.
type Driver struct {
	clock    clock.Clock
	interval time.Duration
	logger   logging.Logger

	// failures counts frames rejected by a solver; errorLog keeps a chain stuck in a bad state from
	// flooding the log.
	failures atomic.Int64
	errorLog *rate.Limiter

	mu      sync.Mutex
	chains  []*chain
	workers *utils.StoppableWorkers
}

// New returns a driver ticking fps times per second on clk.
func New(clk clock.Clock, fps float64, logger logging.Logger) (*Driver, error) {
	if fps <= 0 {
		return nil, errors.Errorf("fps must be positive, got %v", fps)
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = logging.NewBlankLogger("driver")
	}
	return &Driver{
		clock:    clk,
		interval: time.Duration(float64(time.Second) / fps),
		logger:   logger,
		errorLog: rate.NewLimiter(rate.Every(time.Second), 1),
	}, nil
}

// Failures returns how many frames have been rejected across all chains.
func (d *Driver) Failures() int64 {
	return d.failures.Load()
}

// Interval is the time between frames.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Add registers a solver with the function that feeds it. onReport may be nil.
func (d *Driver) Add(solver *kinematics.Solver, input InputFunc, onReport ReportFunc) error {
	if solver == nil || input == nil {
		return errors.New("driver needs a solver and an input function")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.workers != nil {
		return errors.New("cannot add a chain while the driver is running")
	}
	d.chains = append(d.chains, &chain{solver: solver, input: input, onReport: onReport})
	return nil
}

// Step solves one frame for every chain, in registration order, on the calling goroutine. It does
// nothing while the driver is running.
func (d *Driver) Step() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.workers != nil {
		return
	}
	for _, c := range d.chains {
		d.step(c)
	}
}

func (d *Driver) step(c *chain) {
	frame := c.frame
	c.frame++
	report, err := c.solver.Update(c.input(frame))
	if err != nil {
		failures := d.failures.Inc()
		if d.errorLog.Allow() {
			d.logger.Errorw("frame failed", "chain", c.solver.Name(), "frame", frame, "failures", failures, "error", err)
		}
		return
	}
	if c.onReport != nil {
		c.onReport(frame, report)
	}
}

// Start runs every chain on its own worker, one frame per clock tick, until Stop is called.
func (d *Driver) Start(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.workers != nil {
		return errors.New("driver already started")
	}

	// tickers are created here so no tick can fire before a worker is listening
	loops := make([]func(context.Context), 0, len(d.chains))
	for _, c := range d.chains {
		c := c
		ticker := d.clock.Ticker(d.interval)
		loops = append(loops, func(ctx context.Context) {
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
				}
				d.step(c)
			}
		})
	}
	d.workers = utils.NewStoppableWorkersWithContext(ctx, d.logger, loops...)
	d.logger.Infow("driver started", "chains", len(d.chains), "interval", d.interval)
	return nil
}

// Stop halts the workers started by Start and waits for them to exit. The driver counts as running
// until the last worker has returned, so Step stays a no-op while a frame is still in flight.
func (d *Driver) Stop() {
	d.mu.Lock()
	workers := d.workers
	d.mu.Unlock()
	if workers == nil {
		return
	}
	workers.Stop()
	d.mu.Lock()
	if d.workers == workers {
		d.workers = nil
	}
	d.mu.Unlock()
}
