package utils

import (
	"context"
	"sync"

	goutils "go.viam.com/utils"

	"go.viam.com/chainik/logging"
)

// StoppableWorkers runs a set of long lived loops that share one cancellation context.
// A panicking loop is logged and counted as finished; it does not take the process down.
type StoppableWorkers struct {
	logger logging.Logger

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	running sync.WaitGroup
	panics  int
}

// NewStoppableWorkersWithContext starts every loop on its own goroutine. The loops see a context
// derived from ctx that is cancelled by Stop. A nil logger discards panic reports.
func NewStoppableWorkersWithContext(
	ctx context.Context,
	logger logging.Logger,
	loops ...func(context.Context),
) *StoppableWorkers {
	if logger == nil {
		logger = logging.NewBlankLogger("workers")
	}
	workerCtx, cancel := context.WithCancel(ctx)
	sw := &StoppableWorkers{logger: logger, ctx: workerCtx, cancel: cancel}
	sw.Add(loops...)
	return sw
}

// Add starts more loops. It does nothing once Stop has been called.
func (sw *StoppableWorkers) Add(loops ...func(context.Context)) {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	if sw.ctx.Err() != nil {
		return
	}

	sw.running.Add(len(loops))
	for _, loop := range loops {
		goutils.PanicCapturingGoWithCallback(func() {
			loop(sw.ctx)
			sw.running.Done()
		}, func(err interface{}) {
			// Done is only reached here so Stop observes the panic
			sw.mu.Lock()
			sw.panics++
			sw.mu.Unlock()
			sw.logger.Errorw("worker panicked", "error", err)
			sw.running.Done()
		})
	}
}

// Stop cancels the shared context and waits for every loop to return.
func (sw *StoppableWorkers) Stop() {
	sw.cancel()
	sw.running.Wait()
}

// Context is the context handed to the loops.
func (sw *StoppableWorkers) Context() context.Context {
	return sw.ctx
}

// Panics returns how many loops have exited by panicking.
func (sw *StoppableWorkers) Panics() int {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return sw.panics
}
