package utils

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"go.viam.com/chainik/logging"
)

// SlowLogger starts a goroutine that logs every few seconds as long as the context has not timed out or was not cancelled.
func SlowLogger(ctx context.Context, clk clock.Clock, msg, fieldName, fieldVal string, logger logging.Logger) func() {
	if clk == nil {
		clk = clock.New()
	}
	slowTicker := clk.Ticker(2 * time.Second)
	firstTick := true

	ctxWithCancel, cancel := context.WithCancel(ctx)
	startTime := clk.Now()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-slowTicker.C:
				elapsed := clk.Since(startTime).Round(time.Second).String()
				logger.Warnw(msg, fieldName, fieldVal, "time_elapsed", elapsed)
				if firstTick {
					slowTicker.Reset(3 * time.Second)
					firstTick = false
				} else {
					slowTicker.Reset(5 * time.Second)
				}
			case <-ctxWithCancel.Done():
				return
			}
		}
	}()
	return func() {
		slowTicker.Stop()
		cancel()
		<-done
	}
}
