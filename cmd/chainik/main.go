// Package main is the chainik command: it runs the chain solver over a scene file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"go.viam.com/chainik/config"
	"go.viam.com/chainik/logging"
)

const (
	// Flags.
	flagScene      = "scene"
	flagFrames     = "frames"
	flagDebug      = "debug"
	flagLogFile    = "log-file"
	flagRealtime   = "realtime"
	flagWatch      = "watch"
	flagHistogram  = "histogram"
	flagOut        = "out"
	flagWidth      = "width"
	flagHeight     = "height"
	flagPlotWidth  = "width-in"
	flagPlotHeight = "height-in"
	flagSolver     = "solver"
)

func newApp() *cli.App {
	var (
		logger  logging.Logger
		logFile io.Closer
	)

	sceneFlags := []cli.Flag{
		&cli.PathFlag{
			Name:     flagScene,
			Aliases:  []string{"s"},
			Required: true,
			Usage:    "load the scene from `FILE`",
		},
		&cli.IntFlag{
			Name:  flagFrames,
			Usage: "number of frames to solve, overriding the scene",
		},
		&cli.BoolFlag{
			Name:  flagRealtime,
			Usage: "pace frames at the scene's fps instead of solving as fast as possible",
		},
	}

	return &cli.App{
		Name:  "chainik",
		Usage: "solve articulated chains toward moving targets",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
			&cli.PathFlag{
				Name:  flagLogFile,
				Usage: "also append logs to `FILE`, rotating it as it grows",
			},
		},
		Before: func(c *cli.Context) error {
			level := zapcore.InfoLevel
			if c.Bool(flagDebug) {
				level = zapcore.DebugLevel
			}
			switch {
			case c.Path(flagLogFile) != "":
				logger, logFile = logging.NewFileLogger("chainik", c.Path(flagLogFile), level)
			case level == zapcore.DebugLevel:
				logger = logging.NewDebugLogger("chainik")
			default:
				logger = logging.NewLogger("chainik")
			}
			return nil
		},
		After: func(c *cli.Context) error {
			if logFile != nil {
				return logFile.Close()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "solve",
				Usage:     "solve a scene and print the final pose",
				UsageText: "chainik solve --scene FILE [--frames N] [--realtime] [--histogram] [--watch]",
				Flags: append(append([]cli.Flag{}, sceneFlags...),
					&cli.BoolFlag{Name: flagHistogram, Usage: "print a histogram of the per-frame effector error"},
					&cli.BoolFlag{Name: flagWatch, Usage: "solve again whenever the scene file changes"},
				),
				Action: func(c *cli.Context) error {
					return solveAction(c, logger)
				},
			},
			{
				Name:      "render",
				Usage:     "solve a scene and render the final pose to a PNG",
				UsageText: "chainik render --scene FILE --out PNG",
				Flags: append(append([]cli.Flag{}, sceneFlags...),
					&cli.PathFlag{
						Name:     flagOut,
						Aliases:  []string{"o"},
						Required: true,
						Usage:    "write the image to `FILE`",
					},
					&cli.IntFlag{Name: flagWidth, Value: 800, Usage: "image width in pixels"},
					&cli.IntFlag{Name: flagHeight, Value: 600, Usage: "image height in pixels"},
				),
				Action: func(c *cli.Context) error {
					return renderAction(c, logger)
				},
			},
			{
				Name:      "plot",
				Usage:     "solve a scene and chart the effector error per frame",
				UsageText: "chainik plot --scene FILE --out FILE.{png,svg,pdf}",
				Flags: append(append([]cli.Flag{}, sceneFlags...),
					&cli.PathFlag{
						Name:     flagOut,
						Aliases:  []string{"o"},
						Required: true,
						Usage:    "write the chart to `FILE`; the extension picks the format",
					},
					&cli.Float64Flag{Name: flagPlotWidth, Value: 6, Usage: "chart width in inches"},
					&cli.Float64Flag{Name: flagPlotHeight, Value: 4, Usage: "chart height in inches"},
				),
				Action: func(c *cli.Context) error {
					return plotAction(c, logger)
				},
			},
			{
				Name:  "schema",
				Usage: "print the JSON Schema of scene files",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: flagSolver, Usage: "print only the solver attribute schema"},
				},
				Action: func(c *cli.Context) error {
					get := config.Schema
					if c.Bool(flagSolver) {
						get = config.SolverSchema
					}
					raw, err := get()
					if err != nil {
						return err
					}
					_, err = fmt.Fprintln(c.App.Writer, string(raw))
					return err
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newApp().RunContext(ctx, os.Args)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
