package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

const (
	stopMaxGenerations = "maximum generations reached"
	stopStable         = "board is stable"
	stopExtinct        = "extinction"
	stopInterrupted    = "interrupted"
	stopQuit           = "quit by user"
)

var errQuit = errors.New("quit requested")

// quitPoller is implemented by renderers that can read quit keys from the terminal
type quitPoller interface {
	PollQuit(ctx context.Context) bool
}

// configPathFromArgs finds -config in args the same way flag.Parse will, so
// value-taking flags and the first non-flag argument are handled alike.
// It reports whether the path was given explicitly.
func configPathFromArgs(args []string) (string, bool) {
	fs := flag.NewFlagSet("go-life", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	path := fs.String("config", defaultConfigPath, "")
	scratch := utils.DefaultConfig()
	scratch.Bind(fs)

	// Parse errors are reported by the real flag.Parse later on
	if err := fs.Parse(args); err != nil {
		return defaultConfigPath, false
	}

	explicit := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicit = true
		}
	})
	return *path, explicit
}

// initialGrid loads the configured input file, or seeds a random board when there is none
func initialGrid(config utils.Config) (*model.Grid, error) {
	if config.InputFile != "" {
		g, err := model.LoadGridFile(config.InputFile)
		if err != nil {
			return nil, errors.Wrap(err, "[initialGrid] failed to load initial grid")
		}
		return g, nil
	}

	rng := rand.New(rand.NewPCG(uint64(config.Seed), 0))
	g := model.NewEmptyGrid(config.Rows, config.Columns)
	g.Randomize(rng, config.RandomDensity)

	// Add some simple patterns
	if config.Rows >= 10 && config.Columns >= 10 {
		g.AddGlider(2, 2)
		g.AddBlinker(config.Rows/2, config.Columns/2)
	}
	return g, nil
}

// newRenderer builds the renderer selected by the configuration
func newRenderer(config utils.Config, out io.Writer) (model.Renderer, error) {
	glyphs := model.Glyphs{Alive: config.AliveGlyph, Dead: config.DeadGlyph}
	switch config.Renderer {
	case utils.RendererText:
		return model.NewTextRenderer(out, glyphs), nil
	case utils.RendererScreen:
		return model.NewTerminalScreenRenderer(glyphs)
	default:
		return nil, errors.Errorf("[newRenderer] unknown renderer: %+v", config.Renderer)
	}
}

// restartBoard builds the board used after the given number of restarts.
// Random boards move on to the next seed; input files are reloaded.
func restartBoard(config utils.Config, restarts int) (*model.Grid, error) {
	next := config
	next.Seed = config.Seed + int64(restarts)
	return initialGrid(next)
}

// statusLine summarises the current generation for display under the board
func statusLine(generation, restarts, lastRestartGen int, world *model.World, stats *utils.Stats) string {
	grid := world.Current()
	living := grid.CountLivingCells()
	density := 0.0
	if cells := grid.GetRows() * grid.GetColumns(); cells > 0 {
		density = float64(living) / float64(cells) * 100
	}

	status := fmt.Sprintf("Gen: %d | Living: %d | Density: %.1f%% | %.1f gen/sec | Avg Pop: %.1f",
		generation, living, density, stats.GenerationsPerSecond, stats.AveragePopulation)

	// Show generations since last restart
	if restarts > 0 {
		status += fmt.Sprintf(" | Restarts: %d | Since restart: %d", restarts, generation-lastRestartGen)
	}
	return status
}

// checkRestartConditions determines if the board has run its course
func checkRestartConditions(world *model.World) (string, bool) {
	if world.Current().CountLivingCells() == 0 {
		return stopExtinct, true
	}
	if world.Stable() {
		return stopStable, true
	}
	return "", false
}

// wait sleeps for d or until ctx is done
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// runGame renders the current generation, then steps and waits until a stop
// condition is met or ctx is done. Extinct or stable boards are replaced when
// AutoRestart is set. It returns the reason the game stopped.
func runGame(
	ctx context.Context,
	world *model.World,
	renderer model.Renderer,
	config utils.Config,
	stats *utils.Stats,
) (string, error) {
	var (
		generation     = 0
		restarts       = 0
		lastRestartGen = 0
		lastFrame      time.Time
	)

	for {
		frameStart := time.Now()
		var frameDuration time.Duration
		if !lastFrame.IsZero() {
			frameDuration = frameStart.Sub(lastFrame)
		}
		lastFrame = frameStart

		grid := world.Current()
		stats.Update(generation, grid.CountLivingCells(), frameDuration)

		status := ""
		if config.ShowStatus {
			status = statusLine(generation, restarts, lastRestartGen, world, stats)
		}
		if err := renderer.Display(grid, status); err != nil {
			return "", errors.Wrapf(err, "[runGame] failed to render generation %d", generation)
		}

		// Check for max generations limit
		if config.MaxGenerations > 0 && generation >= config.MaxGenerations {
			return stopMaxGenerations, nil
		}

		restarted := false
		if reason, over := checkRestartConditions(world); over {
			switch {
			case config.AutoRestart:
				restarts++
				board, err := restartBoard(config, restarts)
				if err != nil {
					return "", errors.Wrapf(err, "[runGame] failed to restart after %s", reason)
				}
				if !board.SameSize(grid) {
					return "", errors.Errorf("[runGame] restart board is %dx%d, world is %dx%d",
						board.GetRows(), board.GetColumns(), grid.GetRows(), grid.GetColumns())
				}
				world.Reset(board)
				// The fresh board is displayed as the next generation
				lastRestartGen = generation + 1
				restarted = true
			case config.StopWhenStable:
				return reason, nil
			}
		}

		if err := wait(ctx, time.Duration(config.FrameRate)); err != nil {
			return stopInterrupted, nil
		}

		// A fresh board is shown once before it starts evolving
		if !restarted {
			world.Step()
		}
		generation++
	}
}

// playGame drives runGame and, for renderers that support it, a quit-key
// reader. Whichever finishes first stops the other.
func playGame(
	ctx context.Context,
	world *model.World,
	renderer model.Renderer,
	config utils.Config,
	stats *utils.Stats,
) (string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)

	var reason string
	eg.Go(func() error {
		defer cancel()
		var err error
		reason, err = runGame(ctx, world, renderer, config, stats)
		return err
	})

	if poller, ok := renderer.(quitPoller); ok {
		eg.Go(func() error {
			if poller.PollQuit(ctx) {
				return errQuit
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		if errors.Is(err, errQuit) {
			return stopQuit, nil
		}
		return "", err
	}
	return reason, nil
}
