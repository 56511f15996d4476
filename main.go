package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sheikhrachel/go-life/model"
	"github.com/sheikhrachel/go-life/utils"
)

const defaultConfigPath = "config.json"

func main() {
	log.SetFlags(0)
	log.SetPrefix("go-life: ")

	// The config file is read before flags are parsed so flags override it
	configPath, explicit := configPathFromArgs(os.Args[1:])
	config, err := utils.LoadConfig(configPath)
	if err != nil {
		if explicit {
			log.Fatalf("%v", err)
		}
		log.Printf("Using default configuration (%s not found)", configPath)
		config = utils.DefaultConfig()
	}

	flag.String("config", defaultConfigPath, "path to a JSON config file")
	config.Bind(flag.CommandLine)
	flag.Parse()

	if err = config.Validate(); err != nil {
		log.Fatalf("%v", err)
	}

	initial, err := initialGrid(config)
	if err != nil {
		log.Fatalf("%v", err)
	}
	world := model.NewWorld(initial)

	renderer, err := newRenderer(config, os.Stdout)
	if err != nil {
		log.Fatalf("%v", err)
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats := utils.NewStats()
	reason, err := playGame(ctx, world, renderer, config, stats)
	if closeErr := renderer.Close(); closeErr != nil {
		log.Printf("%v", closeErr)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}

	log.Printf("Stopped: %s", reason)
	log.Printf("Final stats: %d generations in %.1f seconds, %d living cells, %.1f avg population",
		stats.TotalGenerations, stats.Runtime().Seconds(), world.Current().CountLivingCells(), stats.AveragePopulation)
}
