package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/plus3/stencil/ecs"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	cfg := Config{}
	flag.IntVar(&cfg.Templates, "templates", 25, "The number of templates to define.")
	flag.IntVar(&cfg.Instances, "instances", 10000, "The initial number of template instances to create.")
	flag.IntVar(&cfg.Systems, "systems", 50, "The number of worker systems to generate.")
	flag.IntVar(&cfg.Churn, "churn", 10, "Objects destroyed and re-instantiated per frame.")
	flag.BoolVar(&cfg.Collision, "collision", false, "Give every template a collision box.")
	flag.Int64Var(&cfg.Seed, "seed", 1, "Random seed for template layout and placement.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	verbose := flag.Bool("v", false, "Log property misses and other diagnostics.")
	flag.Parse()

	level := slog.LevelError
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	log.Println("Starting ECS stress test...")

	// 1. Setup World, templates and Scheduler
	world := ecs.NewWorld(ecs.WithLogger(logger))
	scheduler := ecs.NewScheduler(world)
	stress, err := Setup(scheduler, cfg)
	if err != nil {
		log.Fatalf("Failed to set up stress test: %v", err)
	}

	// 2. Populate the world with initial instances
	log.Printf("Populating world with %d instances of %d templates...\n", cfg.Instances, cfg.Templates)
	stress.Populate(cfg.Instances)
	log.Println("Population complete.")

	// 3. Run the simulation loop
	report := &Report{
		Duration:       *duration,
		Config:         cfg,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	var totalUpdates int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			stress.Churn(scheduler.Commands())
			scheduler.Once(float64(deltaTime) / float64(time.Second))
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.UpdateTime.Finalize()
	report.Scheduler = scheduler.GetStats()
	report.World = world.CollectStats()
	report.Collisions = stress.Collisions()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}
