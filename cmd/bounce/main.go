// Command bounce drops balls and diamonds into a walled terminal arena. They
// push each other apart on contact and play a short tone for every hit.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/plus3/stencil/ecs"
	"github.com/plus3/stencil/ecs/collision"
)

func main() {
	width := flag.Int("width", 60, "Arena width in cells.")
	height := flag.Int("height", 20, "Arena height in cells.")
	balls := flag.Int("balls", 8, "Number of balls.")
	diamonds := flag.Int("diamonds", 4, "Number of diamonds.")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed.")
	mute := flag.Bool("mute", false, "Disable hit sounds.")
	logPath := flag.String("log", "", "Write debug logs to this file.")
	flag.Parse()

	if err := run(*width, *height, *balls, *diamonds, *seed, *mute, *logPath); err != nil {
		fmt.Fprintf(os.Stderr, "bounce: %v\n", err)
		os.Exit(1)
	}
}

func run(width, height, balls, diamonds int, seed int64, mute bool, logPath string) error {
	var out io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		out = f
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	tones := NewTones()
	if !mute {
		if err := tones.Start(); err != nil {
			logger.Warn("audio unavailable", "error", err)
		}
	}
	defer tones.Close()

	world := ecs.NewWorld(ecs.WithLogger(logger))
	scheduler := ecs.NewScheduler(world)
	arena := NewArena(scheduler, screen, rand.New(rand.NewSource(seed)))
	arena.Walls(width, height)
	arena.Balls(balls, width, height)
	arena.Diamonds(diamonds, width, height)

	ecs.On(world.Events(), collision.EventCollision, func(hit collision.Hit) {
		if err := tones.Hit(hit); err != nil {
			logger.Warn("hit tone", "error", err)
		}
	})

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen, events, done)

	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !handleInput(scheduler, screen, ev) {
				return nil
			}
		case now := <-ticker.C:
			scheduler.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// pollEvents feeds screen events into events until the screen is finalized or
// done is closed. events is closed when the screen stops delivering.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}

// handleInput forwards keys to the scheduler and reports whether to keep running.
func handleInput(scheduler *ecs.Scheduler, screen tcell.Screen, ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			scheduler.Post(ecs.Event{Name: EventKick})
		}
	case *tcell.EventResize:
		screen.Sync()
	}
	return true
}
