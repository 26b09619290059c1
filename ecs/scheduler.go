package ecs

import (
	"context"
	"math"
	"slices"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	FixedSteps      int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system. One execution
// covers every phase the system ran in during a frame.
type SystemStats struct {
	Name           string
	Members        int
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler drives the per-frame phases of every registered system, in
// registration order:
//
//	membership flush -> bus Dispatch -> HandleEvents -> UpdateFixed x N ->
//	UpdateVariable -> Draw -> object cleanup -> Commands flush
type Scheduler struct {
	world       *World
	systems     []System
	systemStats []*systemStatsInternal
	commands    *Commands
	inbox       []Event

	accumulator float64
	frames      int64
	fixedSteps  int64
}

// NewScheduler creates a new scheduler for the given world.
func NewScheduler(world *World) *Scheduler {
	return &Scheduler{
		world:    world,
		systems:  make([]System, 0),
		commands: newCommands(),
	}
}

// World returns the world the scheduler drives.
func (s *Scheduler) World() *World {
	return s.world
}

// Commands returns the buffer flushed at the end of every frame.
func (s *Scheduler) Commands() *Commands {
	return s.commands
}

// Register adds a system to the scheduler and to the world's system registry.
// A system whose name is already bound to a different system is rejected.
func (s *Scheduler) Register(system System) bool {
	if !s.world.systems.adopt(system) {
		return false
	}
	if slices.Contains(s.systems, system) {
		s.world.logger.Warn("ecs: system already scheduled", "system", system.Name())
		return false
	}
	s.systems = append(s.systems, system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        system.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
	return true
}

// Post queues an external event (input, window) for the next frame's
// HandleEvents phase.
func (s *Scheduler) Post(ev Event) {
	s.inbox = append(s.inbox, ev)
}

// Once executes a single frame with the given delta time in seconds.
func (s *Scheduler) Once(dt float64) {
	w := s.world
	elapsed := make([]time.Duration, len(s.systems))

	w.Flush()
	w.events.Dispatch()

	inbox := s.inbox
	s.inbox = nil
	for i, system := range s.systems {
		start := time.Now()
		for _, ev := range inbox {
			system.HandleEvents(ev)
		}
		elapsed[i] += time.Since(start)
	}

	step := w.fixedStep.Seconds()
	s.accumulator += dt
	steps := 0
	for s.accumulator >= step && steps < w.maxFixedSteps {
		frame := newUpdateFrame(step, w, s.commands)
		frame.Step = steps
		for i, system := range s.systems {
			start := time.Now()
			system.UpdateFixed(frame)
			elapsed[i] += time.Since(start)
		}
		s.accumulator -= step
		steps++
	}
	if s.accumulator >= step {
		s.accumulator = math.Mod(s.accumulator, step)
	}
	s.fixedSteps += int64(steps)

	frame := newUpdateFrame(dt, w, s.commands)
	for i, system := range s.systems {
		start := time.Now()
		system.UpdateVariable(frame)
		elapsed[i] += time.Since(start)
	}
	for i, system := range s.systems {
		start := time.Now()
		system.Draw(frame)
		elapsed[i] += time.Since(start)
	}

	w.Cleanup()
	s.commands.Flush(w)
	s.frames++

	for i, duration := range elapsed {
		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		FixedSteps:  s.fixedSteps,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			Members:        s.systems[i].Members().Len(),
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
