package ecs

import (
	"testing"
	"time"
)

type counterProp struct {
	N int
}

type statSystem struct {
	BaseSystem
	executeCount int
	sleepDur     time.Duration
}

func newStatSystem(name string, sleep time.Duration) *statSystem {
	return &statSystem{BaseSystem: NewBaseSystem(name), sleepDur: sleep}
}

func (s *statSystem) AddProperties(store *PropertyStore) {
	Ensure(store, s.Name(), counterProp{})
}

func (s *statSystem) UpdateVariable(frame *UpdateFrame) {
	s.executeCount++
	if s.sleepDur > 0 {
		time.Sleep(s.sleepDur)
	}
}

func TestWorldStats(t *testing.T) {
	w := NewWorld()

	stats := w.CollectStats()
	if stats.ObjectCount != 0 {
		t.Errorf("expected 0 objects, got %d", stats.ObjectCount)
	}
	if stats.TemplateCount != 0 {
		t.Errorf("expected 0 templates, got %d", stats.TemplateCount)
	}

	alpha := newStatSystem("alpha", 0)
	beta := newStatSystem("beta", 0)

	rock := w.DefineTemplate("rock")
	rock.AddSystem(alpha)
	tree := w.DefineTemplate("tree")
	tree.AddSystem(alpha)
	tree.AddSystem(beta)

	rock.MakeInstance()
	rock.MakeInstance()
	doomed := tree.MakeInstance()
	w.NewObject("loose")

	w.Flush()
	w.Destroy(doomed)
	Raise(w.Events(), "noise", 1)

	stats = w.CollectStats()

	if stats.ObjectCount != 4 {
		t.Errorf("expected 4 objects, got %d", stats.ObjectCount)
	}
	if stats.TemplateCount != 2 {
		t.Errorf("expected 2 templates, got %d", stats.TemplateCount)
	}
	if stats.SystemCount != 2 {
		t.Errorf("expected 2 systems, got %d", stats.SystemCount)
	}
	if stats.PendingCleanup != 1 {
		t.Errorf("expected 1 object pending cleanup, got %d", stats.PendingCleanup)
	}
	if stats.PendingEvents != 1 {
		t.Errorf("expected 1 pending event, got %d", stats.PendingEvents)
	}

	if len(stats.TemplateBreakdown) != 2 {
		t.Fatalf("expected 2 template breakdown entries, got %d", len(stats.TemplateBreakdown))
	}
	rockStats := stats.TemplateBreakdown[0]
	if rockStats.Name != "rock" || rockStats.Live != 2 || rockStats.Created != 2 {
		t.Errorf("rock breakdown incorrect: %+v", rockStats)
	}
	treeStats := stats.TemplateBreakdown[1]
	if len(treeStats.Systems) != 2 || treeStats.Systems[1] != "beta" {
		t.Errorf("tree systems incorrect: %+v", treeStats.Systems)
	}
	if len(treeStats.Properties) != 2 {
		t.Errorf("expected tree to carry 2 properties, got %v", treeStats.Properties)
	}

	if len(stats.SystemBreakdown) != 2 {
		t.Fatalf("expected 2 system breakdown entries, got %d", len(stats.SystemBreakdown))
	}
	if stats.SystemBreakdown[0].Members != 3 {
		t.Errorf("expected alpha to have 3 members, got %d", stats.SystemBreakdown[0].Members)
	}

	w.Cleanup()
	stats = w.CollectStats()
	if stats.TemplateBreakdown[1].Live != 0 || stats.TemplateBreakdown[1].Created != 1 {
		t.Errorf("tree breakdown after cleanup incorrect: %+v", stats.TemplateBreakdown[1])
	}
}

func TestSchedulerStats(t *testing.T) {
	w := NewWorld()
	scheduler := NewScheduler(w)

	stats := scheduler.GetStats()
	if stats.SystemCount != 0 {
		t.Errorf("expected 0 systems, got %d", stats.SystemCount)
	}
	if stats.TotalExecutions != 0 {
		t.Errorf("expected 0 total executions, got %d", stats.TotalExecutions)
	}

	sys1 := newStatSystem("first", 1*time.Millisecond)
	sys2 := newStatSystem("second", 2*time.Millisecond)
	scheduler.Register(sys1)
	scheduler.Register(sys2)

	o := w.NewObject("subject")
	o.AddSystem(sys1)

	stats = scheduler.GetStats()
	if stats.SystemCount != 2 {
		t.Errorf("expected 2 systems, got %d", stats.SystemCount)
	}

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	scheduler.Once(0.016)

	stats = scheduler.GetStats()

	if stats.TotalExecutions != 6 {
		t.Errorf("expected 6 total executions (2 systems * 3 frames), got %d", stats.TotalExecutions)
	}
	if stats.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", stats.Frames)
	}

	if len(stats.Systems) != 2 {
		t.Fatalf("expected 2 system stats, got %d", len(stats.Systems))
	}
	if stats.Systems[0].Name != "first" || stats.Systems[1].Name != "second" {
		t.Errorf("unexpected system names: %q, %q", stats.Systems[0].Name, stats.Systems[1].Name)
	}
	if stats.Systems[0].Members != 1 {
		t.Errorf("expected first to report 1 member, got %d", stats.Systems[0].Members)
	}

	for _, sysStats := range stats.Systems {
		if sysStats.ExecutionCount != 3 {
			t.Errorf("expected 3 executions, got %d", sysStats.ExecutionCount)
		}

		if sysStats.MinDuration == 0 {
			t.Errorf("expected non-zero min duration")
		}

		if sysStats.MaxDuration == 0 {
			t.Errorf("expected non-zero max duration")
		}

		if sysStats.AvgDuration == 0 {
			t.Errorf("expected non-zero avg duration")
		}

		if sysStats.LastDuration == 0 {
			t.Errorf("expected non-zero last duration")
		}

		if sysStats.TotalDuration == 0 {
			t.Errorf("expected non-zero total duration")
		}

		if sysStats.MinDuration > sysStats.AvgDuration {
			t.Errorf("min duration (%v) should be <= avg duration (%v)", sysStats.MinDuration, sysStats.AvgDuration)
		}

		if sysStats.AvgDuration > sysStats.MaxDuration {
			t.Errorf("avg duration (%v) should be <= max duration (%v)", sysStats.AvgDuration, sysStats.MaxDuration)
		}
	}

	if sys1.executeCount != 3 {
		t.Errorf("expected sys1 to execute 3 times, got %d", sys1.executeCount)
	}

	if sys2.executeCount != 3 {
		t.Errorf("expected sys2 to execute 3 times, got %d", sys2.executeCount)
	}
}
