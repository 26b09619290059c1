package ecs

// WorldStats is a snapshot of a World's population.
type WorldStats struct {
	ObjectCount       int
	TemplateCount     int
	SystemCount       int
	PendingCleanup    int
	PendingEvents     int
	TemplateBreakdown []TemplateStats
	SystemBreakdown   []MembershipStats
}

// TemplateStats describes one template.
type TemplateStats struct {
	Name       string
	Properties []string
	Systems    []string
	Live       int
	Created    int
}

// MembershipStats describes one system's member collection.
type MembershipStats struct {
	Name    string
	Members int
	Pending int
}

// CollectStats gathers population statistics. Intended for tooling; it walks
// every live object.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		ObjectCount:   len(w.live),
		TemplateCount: w.templates.Len(),
		SystemCount:   w.systems.Len(),
		PendingEvents: w.events.Pending(),
	}

	live := make(map[string]int)
	for _, o := range w.live {
		if o.pendingCleanup {
			stats.PendingCleanup++
		}
		if o.template != "" {
			live[o.template]++
		}
	}

	for _, t := range w.templates.order {
		systems := make([]string, len(t.systems))
		for i, s := range t.systems {
			systems[i] = s.Name()
		}
		stats.TemplateBreakdown = append(stats.TemplateBreakdown, TemplateStats{
			Name:       t.name,
			Properties: t.props.Names(),
			Systems:    systems,
			Live:       live[t.name],
			Created:    t.instances,
		})
	}

	for _, s := range w.systems.order {
		stats.SystemBreakdown = append(stats.SystemBreakdown, MembershipStats{
			Name:    s.Name(),
			Members: s.Members().Len(),
			Pending: s.Members().Pending(),
		})
	}

	return stats
}
