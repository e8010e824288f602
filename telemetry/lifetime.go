package telemetry

// LifetimeStats tracks one bird over the run.
type LifetimeStats struct {
	Kills     int // predators only
	Dead      bool
	DeathTick int32
	Cause     EventType
}

// LifetimeTracker holds per-bird lifetime stats by bird index.
type LifetimeTracker struct {
	stats []LifetimeStats
}

// NewLifetimeTracker creates a tracker for n birds.
func NewLifetimeTracker(n int) *LifetimeTracker {
	return &LifetimeTracker{stats: make([]LifetimeStats, n)}
}

// Record applies a death event. Events for unknown indices are ignored.
func (lt *LifetimeTracker) Record(ev Event) {
	if ev.Bird >= 0 && ev.Bird < len(lt.stats) {
		s := &lt.stats[ev.Bird]
		s.Dead = true
		s.DeathTick = ev.Tick
		s.Cause = ev.Type
	}
	if ev.Type == EventKill && ev.Killer >= 0 && ev.Killer < len(lt.stats) {
		lt.stats[ev.Killer].Kills++
	}
}

// Get returns the stats of bird i.
func (lt *LifetimeTracker) Get(i int) LifetimeStats {
	if i < 0 || i >= len(lt.stats) {
		return LifetimeStats{}
	}
	return lt.stats[i]
}

// TopHunter returns the bird with the most kills, lowest index first on
// ties. Returns false when nobody has killed yet.
func (lt *LifetimeTracker) TopHunter() (int, int, bool) {
	best, kills := -1, 0
	for i, s := range lt.stats {
		if s.Kills > kills {
			best, kills = i, s.Kills
		}
	}
	return best, kills, best >= 0
}

// Reset clears every bird's stats.
func (lt *LifetimeTracker) Reset() {
	clear(lt.stats)
}
