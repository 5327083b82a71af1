package cache

// Statistics tracks aggregate cache performance counters. Every counter is
// monotonically non-decreasing and updated exactly once per access.
type Statistics struct {
	Accesses  uint64
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// RecordAccess records the outcome of one access.
func (s *Statistics) RecordAccess(hit, eviction bool) {
	s.Accesses++
	if hit {
		s.Hits++
	} else {
		s.Misses++
	}
	if eviction {
		s.Evictions++
	}
}

// HitRate returns hits/accesses, or 0 before the first access.
func (s *Statistics) HitRate() float64 {
	if s.Accesses == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Accesses)
}

// MissRate returns misses/accesses, or 0 before the first access.
func (s *Statistics) MissRate() float64 {
	if s.Accesses == 0 {
		return 0
	}
	return float64(s.Misses) / float64(s.Accesses)
}

// StatsSnapshot is the wire form of the statistics.
type StatsSnapshot struct {
	Accesses  uint64  `json:"accesses"`
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
	MissRate  float64 `json:"miss_rate"`
}

// Snapshot captures the current counters and derived rates.
func (s *Statistics) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Accesses:  s.Accesses,
		Hits:      s.Hits,
		Misses:    s.Misses,
		Evictions: s.Evictions,
		HitRate:   s.HitRate(),
		MissRate:  s.MissRate(),
	}
}
