package profiler

import (
	"fmt"
	"log"
	"runtime"
	"sync"
	"time"
)

// gcPauseRing is the length of runtime.MemStats.PauseNs.
const gcPauseRing = 256

// Stats is one interval's worth of frame and memory measurements.
type Stats struct {
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	SysMB       float64
	GCCount     uint32
	LastPauseUs uint64
	MaxPauseUs  uint64
}

// String formats the stats as a single log line.
func (s Stats) String() string {
	return fmt.Sprintf("FPS: %.2f | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
		s.FPS, s.HeapMB, s.AllocRateMB, s.GCCount, s.LastPauseUs, s.MaxPauseUs, s.SysMB)
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Stats are logged once per interval, followed by the output of an optional
// status reporter (e.g. the camera pose). Tick is called from the render loop
// while Last and FPS may be read from any goroutine.
type Profiler struct {
	mu *sync.Mutex

	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	reporter       func() string
	last           Stats
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		mu:             &sync.Mutex{},
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
}

// SetInterval changes how often statistics are logged.
//
// Parameters:
//   - interval: time between log lines (values <= 0 are ignored)
func (p *Profiler) SetInterval(interval time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if interval > 0 {
		p.updateInterval = interval
	}
}

// SetReporter registers a function whose output is appended to every stats line.
// The reporter runs without the profiler lock held, so it may call back into the profiler.
//
// Parameters:
//   - reporter: function returning a one-line status (or nil to disable)
func (p *Profiler) SetReporter(reporter func() string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reporter = reporter
}

// Last returns the stats of the most recently completed interval.
func (p *Profiler) Last() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

// FPS returns the frame rate measured over the last completed interval.
//
// Returns:
//   - float64: frames per second, 0 before the first interval completes
func (p *Profiler) FPS() float64 {
	return p.Last().FPS
}

// Tick should be called once per frame. Once the update interval has elapsed the
// interval's stats are recorded and logged.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	p.frameCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		p.mu.Unlock()
		return false
	}
	stats := p.sample(elapsed)
	p.last = stats
	p.frameCount = 0
	p.lastTime = now
	reporter := p.reporter
	p.mu.Unlock()

	line := stats.String()
	if reporter != nil {
		line += " | " + reporter()
	}
	log.Printf("[Profiler] %s", line)
	return true
}

// sample reads the runtime memory statistics for the interval that just ended.
// Caller must hold the mutex.
func (p *Profiler) sample(elapsed time.Duration) Stats {
	runtime.ReadMemStats(&p.memStats)
	seconds := elapsed.Seconds()

	s := Stats{
		FPS:         float64(p.frameCount) / seconds,
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
		AllocRateMB: float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:     p.memStats.NumGC,
	}

	if s.GCCount > 0 {
		s.LastPauseUs = p.memStats.PauseNs[(s.GCCount-1)%gcPauseRing] / 1000
		start := p.lastGCCount
		if s.GCCount-start > gcPauseRing {
			start = s.GCCount - gcPauseRing
		}
		for i := start; i < s.GCCount; i++ {
			if pause := p.memStats.PauseNs[i%gcPauseRing] / 1000; pause > s.MaxPauseUs {
				s.MaxPauseUs = pause
			}
		}
	}

	p.lastGCCount = s.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return s
}
