package game

import (
	"runtime"
	"sync"

	"github.com/pthm-cable/birdies/systems"
)

// workerScratch holds per-worker reusable buffers.
type workerScratch struct {
	candidates []int
}

// workChunk is a range of bird indices for one worker.
type workChunk struct {
	start, end int
	rules      *systems.RuleParams
}

// parallelState holds the snapshot, the intents and the worker pool used by
// the compute phase.
type parallelState struct {
	snapshots  []systems.BirdSnapshot
	intents    []systems.Intent
	scratches  []workerScratch
	numWorkers int

	// Worker pool channels
	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newParallelState(workers, capacity int) *parallelState {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	scratches := make([]workerScratch, workers)
	for i := range scratches {
		scratches[i].candidates = make([]int, 0, 64)
	}
	return &parallelState{
		numWorkers: workers,
		scratches:  scratches,
		snapshots:  make([]systems.BirdSnapshot, 0, capacity),
		intents:    make([]systems.Intent, 0, capacity),
	}
}

// startWorkers launches persistent worker goroutines.
func (p *parallelState) startWorkers(g *Game) {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(g, i)
	}
}

// stopWorkers signals all workers to exit and waits for them.
func (p *parallelState) stopWorkers() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	p.running = false
}

// worker processes chunks until stopped.
func (p *parallelState) worker(g *Game, workerID int) {
	defer p.wg.Done()
	scratch := &p.scratches[workerID]

	for {
		select {
		case <-p.stopChan:
			return
		case chunk := <-p.workChan:
			g.computeChunk(chunk.start, chunk.end, scratch, chunk.rules)
			p.doneChan <- struct{}{}
		}
	}
}

// computeIntents evaluates the rules for every bird in the snapshot,
// single-threaded below the configured threshold of live birds and on the
// worker pool above it.
func (g *Game) computeIntents(rules *systems.RuleParams, alive int) {
	n := len(g.parallel.snapshots)
	if cap(g.parallel.intents) < n {
		g.parallel.intents = make([]systems.Intent, n)
	}
	g.parallel.intents = g.parallel.intents[:n]

	if alive < g.cfg.Parallel.Threshold || g.parallel.numWorkers < 2 {
		g.computeChunk(0, n, &g.parallel.scratches[0], rules)
		return
	}
	g.computeParallel(n, rules)
}

// computeParallel dispatches disjoint index ranges to the worker pool and
// waits for all of them.
func (g *Game) computeParallel(n int, rules *systems.RuleParams) {
	p := g.parallel
	if !p.running {
		p.startWorkers(g)
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			continue
		}
		p.workChan <- workChunk{start: start, end: end, rules: rules}
		dispatched++
	}

	for range dispatched {
		<-p.doneChan
	}
}

// computeChunk evaluates birds [i0, i1). It reads only the snapshot and the
// spatial grid and writes only intents in its own range.
func (g *Game) computeChunk(i0, i1 int, scratch *workerScratch, rules *systems.RuleParams) {
	snaps := g.parallel.snapshots
	for i := i0; i < i1; i++ {
		snap := &snaps[i]
		intent := &g.parallel.intents[i]

		if !snap.Alive {
			systems.EvaluateRules(snap, nil, snaps, rules, intent)
			continue
		}

		scratch.candidates = g.grid.QueryInto(scratch.candidates[:0], snap.Pos.X, snap.Pos.Y)
		systems.EvaluateRules(snap, scratch.candidates, snaps, rules, intent)
	}
}
