package driver

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"rsl/internal/engine"
	"rsl/internal/observ"
	"rsl/internal/source"
)

// IndexOptions configure workspace indexing.
type IndexOptions struct {
	Engine     engine.Options
	Extensions []string
	Jobs       int        // <= 0: GOMAXPROCS
	Cache      *DiskCache // nil: без кэша
	Progress   ProgressSink
}

// IndexResult holds one summary per discovered file, in path order.
type IndexResult struct {
	Root      string
	Files     []FileSummary
	CacheHits int
	Timer     *observ.Timer
}

// IndexDir discovers and indexes every RSL file under root.
func IndexDir(ctx context.Context, root string, opts IndexOptions) (*IndexResult, error) {
	timer := observ.NewTimer()
	idx := timer.Begin("discover")
	emit(opts.Progress, Event{Stage: StageDiscover, Status: StatusWorking})
	files, err := Discover(root, opts.Extensions)
	timer.End(idx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		emit(opts.Progress, Event{Stage: StageDiscover, Status: StatusError, Err: err})
		return nil, fmt.Errorf("discover %s: %w", root, err)
	}
	emit(opts.Progress, Event{Stage: StageDiscover, Status: StatusDone})

	idx = timer.Begin("index")
	summaries, hits, err := IndexFiles(ctx, files, opts)
	timer.End(idx, fmt.Sprintf("%d cached", hits))
	if err != nil {
		return nil, err
	}
	return &IndexResult{Root: root, Files: summaries, CacheHits: hits, Timer: timer}, nil
}

// IndexFiles summarizes files in parallel. The files are split into one
// contiguous chunk per worker; every worker owns its engine. A file that
// cannot be read gets a summary with Error set; only cancellation aborts
// the run.
func IndexFiles(ctx context.Context, files []string, opts IndexOptions) ([]FileSummary, int, error) {
	if len(files) == 0 {
		return nil, 0, nil
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusQueued})
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	jobs = min(jobs, len(files))
	chunk := (len(files) + jobs - 1) / jobs

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]FileSummary, len(files))
	hits := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for start := 0; start < len(files); start += chunk {
		end := min(start+chunk, len(files))
		g.Go(func() error {
			eng, err := engine.New(opts.Engine)
			if err != nil {
				return err
			}
			w := worker{eng: eng, cache: opts.Cache, sink: opts.Progress}
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i], hits[i] = w.index(files[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	n := 0
	for _, hit := range hits {
		if hit {
			n++
		}
	}
	return results, n, nil
}

type worker struct {
	eng   *engine.Engine
	cache *DiskCache
	sink  ProgressSink
}

// index returns the summary of path and whether it came from the cache.
func (w worker) index(path string) (FileSummary, bool) {
	started := time.Now()
	uri := source.PathToURI(path)
	fail := func(err error) (FileSummary, bool) {
		emit(w.sink, Event{File: path, Stage: StageParse, Status: StatusError, Err: err, Elapsed: time.Since(started)})
		return FileSummary{Path: path, URI: uri, Error: err.Error()}, false
	}

	// #nosec G304 -- path comes from Discover or the command line
	content, err := os.ReadFile(path)
	if err != nil {
		return fail(err)
	}
	key := CacheKey(path, content)

	if w.cache != nil {
		emit(w.sink, Event{File: path, Stage: StageCache, Status: StatusWorking})
		var cached FileSummary
		ok, err := w.cache.Get(key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("cache read failed")
		}
		if ok {
			emit(w.sink, Event{File: path, Stage: StageCache, Status: StatusCached, Elapsed: time.Since(started)})
			return cached, true
		}
	}

	emit(w.sink, Event{File: path, Stage: StageParse, Status: StatusWorking})
	// файл мог уже попасть в движок как чей-то импорт: перечитываем,
	// чтобы сводка не зависела от порядка обхода
	id, err := w.eng.LoadFile(path)
	if err != nil {
		return fail(err)
	}
	sum, ok := summarize(w.eng, path, id)
	if !ok {
		return fail(errors.New("no tree after parse"))
	}
	sum.Hash = key
	if err := w.cache.Put(key, &sum); err != nil {
		log.Warn().Err(err).Str("file", path).Msg("cache write failed")
	}
	emit(w.sink, Event{File: path, Stage: StageParse, Status: StatusDone, Elapsed: time.Since(started)})
	return sum, false
}
