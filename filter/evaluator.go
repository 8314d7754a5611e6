package filter

import (
	"context"
	"runtime"
	"sync"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		e.workerCount = workers
	}
}

// WithBatchSize sets the chunk size below which evaluation stays sequential
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		e.batchSize = size
	}
}

// ConcurrentEvaluator implements Evaluator with a worker pool
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
	pool        WorkerPool
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   200,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.workerCount <= 0 {
		e.workerCount = 1
	}
	if e.batchSize <= 0 {
		e.batchSize = 1
	}
	e.pool = NewWorkerPool(e.workerCount)
	return e
}

// Evaluate returns the entries matching filter, keeping input order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, entries []Entry) ([]Entry, error) {
	if len(entries) == 0 {
		return []Entry{}, nil
	}
	if len(entries) < e.batchSize {
		return evaluateSequential(filter, entries), nil
	}
	return e.evaluateConcurrent(ctx, filter, entries)
}

// EvaluateBatch evaluates several filters against the same entries
func (e *ConcurrentEvaluator) EvaluateBatch(ctx context.Context, filters map[string]CompiledFilter, entries []Entry) (map[string][]Entry, error) {
	results := make(map[string][]Entry, len(filters))
	for name, f := range filters {
		matches, err := e.Evaluate(ctx, f, entries)
		if err != nil {
			return nil, err
		}
		results[name] = matches
	}
	return results, nil
}

func evaluateSequential(filter CompiledFilter, entries []Entry) []Entry {
	matches := make([]Entry, 0, len(entries)/4)
	for _, entry := range entries {
		if filter.Evaluate(entry) {
			matches = append(matches, entry)
		}
	}
	return matches
}

func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, entries []Entry) ([]Entry, error) {
	chunkSize := max(len(entries)/e.workerCount, e.batchSize)
	chunks := (len(entries) + chunkSize - 1) / chunkSize
	results := make([][]Entry, chunks)

	var wg sync.WaitGroup
	for i := 0; i < chunks; i++ {
		chunk := entries[i*chunkSize : min((i+1)*chunkSize, len(entries))]

		wg.Add(1)
		err := e.pool.Submit(ctx, func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}
			results[i] = evaluateSequential(filter, chunk)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return nil, err
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	matches := make([]Entry, 0, total)
	for _, r := range results {
		matches = append(matches, r...)
	}
	return matches, nil
}

// Stop gracefully stops the evaluator's worker pool
func (e *ConcurrentEvaluator) Stop(ctx context.Context) error {
	return e.pool.Stop(ctx)
}
