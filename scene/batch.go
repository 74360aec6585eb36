package scene

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FrameResult is the outcome of one frame of a batch.
type FrameResult struct {
	Report *Report
	Err    error
}

// FrameFunc produces the report for frame i.
type FrameFunc func(ctx context.Context, i int) (*Report, error)

// ProcessFrames runs fn for frames 0..n-1 on at most workers goroutines and
// returns the results in frame order.
//
// A frame that fails is recorded in its FrameResult and does not stop the
// others. Cancelling ctx stops scheduling new frames and returns ctx.Err().
//
// Arguments:
// - ctx: Context for cancellation.
// - n: Number of frames.
// - workers: Concurrency limit; values below 1 mean one worker.
// - fn: Per-frame work, usually load + Engine.Process.
//
// Returns:
// - []FrameResult: One entry per frame, in order.
// - error: ctx.Err() if the batch was cancelled.
func ProcessFrames(ctx context.Context, n, workers int, fn FrameFunc) ([]FrameResult, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]FrameResult, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report, err := fn(gctx, i)
			results[i] = FrameResult{Report: report, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}
	return results, nil
}
