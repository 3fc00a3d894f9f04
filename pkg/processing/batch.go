package processing

import (
	"context"

	"github.com/open-teleop/pathscript/pkg/script"
)

// RunBatch queues every request on the pool and collects the results in
// request order. Requests the pool refuses, or that have not finished when
// ctx is done, carry the corresponding error.
func (p *ProcessingPool) RunBatch(ctx context.Context, reqs []script.Request) []*ProcessResult {
	results := make([]*ProcessResult, len(reqs))
	replies := make(chan *ProcessResult, len(reqs))

	pending := 0
	for i, req := range reqs {
		job := &Job{Index: i, Request: req, Reply: replies}
		if err := p.Submit(job); err != nil {
			results[i] = &ProcessResult{Index: i, Error: err}
			continue
		}
		pending++
	}

	for pending > 0 {
		select {
		case res := <-replies:
			results[res.Index] = res
			pending--
		case <-ctx.Done():
			for i := range results {
				if results[i] == nil {
					results[i] = &ProcessResult{Index: i, Error: ctx.Err()}
				}
			}
			return results
		}
	}
	return results
}
