package search

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/smartsearch/core"
)

// SearchBatch runs independent searches over the same people on a bounded
// worker pool. Results are returned in query order. Cancelling ctx stops
// further queries from being submitted; queries already running finish
// before ctx.Err() is returned.
func (s *Searcher) SearchBatch(ctx context.Context, queries []string, people []*core.Person) ([][]*core.SearchResult, error) {
	results := make([][]*core.SearchResult, len(queries))
	if len(queries) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	parser := s.Parser(KnownOrgs(people))

	var wg sync.WaitGroup
	for i, query := range queries {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			results[i] = s.Execute(parser.Parse(query), people)
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			s.logger.Error("error submitting search", "query", query, "err", err)
			return nil, err
		}
	}
	wg.Wait()

	s.logger.Debug("batch complete", "queries", len(queries))
	return results, nil
}
