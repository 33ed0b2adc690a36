package balance

import (
	"context"
	"errors"

	"github.com/etnz/balance/logger"
	"golang.org/x/sync/errgroup"
)

// Pipeline fetches and normalizes the balances of one provider.
type Pipeline interface {
	Provider() Provider
	Balances(ctx context.Context) ([]Record, error)
}

// Snapshot is the outcome of one refresh cycle.
type Snapshot struct {
	Records Records            // in pipeline order, then provider order
	Errors  map[Provider]error // per failing provider
	Failed  []Provider         // failing providers, in pipeline order
}

// Err joins the errors of every failing provider in pipeline order, nil if
// none failed.
func (s Snapshot) Err() error {
	var errs error
	for _, p := range s.Failed {
		errs = errors.Join(errs, s.Errors[p])
	}
	return errs
}

// Refresh runs every pipeline concurrently. A failing provider does not
// prevent the others from contributing their records.
func Refresh(ctx context.Context, pipelines ...Pipeline) Snapshot {
	log := logger.FromContext(ctx)
	results := make([][]Record, len(pipelines))
	failures := make([]error, len(pipelines))

	var g errgroup.Group
	for i, p := range pipelines {
		g.Go(func() error {
			records, err := p.Balances(ctx)
			if err != nil {
				log.Warn().Str("provider", string(p.Provider())).Err(err).Msg("refresh failed")
				failures[i] = err
				return nil
			}
			log.Info().Str("provider", string(p.Provider())).Int("records", len(records)).Msg("refreshed")
			results[i] = records
			return nil
		})
	}
	_ = g.Wait() // goroutines report through failures

	var snap Snapshot
	for i, records := range results {
		snap.Records = append(snap.Records, records...)
		if err := failures[i]; err != nil {
			if snap.Errors == nil {
				snap.Errors = make(map[Provider]error)
			}
			p := pipelines[i].Provider()
			if prev, seen := snap.Errors[p]; seen {
				err = errors.Join(prev, err)
			} else {
				snap.Failed = append(snap.Failed, p)
			}
			snap.Errors[p] = err
		}
	}
	return snap
}
