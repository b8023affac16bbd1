package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/jyotish/pkg/chart"
	jerrors "github.com/matzehuels/jyotish/pkg/errors"
	"github.com/matzehuels/jyotish/pkg/synastry"
)

// Synastry resolves every person concurrently and compares their charts.
// Labels must be unique. Pairs follow input order.
func (r *Runner) Synastry(ctx context.Context, people []Person, refresh bool) (*SynastryResult, error) {
	if err := jerrors.ValidatePeopleCount(len(people)); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(people))
	for _, p := range people {
		if err := jerrors.ValidateLabel(p.Label); err != nil {
			return nil, err
		}
		if seen[p.Label] {
			return nil, jerrors.New(jerrors.ErrCodeInvalidInput, "duplicate label %q", p.Label)
		}
		seen[p.Label] = true
		if err := p.Birth.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Label, err)
		}
	}

	runID := uuid.NewString()
	logger := r.Logger.With("run", runID)

	resolveStart := time.Now()
	members := make([]synastry.Person, len(people))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range people {
		g.Go(func() error {
			pos, err := r.Resolve(gctx, p.Birth, refresh)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Label, err)
			}
			c, err := chart.New(pos)
			if err != nil {
				return fmt.Errorf("%s: %w", p.Label, err)
			}
			members[i] = synastry.Person{Label: p.Label, Chart: c}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}
	logger.Info("resolved charts",
		"people", len(members),
		"duration", time.Since(resolveStart))

	var analysis synastry.Result
	err := stage(ctx, StageSynastry, func() error {
		var err error
		analysis, err = synastry.Compare(members)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("synastry: %w", err)
	}

	logger.Info("compared charts",
		"pairs", analysis.Group.NumPairs,
		"average", analysis.Group.AverageCompatibility)

	return &SynastryResult{
		RunID:    runID,
		Members:  members,
		Analysis: analysis,
	}, nil
}
