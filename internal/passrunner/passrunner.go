// Package passrunner implements the Pass Runner (spec.md §4.G): executes
// an ordered group list sequentially, running each group's passes
// concurrently when requested.
package passrunner

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cpgkit/cpgkit/internal/corectx"
	"github.com/cpgkit/cpgkit/internal/cpgerr"
	"github.com/cpgkit/cpgkit/internal/scheduler"
)

// Run executes schedule against tc in order. Within a group, passes run
// concurrently via errgroup when parallel is true and the group has more
// than one pass; the group completes only when every pass in it has
// returned (spec.md §4.G "barrier"). The cooperative cancellation token
// is checked between groups and between passes within a group.
func Run(ctx context.Context, schedule []scheduler.Group, tc corectx.TranslationContext, parallel bool) error {
	for i, group := range schedule {
		if tc.Cancelled() {
			return cpgerr.ErrCancelled
		}

		start := time.Now()
		var err error
		if parallel && len(group) > 1 {
			err = runGroupParallel(ctx, group, tc)
		} else {
			err = runGroupSequential(ctx, group, tc)
		}
		slog.Info("pass.group.timing", "group", i, "size", len(group), "elapsed", time.Since(start))
		if err != nil {
			return err
		}
	}
	return nil
}

func runGroupSequential(ctx context.Context, group scheduler.Group, tc corectx.TranslationContext) error {
	for _, p := range group {
		if tc.Cancelled() {
			return cpgerr.ErrCancelled
		}
		start := time.Now()
		err := p.Accept(ctx, tc)
		slog.Info("pass.timing", "pass", p.Descriptor().Name, "elapsed", time.Since(start))
		if err != nil {
			return err
		}
	}
	return nil
}

func runGroupParallel(ctx context.Context, group scheduler.Group, tc corectx.TranslationContext) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, p := range group {
		p := p
		g.Go(func() error {
			start := time.Now()
			err := p.Accept(gctx, tc)
			slog.Info("pass.timing", "pass", p.Descriptor().Name, "elapsed", time.Since(start))
			return err
		})
	}
	return g.Wait()
}
