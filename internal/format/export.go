package format

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/handiism/movieshelf/internal/model"
)

// Target is one destination of an export.
type Target struct {
	Format Format
	Path   string
}

// TargetFromPath builds a Target, inferring the format from the extension.
func TargetFromPath(path string) (Target, error) {
	f, err := FromPath(path)
	if err != nil {
		return Target{}, err
	}
	return Target{Format: f, Path: path}, nil
}

// ExportAll saves movies to every target concurrently.
//
// Each target is written atomically, so a failure leaves that destination
// untouched; targets that already finished keep their new content. The
// first error cancels the targets still waiting for their lock.
func ExportAll(ctx context.Context, reg *Registry, movies []model.Movie, targets []Target) error {
	adapters := make([]Adapter, len(targets))
	for i, t := range targets {
		a, err := reg.Adapter(t.Format)
		if err != nil {
			return err
		}
		adapters[i] = a
	}

	g, ctx := errgroup.WithContext(ctx)
	for i, t := range targets {
		g.Go(func() error {
			if err := adapters[i].Save(ctx, t.Path, movies); err != nil {
				return fmt.Errorf("export %s: %w", t.Format, err)
			}
			return nil
		})
	}
	return g.Wait()
}
