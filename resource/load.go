// Copyright 2026 The lightframe-engine Authors. All rights reserved.

package resource

import (
	"context"
	"os"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// LoadAll registers every descriptor in ds.
// Files are read concurrently; resources are then
// created and registered in the order of ds, so handle
// assignment is deterministic.
// A file that cannot be read is a content error: it is
// logged and the loader receives no data.
// LoadAll returns an error only if ctx is done before all
// files are read, in which case nothing is registered.
func (r *Registry) LoadAll(ctx context.Context, ds []Descriptor) ([]Handle, error) {
	data := make([][]byte, len(ds))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range ds {
		if ds[i].Value != nil || ds[i].Data != nil || ds[i].Path == "" {
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			b, err := os.ReadFile(ds[i].Path)
			if err != nil {
				r.log.Error("read failed",
					zap.Stringer("kind", ds[i].Kind),
					zap.String("path", ds[i].Path),
					zap.Error(err))
				b = []byte{}
			}
			data[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hs := make([]Handle, len(ds))
	for i := range ds {
		d := ds[i]
		if data[i] != nil {
			d.Data = data[i]
		}
		hs[i] = r.Register(&d)
	}
	r.log.Info("loaded", zap.Int("count", len(ds)))
	return hs, nil
}
