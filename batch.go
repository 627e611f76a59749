package manifest

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/manifest/format"
)

// FileResult is the outcome of one file in a batch.
type FileResult struct {
	Filename string
	Result   *Result
	Warnings []Warning
	Err      error
}

// ExtractFiles runs an independent pipeline per file, at most limit at a
// time (limit <= 0 means no limit). Every file gets its own Extractor
// derived from base, so base carries the shared configuration; a nil base
// uses the defaults. Results are returned in input order. A failing file
// sets its Err and does not stop the others. Once ctx is done no further
// file is started and the remaining entries carry ctx.Err().
//
// Example:
//
//	base := manifest.Open("").Preset("invoice")
//	for _, fr := range manifest.ExtractFiles(ctx, base, 4, files...) {
//	    if fr.Err != nil {
//	        log.Printf("%s: %v", fr.Filename, fr.Err)
//	    }
//	}
func ExtractFiles(ctx context.Context, base *Extractor, limit int, filenames ...string) []FileResult {
	if base == nil {
		base = Open("")
	}

	results := make([]FileResult, len(filenames))
	g := new(errgroup.Group)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, name := range filenames {
		results[i].Filename = name
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			res, warnings, err := base.withFile(name).Result()
			results[i].Result = res
			results[i].Warnings = warnings
			results[i].Err = err
			if err != nil {
				base.logger.Warn("file failed", zap.String("source", name), zap.Error(err))
			}
			return nil
		})
	}

	// Goroutines never return an error; failures live in results.
	_ = g.Wait()
	return results
}

// withFile returns a copy of e reading filename, keeping its configuration.
func (e *Extractor) withFile(filename string) *Extractor {
	n := e.clone()
	n.filename = filename
	n.source = nil
	n.doc = nil
	n.format = format.Unknown
	return n
}
