package mdmacro

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/itsatony/go-cuserr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BuildResult lists what BuildSite wrote.
type BuildResult struct {
	// Pages are the rendered page names, in storage order.
	Pages []string

	// Outputs are the written file paths, index-aligned with Pages.
	Outputs []string
}

// BuildSite renders every page in the renderer's storage into outDir,
// using at most jobs concurrent workers (DefaultBuildJobs when jobs <= 0).
// "dir/page.md" is written to "<outDir>/dir/page.html".
// The first failure cancels the remaining pages and is returned.
func BuildSite(ctx context.Context, renderer *PageRenderer, outDir string, jobs int) (*BuildResult, error) {
	if renderer.storage == nil {
		return nil, NewConfigError(ErrMsgNilPageStorage, FieldStorageDriver, "", nil)
	}
	if jobs <= 0 {
		jobs = DefaultBuildJobs
	}

	names, err := renderer.storage.List(ctx)
	if err != nil {
		return nil, err
	}

	logger := renderer.logger
	logger.Info(LogMsgBuildStart, zap.Int(LogFieldCount, len(names)), zap.Int(LogFieldJobs, jobs))

	// each worker owns one index
	outputs := make([]string, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(names))))

	for i, name := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			page, err := renderer.Render(gctx, name)
			if err != nil {
				return err
			}

			out := BuildOutputPath(outDir, name)
			if err := WritePage(out, page.HTML); err != nil {
				return err
			}
			outputs[i] = out

			logger.Debug(LogMsgBuildPageWritten,
				zap.String(LogFieldPage, name),
				zap.String(LogFieldPath, out),
			)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	logger.Info(LogMsgBuildComplete, zap.Int(LogFieldCount, len(names)))
	return &BuildResult{Pages: names, Outputs: outputs}, nil
}

// BuildOutputPath maps a page name to its output file under outDir.
func BuildOutputPath(outDir, name string) string {
	rel := strings.TrimSuffix(name, PageExtension) + BuildOutputExtension
	return filepath.Join(outDir, filepath.FromSlash(rel))
}

// WritePage writes rendered HTML to path, creating parent directories.
func WritePage(path, html string) error {
	if err := os.MkdirAll(filepath.Dir(path), FilesystemDirPermissions); err != nil {
		return cuserr.WrapStdError(err, ErrCodeRender, ErrMsgWriteOutputFailed).
			WithMetadata(MetaKeyPath, path)
	}
	if err := os.WriteFile(path, []byte(html), FilesystemFilePermissions); err != nil {
		return cuserr.WrapStdError(err, ErrCodeRender, ErrMsgWriteOutputFailed).
			WithMetadata(MetaKeyPath, path)
	}
	return nil
}
