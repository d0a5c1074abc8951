// Package checker runs a complete dependency check of one distribution:
// it reads the metadata and user configuration, scans the sources and
// collects everything in an [imports.Database] ready to be queried.
package checker

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depchecker/pkg/cache"
	"github.com/matzehuels/depchecker/pkg/config"
	"github.com/matzehuels/depchecker/pkg/dotted"
	"github.com/matzehuels/depchecker/pkg/errors"
	"github.com/matzehuels/depchecker/pkg/imports"
	"github.com/matzehuels/depchecker/pkg/metadata"
	"github.com/matzehuels/depchecker/pkg/observability"
	"github.com/matzehuels/depchecker/pkg/scan"
)

// Runner encapsulates a check with caching.
//
// The Runner keeps no per-run state, so one Runner may check several
// distributions in turn.
type Runner struct {
	Cache    cache.Cache
	Logger   *log.Logger
	Scanners []scan.Scanner
}

// NewRunner creates a runner scanning with every default scanner.
// If cache is nil, a NullCache is used (caching disabled).
// If logger is nil, log.Default() is used.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	src := scan.NewSource(scan.DefaultSourceSize)
	scanners := scan.All(src)
	for i, s := range scanners {
		scanners[i] = scan.NewCached(s, c, src)
	}
	return &Runner{
		Cache:    c,
		Logger:   logger,
		Scanners: scanners,
	}
}

// Result is the outcome of a check.
type Result struct {
	Package *metadata.Package
	Config  *config.Config
	DB      *imports.Database
	Stats   Stats
}

// Stats describes the work done by a check.
type Stats struct {
	Scanners  []ScannerStats
	Files     int
	Skipped   int
	Tokens    int
	CacheHits int
	Duration  time.Duration
}

// ScannerStats describes the work of one scanner.
type ScannerStats struct {
	Name      string
	Files     int
	Skipped   int
	Tokens    int
	CacheHits int
	Duration  time.Duration
}

// Run checks the distribution rooted at root.
func (r *Runner) Run(ctx context.Context, root string) (*Result, error) {
	start := time.Now()
	r.Logger.Debug("using path", "path", root)

	pkg, err := metadata.Load(root)
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	r.Logger.Debug("package dir found", "dir", pkg.Dir, "source", pkg.Source)
	r.Logger.Debug("package name", "name", pkg.Name)

	cfg, err := config.Load(pkg.Root)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	for _, w := range cfg.Warnings {
		r.Logger.Warn(w)
	}

	db := imports.New(r.Logger)
	db.SetOwnName(pkg.Name)
	db.AddRequirements(slices.Values(pkg.Requirements))
	for _, extra := range pkg.Extras {
		db.AddExtraRequirements(extra.Name, slices.Values(extra.Requirements))
	}
	cfg.Apply(db)

	result := &Result{Package: pkg, Config: cfg, DB: db}
	for _, s := range r.Scanners {
		st, err := r.runScanner(ctx, s, pkg.TopLevel, db)
		if err != nil {
			return nil, err
		}
		result.Stats.Scanners = append(result.Stats.Scanners, st)
		result.Stats.Files += st.Files
		result.Stats.Skipped += st.Skipped
		result.Stats.Tokens += st.Tokens
		result.Stats.CacheHits += st.CacheHits
	}
	result.Stats.Duration = time.Since(start)

	r.Logger.Debug("scanned sources",
		"package", pkg.Name,
		"files", result.Stats.Files,
		"imports", result.Stats.Tokens,
		"cache_hits", result.Stats.CacheHits,
		"duration", result.Stats.Duration)

	return result, nil
}

// cacheInfoScanner is implemented by scanners reporting cache hits.
type cacheInfoScanner interface {
	ScanWithCacheInfo(ctx context.Context, u scan.Unit) (iter.Seq[dotted.Name], bool, error)
}

func (r *Runner) runScanner(ctx context.Context, s scan.Scanner, top string, db *imports.Database) (st ScannerStats, err error) {
	start := time.Now()
	st.Name = s.Name()

	units, err := s.Discover(top)
	if err != nil {
		return st, fmt.Errorf("%s: discover: %w", s.Name(), err)
	}

	hooks := observability.Scan()
	hooks.OnScanStart(ctx, s.Name(), len(units))
	defer func() {
		st.Duration = time.Since(start)
		hooks.OnScanComplete(ctx, st.Name, st.Files, st.Tokens, st.Duration, err)
	}()
	r.Logger.Debug("starting scanner", "scanner", s.Name(), "files", len(units))

	for _, u := range units {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		r.Logger.Debug("searching dependencies", "scanner", s.Name(), "file", u.Path)

		names, hit, err := scanUnit(ctx, s, u)
		if errors.Is(err, errors.ErrCodeParse) {
			r.Logger.Warn("could not parse file, skipping", "scanner", s.Name(), "file", u.Path, "err", errors.UserMessage(err))
			hooks.OnFileError(ctx, s.Name(), u.Path, err)
			st.Skipped++
			continue
		}
		if err != nil {
			return st, fmt.Errorf("%s: %w", s.Name(), err)
		}

		st.Files++
		if hit {
			st.CacheHits++
		}
		st.Tokens += db.AddImports(names)
	}
	return st, nil
}

func scanUnit(ctx context.Context, s scan.Scanner, u scan.Unit) (iter.Seq[dotted.Name], bool, error) {
	if c, ok := s.(cacheInfoScanner); ok {
		return c.ScanWithCacheInfo(ctx, u)
	}
	names, err := s.Scan(ctx, u)
	return names, false, err
}
