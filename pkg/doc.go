// Package pkg provides the core libraries of depchecker.
//
// # Overview
//
// depchecker compares the requirements a Python distribution declares with
// the names its sources use. The pkg directory is organized as follows:
//
//  1. [dotted] - Dotted names and the containment rules between them
//  2. [metadata] - Requirements from *.egg-info or pyproject.toml
//  3. [config] - User mappings and ignored packages
//  4. [scan] - Extraction of used names from sources
//  5. [imports] - The reconciliation engine and its five queries
//  6. [checker] - Orchestration (metadata, config, scan, database)
//  7. [report] - Text, JSON, YAML, DOT and SVG output
//
// Supporting packages: [cache] (content addressed scan cache),
// [observability] (hooks), [errors] (coded errors) and [buildinfo].
//
// # Architecture
//
//	setup.py / *.egg-info / pyproject.toml
//	         ↓
//	    [metadata] + [config]
//	         ↓
//	    [scan] adapters ──→ [imports] database
//	         ↓
//	    [report]
//
// # Quick Start
//
//	runner := checker.NewRunner(nil, logger)
//	res, err := runner.Run(ctx, "path/to/distribution")
//	if err != nil {
//	    return err
//	}
//	rep := report.FromResult(res)
//	err = report.Write(ctx, os.Stdout, rep, report.FormatText, report.Options{})
//	os.Exit(rep.ExitCode())
package pkg
