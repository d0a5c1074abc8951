// Package report turns a populated [imports.Database] into the findings a
// user acts on, and writes them in several formats.
//
// # Sections
//
// A [Report] has five sections, always in this order:
//
//   - Missing requirements
//   - Missing test requirements
//   - Unneeded requirements
//   - Requirements that should be test requirements
//   - Unneeded test requirements
//
// Any finding makes [Report.ExitCode] return 1.
//
// # Formats
//
// [Write] supports the plain text layout known from z3c.dependencychecker,
// JSON and YAML documents for tooling, and a Graphviz reconciliation graph
// either as DOT source or rendered to SVG.
package report
