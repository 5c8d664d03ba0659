// Package internal contains the core implementation packages for contentvet.
//
// This package follows Go's internal package convention, making these
// packages unavailable for import by external modules while providing
// all the core functionality for the contentvet CLI tool.
//
// # Package Organization
//
// The internal packages are organized by functional domain:
//
//   - types: shared result, issue, and content-type definitions
//   - patterns: the security pattern catalog and category priorities
//   - scanner: pattern matching with priority ordering and line location
//   - schema: frontmatter extraction, metadata schemas, structural limits
//   - validator: per-file and batch orchestration of both validation passes
//   - performance: scan timing aggregation and regression thresholds
//   - config: configuration management via viper
//   - logging: structured logging on top of log/slog
//   - errors: structured error types with stable codes
//
// # Inter-Package Communication
//
// types sits at the bottom of the dependency graph; every other package may
// import it and it imports nothing internal. The validator package is the
// only place where schema findings and scanner findings meet.
package internal
