// Package shared holds cross-cutting utilities that belong to no specific
// layer of the codebase.
//
// Its only current component is testutil, which provides the in-memory slog
// handler and dataset fixtures used by package tests. Code here must stay
// free of business logic and of dependencies on other internal packages.
package shared
