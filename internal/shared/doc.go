// Package shared holds test helpers used across packages. The
// testutil subpackage captures slog output in memory so tests can
// assert on messages and attributes.
package shared
