package contracts

import "context"

// IHistoryProvider reports when a file first entered version control.
type IHistoryProvider interface {
	// EarliestYear returns the year of the earliest commit touching path, or an
	// error wrapping history.ErrNoHistory when the file has no commits.
	EarliestYear(ctx context.Context, path string) (int, error)
}
