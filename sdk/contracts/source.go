package contracts

import "context"

// Record is one data row keyed by the header row of the table it came from.
// Values are raw cell text; coercion happens at parse time, not here.
type Record map[string]string

// RecordSource defines a tabular data source that can be polled repeatedly.
// Implementations must tolerate being fetched every few seconds indefinitely.
type RecordSource interface {
	Fetch(ctx context.Context) ([]Record, error) // Fetches the full current row set.
	Close() error                                // Closes the source and releases resources.
}
