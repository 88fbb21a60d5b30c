package storage

import "swapScope/internal/model"

// Storage defines a sink for quote results.
type Storage interface {
	PutResultBatch(results []model.QuoteResult) error
}

// ErrorSink receives requests that could not be quoted.
type ErrorSink interface {
	PutErrorBatch(errs []model.QuoteError) error
}
