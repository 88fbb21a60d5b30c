package storage

import (
	"fmt"
	"sync"

	"swapScope/internal/model"
)

var (
	_ Storage   = (*JsonlStorage)(nil)
	_ ErrorSink = (*JsonlStorage)(nil)
)

// JsonlStorage appends quote results and quote errors to JSONL files.
type JsonlStorage struct {
	path       string
	errorsPath string
	mu         sync.Mutex
}

// NewJsonlStorage writes results to path and errors to errorsPath. An empty
// errorsPath discards errors.
func NewJsonlStorage(path, errorsPath string) *JsonlStorage {
	return &JsonlStorage{path: path, errorsPath: errorsPath}
}

// PutResultBatch appends a batch of quote results as JSON lines.
func (s *JsonlStorage) PutResultBatch(results []model.QuoteResult) error {
	if len(results) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendLines(s.path, results)
}

// PutErrorBatch appends a batch of quote errors as JSON lines.
func (s *JsonlStorage) PutErrorBatch(errs []model.QuoteError) error {
	if len(errs) == 0 || s.errorsPath == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return appendLines(s.errorsPath, errs)
}

func appendLines[T any](path string, records []T) error {
	writer, err := NewJSONLWriter(path, true)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			writer.Close()
			return err
		}
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}
