package storage

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"swapScope/internal/model"
)

const (
	initialLineBuffer = 64 * 1024
	maxLineBuffer     = 10 * 1024 * 1024
)

// ScanLines calls fn with the 1-based line number and the trimmed contents
// of every non-empty line in r. Scanning stops at the first error from fn.
func ScanLines(r io.Reader, fn func(line int, data []byte) error) error {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, initialLineBuffer)
	scanner.Buffer(buf, maxLineBuffer)

	line := 0
	for scanner.Scan() {
		line++
		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}
		if err := fn(line, data); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}
	return nil
}

// ReadPoolSnapshots loads every snapshot in a JSONL file. A malformed line
// fails the whole read.
func ReadPoolSnapshots(path string) ([]model.PoolSnapshot, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pools: %w", err)
	}
	defer file.Close()

	var snapshots []model.PoolSnapshot
	err = ScanLines(file, func(line int, data []byte) error {
		var snapshot model.PoolSnapshot
		if err := json.Unmarshal(data, &snapshot); err != nil {
			return fmt.Errorf("pools line %d: %w", line, err)
		}
		snapshots = append(snapshots, snapshot)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snapshots, nil
}

// RequestLine is a decoded request together with its position in the input.
type RequestLine struct {
	Line    int
	Request model.QuoteRequest
}

// ReadRequests loads quote requests from a JSONL file. Lines that do not
// decode are returned as quote errors instead of failing the read.
func ReadRequests(path string) ([]RequestLine, []model.QuoteError, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open requests: %w", err)
	}
	defer file.Close()

	var (
		requests []RequestLine
		failed   []model.QuoteError
	)
	err = ScanLines(file, func(line int, data []byte) error {
		var req model.QuoteRequest
		if err := json.Unmarshal(data, &req); err != nil {
			failed = append(failed, model.QuoteError{Line: line, Error: err.Error()})
			return nil
		}
		requests = append(requests, RequestLine{Line: line, Request: req})
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return requests, failed, nil
}
