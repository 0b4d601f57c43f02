package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// TraceWriter 逐帧写出 CSV 追踪，首行写表头
type TraceWriter struct {
	w             io.Writer
	closer        io.Closer
	headerWritten bool
	rows          int
}

// NewTraceWriter 包装任意 io.Writer
func NewTraceWriter(w io.Writer) *TraceWriter {
	return &TraceWriter{w: w}
}

// CreateTraceFile 创建追踪文件及其目录
// path 为空时返回 nil（不输出追踪）
func CreateTraceFile(path string) (*TraceWriter, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating trace directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating trace file: %w", err)
	}
	return &TraceWriter{w: f, closer: f}, nil
}

// Write 写入一帧记录
func (t *TraceWriter) Write(rec TickRecord) error {
	if t == nil {
		return nil
	}

	records := []TickRecord{rec}
	if !t.headerWritten {
		if err := gocsv.Marshal(records, t.w); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
		t.headerWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, t.w); err != nil {
			return fmt.Errorf("writing trace: %w", err)
		}
	}
	t.rows++
	return nil
}

// Rows 已写入的记录数
func (t *TraceWriter) Rows() int {
	if t == nil {
		return 0
	}
	return t.rows
}

// Close 关闭底层文件
func (t *TraceWriter) Close() error {
	if t == nil || t.closer == nil {
		return nil
	}
	return t.closer.Close()
}
