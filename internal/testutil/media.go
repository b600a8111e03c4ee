package testutil

import (
	"bytes"
	"context"
	"io"
	"sync"
)

// MemMedia is an in-memory object store for photo uploads.
type MemMedia struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
	FailPut error
}

func NewMemMedia() *MemMedia {
	return &MemMedia{Objects: make(map[string][]byte), Types: make(map[string]string)}
}

func (m *MemMedia) Put(_ context.Context, key, contentType string, body io.Reader, _ int64) error {
	if m.FailPut != nil {
		return m.FailPut
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = buf.Bytes()
	m.Types[key] = contentType
	return nil
}

func (m *MemMedia) PresignGet(_ context.Context, key string) (string, error) {
	return "https://media.test/" + key + "?sig=test", nil
}
