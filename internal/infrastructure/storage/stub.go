// Package storage provides object storage implementations for file operations.
package storage

import (
	"context"
	"errors"
	"io"
	"sync"
)

// StubObjectStorage is an in-memory object store used in development and
// tests when no S3-compatible backend is configured.
type StubObjectStorage struct {
	// BaseURL is the base URL for generated object URLs
	BaseURL string

	// FailDeletes makes DeleteObject return an error, for exercising
	// cleanup paths
	FailDeletes bool

	mu      sync.Mutex
	objects map[string][]byte
}

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage() *StubObjectStorage {
	return &StubObjectStorage{
		BaseURL: "https://storage.example.com",
		objects: make(map[string][]byte),
	}
}

// Upload stores the object in memory and returns its URL
func (s *StubObjectStorage) Upload(_ context.Context, storageKey, _ string, body io.Reader) (string, error) {
	if storageKey == "" {
		return "", errors.New("storage key is required")
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[storageKey] = data
	return s.BaseURL + "/" + storageKey, nil
}

// DeleteObject removes the object from memory
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	if s.FailDeletes {
		return errors.New("delete failed")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, storageKey)
	return nil
}

// ObjectExists reports whether the object was uploaded
func (s *StubObjectStorage) ObjectExists(_ context.Context, storageKey string) (bool, error) {
	if storageKey == "" {
		return false, errors.New("storage key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[storageKey]
	return ok, nil
}

// Len reports the number of stored objects
func (s *StubObjectStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}
