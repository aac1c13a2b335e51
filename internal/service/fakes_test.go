package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"combatbible/gymdesk/internal/domain"
)

type fakeStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (f *fakeStorage) GeneratePresignedUploadURL(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	return "https://storage.test/put/" + key, nil
}

func (f *fakeStorage) GeneratePresignedDownloadURL(ctx context.Context, key string, expires time.Duration) (string, error) {
	return "https://storage.test/get/" + key, nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, key string) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, key)
	f.mu.Unlock()
	return nil
}

type failingGenerator struct{}

func (failingGenerator) GenerateVariations(ctx context.Context, titles []string) ([]domain.Variation, error) {
	return nil, errors.New("quota exceeded")
}

type recordingGenerator struct {
	titles []string
}

func (g *recordingGenerator) GenerateVariations(ctx context.Context, titles []string) ([]domain.Variation, error) {
	g.titles = titles
	out := make([]domain.Variation, 2)
	out[0] = domain.Variation{Title: fmt.Sprintf("%s + %s", titles[0], titles[1]), Category: "Striking"}
	return out, nil
}
