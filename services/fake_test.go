package services

import (
	"context"
	"io"
	"sync"

	"github.com/Dosada05/skullking/models"
	"github.com/Dosada05/skullking/repositories"
	"github.com/Dosada05/skullking/storage"
)

// ------------------------
// Fake User Stats Repo
// ------------------------

// FakeUserStatsRepo wraps the in-memory store and lets tests inject failures.
type FakeUserStatsRepo struct {
	inner repositories.UserStatsRepository

	mu    sync.Mutex
	trace []string

	GetFunc    func(ctx context.Context, username string) (*models.UserStats, error)
	UpdateFunc func(ctx context.Context, stats *models.UserStats) error
}

func NewFakeUserStatsRepo() *FakeUserStatsRepo {
	return &FakeUserStatsRepo{inner: repositories.NewMemoryUserStatsRepository()}
}

func (f *FakeUserStatsRepo) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of calls made to the fake.
func (f *FakeUserStatsRepo) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeUserStatsRepo) Get(ctx context.Context, username string) (*models.UserStats, error) {
	f.record("Get:" + username)
	if f.GetFunc != nil {
		return f.GetFunc(ctx, username)
	}
	return f.inner.Get(ctx, username)
}

func (f *FakeUserStatsRepo) Update(ctx context.Context, stats *models.UserStats) error {
	f.record("Update:" + stats.Username)
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, stats)
	}
	return f.inner.Update(ctx, stats)
}

func (f *FakeUserStatsRepo) List(ctx context.Context, limit int) ([]*models.UserStats, error) {
	f.record("List")
	return f.inner.List(ctx, limit)
}

var _ repositories.UserStatsRepository = (*FakeUserStatsRepo)(nil)

// ------------------------
// Fake Uploader
// ------------------------

type FakeUploader struct {
	mu      sync.Mutex
	Objects map[string][]byte

	UploadFunc func(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error)
}

func NewFakeUploader() *FakeUploader {
	return &FakeUploader{Objects: make(map[string][]byte)}
}

func (f *FakeUploader) Upload(ctx context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if f.UploadFunc != nil {
		return f.UploadFunc(ctx, key, contentType, reader)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	f.Objects[key] = body
	f.mu.Unlock()
	return &storage.UploadResult{Key: key, Location: f.GetPublicURL(key)}, nil
}

func (f *FakeUploader) GetPublicURL(key string) string {
	return "https://archive.test/" + key
}

func (f *FakeUploader) Object(key string) ([]byte, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.Objects[key]
	return b, ok
}

var _ storage.FileUploader = (*FakeUploader)(nil)
