package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/intake-service/internal/config"
	"github.com/spec-kit/intake-service/internal/domain"
	"github.com/spec-kit/intake-service/internal/events"
	apperrors "github.com/spec-kit/intake-service/pkg/util"
)

type fakeEntryRepo struct {
	entries   []domain.Entry
	appendErr error
	recentErr error
}

func (f *fakeEntryRepo) Append(_ context.Context, entry *domain.Entry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeEntryRepo) Recent(_ context.Context, limit int) ([]domain.Entry, error) {
	if f.recentErr != nil {
		return nil, f.recentErr
	}
	start := len(f.entries) - limit
	if start < 0 {
		start = 0
	}
	return append([]domain.Entry{}, f.entries[start:]...), nil
}

type fakeEntriesCache struct {
	stored      []map[string]any
	hasValue    bool
	gets        int
	sets        int
	invalidates int
}

func (f *fakeEntriesCache) GetRecent(_ context.Context) ([]map[string]any, bool) {
	f.gets++
	if !f.hasValue {
		return nil, false
	}
	return f.stored, true
}

func (f *fakeEntriesCache) SetRecent(_ context.Context, entries []map[string]any) {
	f.sets++
	f.stored = entries
	f.hasValue = true
}

func (f *fakeEntriesCache) Invalidate(_ context.Context) {
	f.invalidates++
	f.stored = nil
	f.hasValue = false
}

func newIntakeService(repo *fakeEntryRepo, entriesCache *fakeEntriesCache, dispatcher events.Dispatcher) *IntakeService {
	cfg := config.IntakeConfig{RecentWindow: 10}
	if entriesCache == nil {
		return NewIntakeService(cfg, repo, nil, dispatcher, zap.NewNop())
	}
	return NewIntakeService(cfg, repo, entriesCache, dispatcher, zap.NewNop())
}

func TestSubmitSuccess(t *testing.T) {
	repo := &fakeEntryRepo{}
	svc := newIntakeService(repo, nil, nil)

	result, err := svc.Submit(context.Background(), SubmitInput{
		Name:          "Ann",
		Email:         "ann@x.com",
		Phone:         "5551234567",
		Department:    "IT",
		AmbientCaller: "host@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Data submitted successfully", result.Message)
	assert.WithinDuration(t, time.Now(), result.Timestamp, time.Minute)

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Ann", entry.Name)
	assert.Equal(t, "ann@x.com", entry.Email)
	assert.Equal(t, "5551234567", entry.Phone)
	assert.Equal(t, "IT", entry.Department)
	assert.Equal(t, "host@example.com", entry.SubmittedBy)
}

func TestSubmitOptionalFieldsDefaultEmpty(t *testing.T) {
	repo := &fakeEntryRepo{}
	svc := newIntakeService(repo, nil, nil)

	_, err := svc.Submit(context.Background(), SubmitInput{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	require.Len(t, repo.entries, 1)
	assert.Empty(t, repo.entries[0].Phone)
	assert.Empty(t, repo.entries[0].Department)
}

func TestSubmitIdentityResolution(t *testing.T) {
	tests := []struct {
		name  string
		input SubmitInput
		want  string
	}{
		{"token subject wins", SubmitInput{TokenSubject: "ann", AmbientCaller: "host@example.com"}, "ann"},
		{"ambient fallback", SubmitInput{AmbientCaller: "host@example.com"}, "host@example.com"},
		{"anonymous fallback", SubmitInput{}, "anonymous"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEntryRepo{}
			svc := newIntakeService(repo, nil, nil)

			tt.input.Name = "Ann"
			tt.input.Email = "ann@x.com"
			_, err := svc.Submit(context.Background(), tt.input)
			require.NoError(t, err)
			require.Len(t, repo.entries, 1)
			assert.Equal(t, tt.want, repo.entries[0].SubmittedBy)
		})
	}
}

func TestSubmitMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		input SubmitInput
	}{
		{"no name", SubmitInput{Email: "ann@x.com"}},
		{"no email", SubmitInput{Name: "Ann"}},
		{"neither", SubmitInput{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeEntryRepo{}
			svc := newIntakeService(repo, nil, nil)

			result, err := svc.Submit(context.Background(), tt.input)
			assert.Nil(t, result)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
			assert.Equal(t, apperrors.CodeMissingFields, domainErr.Code)
			assert.Empty(t, repo.entries, "no row may be appended on a failed submit")
		})
	}
}

func TestSubmitInvalidEmail(t *testing.T) {
	for _, email := range []string{"bob", "bob@x", "bob@@x", "bob @x.com", "bob@x .com", "@x.com", "bob@.e f"} {
		t.Run(email, func(t *testing.T) {
			repo := &fakeEntryRepo{}
			svc := newIntakeService(repo, nil, nil)

			result, err := svc.Submit(context.Background(), SubmitInput{Name: "Bob", Email: email})
			assert.Nil(t, result)
			domainErr := apperrors.ToDomainError(err)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
			assert.Equal(t, apperrors.CodeInvalidEmail, domainErr.Code)
			assert.Empty(t, repo.entries)
		})
	}
}

func TestSubmitAcceptsPlausibleEmails(t *testing.T) {
	for _, email := range []string{"ann@x.com", "a.b+c@sub.domain.org", "x@y.z"} {
		t.Run(email, func(t *testing.T) {
			svc := newIntakeService(&fakeEntryRepo{}, nil, nil)
			_, err := svc.Submit(context.Background(), SubmitInput{Name: "Ann", Email: email})
			assert.NoError(t, err)
		})
	}
}

func TestSubmitStorageError(t *testing.T) {
	repo := &fakeEntryRepo{appendErr: errors.New("disk full")}
	svc := newIntakeService(repo, nil, nil)

	result, err := svc.Submit(context.Background(), SubmitInput{Name: "Ann", Email: "ann@x.com"})
	assert.Nil(t, result)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, apperrors.CodeStorageError, domainErr.Code)
	assert.Empty(t, repo.entries)
}

func TestSubmitInvalidatesCacheAndPublishes(t *testing.T) {
	repo := &fakeEntryRepo{}
	entriesCache := &fakeEntriesCache{}
	dispatcher := events.NewInMemoryDispatcher()

	var published []events.Event
	dispatcher.Subscribe(events.EventEntrySubmitted, func(_ context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	})

	svc := newIntakeService(repo, entriesCache, dispatcher)
	entriesCache.SetRecent(context.Background(), []map[string]any{{"Name": "stale"}})

	_, err := svc.Submit(context.Background(), SubmitInput{Name: "Ann", Email: "ann@x.com"})
	require.NoError(t, err)

	assert.Equal(t, 1, entriesCache.invalidates)
	require.Len(t, published, 1)
	payload, ok := published[0].Payload.(events.EntrySubmittedPayload)
	require.True(t, ok)
	assert.Equal(t, "Ann", payload.Name)
}

func TestRecentEntriesEmptyStore(t *testing.T) {
	svc := newIntakeService(&fakeEntryRepo{}, nil, nil)

	entries, err := svc.RecentEntries(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestRecentEntriesWindowAndProjection(t *testing.T) {
	repo := &fakeEntryRepo{}
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		repo.entries = append(repo.entries, domain.Entry{
			ID:          fmt.Sprintf("e%02d", i),
			Timestamp:   base.Add(time.Duration(i) * time.Minute),
			Name:        fmt.Sprintf("User %02d", i),
			Email:       fmt.Sprintf("user%02d@x.com", i),
			SubmittedBy: "host@example.com",
		})
	}
	svc := newIntakeService(repo, nil, nil)

	entries, err := svc.RecentEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 10)

	// oldest of the window first: rows 5..14
	assert.Equal(t, "User 05", entries[0][domain.HeaderName])
	assert.Equal(t, "User 14", entries[9][domain.HeaderName])

	first := entries[0]
	for _, header := range domain.EntryHeaders() {
		assert.Contains(t, first, header)
	}
	ts, ok := first[domain.HeaderTimestamp].(string)
	require.True(t, ok)
	parsed, err := time.Parse(time.RFC3339, ts)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(base.Add(5*time.Minute)))
}

func TestRecentEntriesServedFromCache(t *testing.T) {
	repo := &fakeEntryRepo{recentErr: errors.New("must not hit the store")}
	entriesCache := &fakeEntriesCache{}
	entriesCache.SetRecent(context.Background(), []map[string]any{{"Name": "cached"}})

	svc := newIntakeService(repo, entriesCache, nil)

	entries, err := svc.RecentEntries(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cached", entries[0]["Name"])
}

func TestRecentEntriesPopulatesCacheOnMiss(t *testing.T) {
	repo := &fakeEntryRepo{entries: []domain.Entry{{ID: "e1", Name: "Ann", Timestamp: time.Now()}}}
	entriesCache := &fakeEntriesCache{}
	svc := newIntakeService(repo, entriesCache, nil)

	_, err := svc.RecentEntries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, entriesCache.sets)
}

func TestRecentEntriesStorageError(t *testing.T) {
	svc := newIntakeService(&fakeEntryRepo{recentErr: errors.New("timeout")}, nil, nil)

	entries, err := svc.RecentEntries(context.Background())
	assert.Nil(t, entries)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	assert.Equal(t, apperrors.CodeStorageError, domainErr.Code)
}
