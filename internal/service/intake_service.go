package service

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/intake-service/internal/cache"
	"github.com/spec-kit/intake-service/internal/config"
	"github.com/spec-kit/intake-service/internal/domain"
	"github.com/spec-kit/intake-service/internal/events"
	"github.com/spec-kit/intake-service/internal/repository"
	apperrors "github.com/spec-kit/intake-service/pkg/util"
)

// Matches the legacy validation exactly: something without whitespace or @,
// an @, a domain part, a dot, a tld part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SubmitInput is one intake submission. TokenSubject is the identity decoded
// from a presented bearer token; AmbientCaller is whatever identity the
// hosting environment resolved. The legacy system recorded the ambient
// identity even though login handed out tokens; both are explicit here and
// the token subject wins when present.
type SubmitInput struct {
	Name          string
	Email         string
	Phone         string
	Department    string
	TokenSubject  string
	AmbientCaller string
}

// SubmitResult reports a successful append.
type SubmitResult struct {
	Message   string
	Timestamp time.Time
}

// IntakeService implements the submit and recent-entries operations.
type IntakeService struct {
	entries    repository.EntryRepository
	cache      cache.EntriesCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	window     int
}

// NewIntakeService builds the service.
func NewIntakeService(cfg config.IntakeConfig, entries repository.EntryRepository, entriesCache cache.EntriesCache, dispatcher events.Dispatcher, logger *zap.Logger) *IntakeService {
	window := cfg.RecentWindow
	if window <= 0 {
		window = 10
	}
	return &IntakeService{
		entries:    entries,
		cache:      entriesCache,
		dispatcher: dispatcher,
		logger:     logger,
		window:     window,
	}
}

// Submit validates the input and appends exactly one record. Every failure
// path leaves the store untouched.
func (s *IntakeService) Submit(ctx context.Context, input SubmitInput) (*SubmitResult, error) {
	if input.Name == "" || input.Email == "" {
		return nil, apperrors.NewMissingFields()
	}
	if !emailPattern.MatchString(input.Email) {
		return nil, apperrors.NewInvalidEmail()
	}

	entry := &domain.Entry{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		Name:        input.Name,
		Email:       input.Email,
		Phone:       input.Phone,
		Department:  input.Department,
		SubmittedBy: resolveIdentity(input),
	}

	if err := s.entries.Append(ctx, entry); err != nil {
		return nil, apperrors.NewStorageError("Error saving data", err)
	}
	s.logger.Debug("entry appended",
		zap.String("entry_id", entry.ID),
		zap.String("submitted_by", entry.SubmittedBy))

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventEntrySubmitted,
			Timestamp: entry.Timestamp,
			Payload: events.EntrySubmittedPayload{
				EntryID:     entry.ID,
				Name:        entry.Name,
				Email:       entry.Email,
				Department:  entry.Department,
				SubmittedBy: entry.SubmittedBy,
			},
		})
	}

	return &SubmitResult{Message: "Data submitted successfully", Timestamp: entry.Timestamp}, nil
}

// RecentEntries returns the last window of submissions, oldest-first, each
// projected onto the record store's header names. The projected window is
// served from cache when fresh; cache failures degrade to a store read.
func (s *IntakeService) RecentEntries(ctx context.Context) ([]map[string]any, error) {
	if s.cache != nil {
		if cached, ok := s.cache.GetRecent(ctx); ok {
			return cached, nil
		}
	}

	entries, err := s.entries.Recent(ctx, s.window)
	if err != nil {
		return nil, apperrors.NewStorageError("Error fetching recent entries", err)
	}

	projected := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		projected = append(projected, entry.Project())
	}

	if s.cache != nil {
		s.cache.SetRecent(ctx, projected)
	}
	return projected, nil
}

func resolveIdentity(input SubmitInput) string {
	if input.TokenSubject != "" {
		return input.TokenSubject
	}
	if input.AmbientCaller != "" {
		return input.AmbientCaller
	}
	return "anonymous"
}
