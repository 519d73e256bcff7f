package service

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"resort-concierge/auth"
	"resort-concierge/chat-svc/internal/domain"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

type ChatService struct {
	messages MessageRepository
	profiles ProfileResolver
	throttle SendThrottle
	logger   *log.Entry
}

// NewChatService accepts a nil throttle, which disables send limits.
func NewChatService(messages MessageRepository, profiles ProfileResolver, throttle SendThrottle, logger *log.Entry) *ChatService {
	return &ChatService{
		messages: messages,
		profiles: profiles,
		throttle: throttle,
		logger:   logger,
	}
}

// Send stores a guest-authored message. Content is validated before the
// profile is resolved so a rejected message leaves no trace.
func (s *ChatService) Send(ctx context.Context, identity *auth.Identity, content string) (*domain.ChatMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewValidationError("content", "must not be empty")
	}
	if utf8.RuneCountInString(content) > domain.MaxContentLength {
		return nil, domain.NewValidationError("content", "must be at most 2000 characters")
	}

	profile, err := s.profiles.Resolve(ctx, identity)
	if err != nil {
		return nil, err
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, profile.ID)
		if err != nil {
			s.logger.WithError(err).Warn("chat throttle unavailable, allowing message")
		} else if !allowed {
			return nil, domain.ErrRateLimited
		}
	}

	msg := &domain.ChatMessage{
		ID:        uuid.New(),
		ProfileID: &profile.ID,
		Role:      domain.RoleUser,
		Content:   content,
	}
	if err := s.messages.InsertMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// List never creates a profile: a caller without one gets the broadcast
// messages only.
func (s *ChatService) List(ctx context.Context, identity *auth.Identity, limit, offset int) ([]domain.ChatMessage, error) {
	if offset < 0 {
		return nil, domain.NewValidationError("offset", "must not be negative")
	}
	limit = ClampLimit(limit)

	var profileID *uuid.UUID
	profile, err := s.profiles.Lookup(ctx, identity)
	switch {
	case errors.Is(err, auth.ErrProfileNotFound):
	case err != nil:
		return nil, err
	default:
		profileID = &profile.ID
	}

	return s.messages.ListMessages(ctx, profileID, limit, offset)
}

func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}
