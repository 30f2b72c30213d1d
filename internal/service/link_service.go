package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/verify-service/internal/domain"
	"github.com/spec-kit/verify-service/internal/events"
	"github.com/spec-kit/verify-service/internal/token"
)

// LinkService builds the one-time verification URL handed to a subject
// when they press the verify button.
type LinkService struct {
	store      *token.Store
	webBase    string
	ttl        time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewLinkService builds the service.
func NewLinkService(store *token.Store, webBase string, ttl time.Duration, dispatcher events.Dispatcher, logger *zap.Logger) *LinkService {
	return &LinkService{
		store:      store,
		webBase:    strings.TrimRight(webBase, "/"),
		ttl:        ttl,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// TTL returns the lifetime of issued links.
func (s *LinkService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a fresh token for the subject and composes the
// verification URL. Every call produces a new independent token;
// earlier links for the same subject stay valid until they expire.
func (s *LinkService) Issue(ctx context.Context, subject domain.Subject) (string, error) {
	value, err := s.store.Create(subject.ID)
	if err != nil {
		return "", fmt.Errorf("issue verification link: %w", err)
	}

	params := url.Values{}
	params.Set("id", subject.ID)
	params.Set("token", value)
	params.Set("username", subject.Username)
	params.Set("avatar", subject.AvatarURL)
	link := fmt.Sprintf("%s/?%s", s.webBase, params.Encode())

	s.logger.Debug("verification link issued", zap.String("subject_id", subject.ID))
	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventVerificationLinkIssued, subject.ID, events.LinkIssuedPayload{
			Username:  subject.Username,
			ExpiresAt: time.Now().Add(s.ttl),
		}))
	}
	return link, nil
}
