package service

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/verify-service/internal/domain"
	"github.com/spec-kit/verify-service/internal/events"
	"github.com/spec-kit/verify-service/internal/token"
)

func newLinkService(store *token.Store) *LinkService {
	return NewLinkService(store, "https://verify.example.com/", 10*time.Minute, events.NewInMemoryDispatcher(), zap.NewNop())
}

func TestIssueComposesEncodedLink(t *testing.T) {
	store := token.NewStore(10 * time.Minute)
	svc := newLinkService(store)

	link, err := svc.Issue(context.Background(), domain.Subject{
		ID:        "1234",
		Username:  "some user&name",
		AvatarURL: "https://cdn.example.com/avatars/1234.png?size=256",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "https://verify.example.com/?"), link)

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	params := parsed.Query()

	assert.Equal(t, "1234", params.Get("id"))
	assert.Equal(t, "some user&name", params.Get("username"))
	assert.Equal(t, "https://cdn.example.com/avatars/1234.png?size=256", params.Get("avatar"))

	tok, ok := store.Lookup(params.Get("token"))
	require.True(t, ok, "the embedded token must exist in the store")
	assert.Equal(t, "1234", tok.SubjectID)
}

func TestIssueCreatesFreshTokenPerCall(t *testing.T) {
	store := token.NewStore(10 * time.Minute)
	svc := newLinkService(store)
	subject := domain.Subject{ID: "1234", Username: "name"}

	first, err := svc.Issue(context.Background(), subject)
	require.NoError(t, err)
	second, err := svc.Issue(context.Background(), subject)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 2, store.Len(), "repeated triggers keep earlier tokens live")
}

func TestIssuePublishesEvent(t *testing.T) {
	store := token.NewStore(10 * time.Minute)
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewLinkService(store, "https://verify.example.com", 10*time.Minute, dispatcher, zap.NewNop())

	var issued int
	dispatcher.Subscribe(events.EventVerificationLinkIssued, func(context.Context, events.Event) error {
		issued++
		return nil
	})

	_, err := svc.Issue(context.Background(), domain.Subject{ID: "1234"})
	require.NoError(t, err)
	assert.Equal(t, 1, issued)
}
