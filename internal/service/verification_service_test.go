package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/verify-service/internal/domain"
	"github.com/spec-kit/verify-service/internal/events"
	"github.com/spec-kit/verify-service/internal/token"
	"github.com/spec-kit/verify-service/pkg/util/errorutil"
)

type stubCaptcha struct {
	passed bool
	err    error
	calls  int
}

func (s *stubCaptcha) Verify(context.Context, string) (bool, error) {
	s.calls++
	return s.passed, s.err
}

type stubGuild struct {
	member     bool
	resolveErr error
	grantErr   error
	grantPanic bool
	grants     int
}

func (s *stubGuild) ResolveMembership(context.Context, string) (bool, error) {
	return s.member, s.resolveErr
}

func (s *stubGuild) GrantRole(context.Context, string) error {
	if s.grantPanic {
		panic("session closed")
	}
	s.grants++
	return s.grantErr
}

type fixture struct {
	store   *token.Store
	captcha *stubCaptcha
	guild   *stubGuild
	service *VerificationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:   token.NewStore(10 * time.Minute),
		captcha: &stubCaptcha{passed: true},
		guild:   &stubGuild{member: true},
	}
	f.service = NewVerificationService(VerificationDependencies{
		Store:      f.store,
		Captcha:    f.captcha,
		Guild:      f.guild,
		Dispatcher: events.NewInMemoryDispatcher(),
		Logger:     zap.NewNop(),
	}, "guild-1", "role-1")
	return f
}

func (f *fixture) issue(t *testing.T, subjectID string) string {
	t.Helper()
	value, err := f.store.Create(subjectID)
	require.NoError(t, err)
	return value
}

func request(subjectID, tokenValue string) domain.VerificationRequest {
	return domain.VerificationRequest{
		CaptchaResponse: "captcha-response",
		SubjectID:       subjectID,
		Token:           tokenValue,
	}
}

func TestVerifySuccessConsumesToken(t *testing.T) {
	f := newFixture(t)
	value := f.issue(t, "user-1")

	err := f.service.Verify(context.Background(), request("user-1", value))
	require.NoError(t, err)
	assert.Equal(t, 1, f.guild.grants)

	_, ok := f.store.Lookup(value)
	assert.False(t, ok, "successful redemption must invalidate the token")

	err = f.service.Verify(context.Background(), request("user-1", value))
	assert.True(t, errorutil.IsCode(err, errorutil.CodeInvalidOrExpiredToken), "tokens are single use")
}

func TestVerifyMissingCaptcha(t *testing.T) {
	f := newFixture(t)
	value := f.issue(t, "user-1")

	req := request("user-1", value)
	req.CaptchaResponse = ""

	err := f.service.Verify(context.Background(), req)
	assert.True(t, errorutil.IsCode(err, errorutil.CodeMissingCaptcha))
	assert.Zero(t, f.captcha.calls, "chain must short-circuit before the oracle call")
}

func TestVerifyMissingCredentials(t *testing.T) {
	f := newFixture(t)

	for _, req := range []domain.VerificationRequest{
		{CaptchaResponse: "captcha-response", SubjectID: "", Token: "abc"},
		{CaptchaResponse: "captcha-response", SubjectID: "user-1", Token: ""},
	} {
		err := f.service.Verify(context.Background(), req)
		assert.True(t, errorutil.IsCode(err, errorutil.CodeMissingCredentials))
	}
}

func TestVerifyUnknownToken(t *testing.T) {
	f := newFixture(t)

	err := f.service.Verify(context.Background(), request("user-1", "never-issued"))
	assert.True(t, errorutil.IsCode(err, errorutil.CodeInvalidOrExpiredToken))
}

func TestVerifyExpiredButUnsweptToken(t *testing.T) {
	f := newFixture(t)

	// an expired record that the sweeper has not evicted yet
	f.store.Restore(domain.Token{
		Value:     "stale",
		SubjectID: "user-1",
		ExpiresAt: time.Now().Add(-time.Second),
	})

	err := f.service.Verify(context.Background(), request("user-1", "stale"))
	assert.True(t, errorutil.IsCode(err, errorutil.CodeInvalidOrExpiredToken))
}

func TestVerifySubjectMismatchLeavesTokenLive(t *testing.T) {
	f := newFixture(t)
	value := f.issue(t, "user-a")

	err := f.service.Verify(context.Background(), request("user-b", value))
	assert.True(t, errorutil.IsCode(err, errorutil.CodeSubjectMismatch))

	_, ok := f.store.Lookup(value)
	assert.True(t, ok)
}

func TestVerifyCaptchaRejectedLeavesTokenLive(t *testing.T) {
	f := newFixture(t)
	f.captcha.passed = false
	value := f.issue(t, "user-1")

	err := f.service.Verify(context.Background(), request("user-1", value))
	assert.True(t, errorutil.IsCode(err, errorutil.CodeCaptchaFailed))
	assert.Zero(t, f.guild.grants)

	_, ok := f.store.Lookup(value)
	assert.True(t, ok)
}

func TestVerifyCaptchaOracleErrorTreatedAsRejection(t *testing.T) {
	f := newFixture(t)
	f.captcha.err = errors.New("connection refused")
	value := f.issue(t, "user-1")

	err := f.service.Verify(context.Background(), request("user-1", value))
	assert.True(t, errorutil.IsCode(err, errorutil.CodeCaptchaFailed))

	_, ok := f.store.Lookup(value)
	assert.True(t, ok)
}

func TestVerifySubjectNotFoundLeavesTokenLive(t *testing.T) {
	f := newFixture(t)
	f.guild.member = false
	value := f.issue(t, "user-1")

	err := f.service.Verify(context.Background(), request("user-1", value))
	assert.True(t, errorutil.IsCode(err, errorutil.CodeSubjectNotFound))

	_, ok := f.store.Lookup(value)
	assert.True(t, ok, "rejections leave the token redeemable")
}

func TestVerifyMembershipResolutionError(t *testing.T) {
	f := newFixture(t)
	f.guild.resolveErr = errors.New("api unavailable")
	value := f.issue(t, "user-1")

	err := f.service.Verify(context.Background(), request("user-1", value))
	assert.True(t, errorutil.IsCode(err, errorutil.CodeRoleGrantFailed))

	_, ok := f.store.Lookup(value)
	assert.True(t, ok, "grant infrastructure failure must not consume the token")
}

func TestVerifyGrantFailureLeavesTokenRedeemable(t *testing.T) {
	f := newFixture(t)
	f.guild.grantErr = errors.New("missing permissions")
	value := f.issue(t, "user-1")

	err := f.service.Verify(context.Background(), request("user-1", value))
	assert.True(t, errorutil.IsCode(err, errorutil.CodeRoleGrantFailed))

	// the subject retries after the platform recovers
	f.guild.grantErr = nil
	err = f.service.Verify(context.Background(), request("user-1", value))
	require.NoError(t, err)
}

func TestVerifyGrantPanicDowngraded(t *testing.T) {
	f := newFixture(t)
	f.guild.grantPanic = true
	value := f.issue(t, "user-1")

	err := f.service.Verify(context.Background(), request("user-1", value))
	assert.True(t, errorutil.IsCode(err, errorutil.CodeRoleGrantFailed))

	_, ok := f.store.Lookup(value)
	assert.True(t, ok)
}

func TestVerifyPublishesOutcomeEvents(t *testing.T) {
	f := newFixture(t)
	dispatcher := events.NewInMemoryDispatcher()
	f.service = NewVerificationService(VerificationDependencies{
		Store:      f.store,
		Captcha:    f.captcha,
		Guild:      f.guild,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	}, "guild-1", "role-1")

	var succeeded, rejected int
	dispatcher.Subscribe(events.EventVerificationSucceeded, func(context.Context, events.Event) error {
		succeeded++
		return nil
	})
	dispatcher.Subscribe(events.EventVerificationRejected, func(context.Context, events.Event) error {
		rejected++
		return nil
	})

	value := f.issue(t, "user-1")
	require.NoError(t, f.service.Verify(context.Background(), request("user-1", value)))
	_ = f.service.Verify(context.Background(), request("user-1", "never-issued"))

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, rejected)
}
