package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/verify-service/internal/captcha"
	"github.com/spec-kit/verify-service/internal/domain"
	"github.com/spec-kit/verify-service/internal/events"
	"github.com/spec-kit/verify-service/internal/token"
	"github.com/spec-kit/verify-service/pkg/util/errorutil"
)

// VerificationService runs the ordered validation chain over one form
// submission and performs the role grant. Each submission is exactly
// one attempt; there are no automatic retries.
type VerificationService struct {
	store      *token.Store
	captcha    captcha.Verifier
	guild      RoleGranter
	dispatcher events.Dispatcher
	logger     *zap.Logger
	guildID    string
	roleID     string
}

// VerificationDependencies bundles collaborators for the pipeline.
type VerificationDependencies struct {
	Store      *token.Store
	Captcha    captcha.Verifier
	Guild      RoleGranter
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewVerificationService builds the pipeline.
func NewVerificationService(deps VerificationDependencies, guildID, roleID string) *VerificationService {
	return &VerificationService{
		store:      deps.Store,
		captcha:    deps.Captcha,
		guild:      deps.Guild,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		guildID:    guildID,
		roleID:     roleID,
	}
}

// Verify validates the submission and, when every step passes, grants
// the configured role and consumes the token. The chain short-circuits
// on the first failing step; every rejection leaves the token live.
func (s *VerificationService) Verify(ctx context.Context, req domain.VerificationRequest) error {
	if err := s.verify(ctx, req); err != nil {
		s.publishRejected(ctx, req.SubjectID, err)
		return err
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.New(events.EventVerificationSucceeded, req.SubjectID, events.VerificationSucceededPayload{
			GuildID: s.guildID,
			RoleID:  s.roleID,
		}))
	}
	return nil
}

func (s *VerificationService) verify(ctx context.Context, req domain.VerificationRequest) error {
	if req.CaptchaResponse == "" {
		return errorutil.NewMissingCaptcha()
	}
	if req.SubjectID == "" || req.Token == "" {
		return errorutil.NewMissingCredentials()
	}

	// Expiry is re-checked here; validity never depends on sweep timing.
	tok, ok := s.store.Lookup(req.Token)
	if !ok || tok.Expired(time.Now()) {
		return errorutil.NewInvalidOrExpiredToken()
	}
	if tok.SubjectID != req.SubjectID {
		return errorutil.NewSubjectMismatch()
	}

	passed, err := s.captcha.Verify(ctx, req.CaptchaResponse)
	if err != nil {
		s.logger.Warn("captcha oracle call failed", zap.String("subject_id", req.SubjectID), zap.Error(err))
		return errorutil.NewCaptchaFailed(err)
	}
	if !passed {
		return errorutil.NewCaptchaFailed(nil)
	}

	// The oracle call suspends, so the token may have been consumed by
	// a concurrent submission in the meantime. Claim it atomically
	// before touching the platform; a duplicate fails here.
	claimed, ok := s.store.Redeem(req.Token, req.SubjectID, time.Now())
	if !ok {
		return errorutil.NewInvalidOrExpiredToken()
	}

	if err := s.grantRole(ctx, req.SubjectID); err != nil {
		// Put the claimed record back with its original expiry so the
		// subject can retry; only full success consumes the token.
		s.store.Restore(claimed)
		return err
	}
	return nil
}

// grantRole resolves the subject's membership and grants the role.
// Panics from the platform client are downgraded to a grant failure.
func (s *VerificationService) grantRole(ctx context.Context, subjectID string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("panic during role grant", zap.Any("panic", r), zap.String("subject_id", subjectID))
			err = errorutil.NewRoleGrantFailed(fmt.Errorf("panic: %v", r))
		}
	}()

	member, err := s.guild.ResolveMembership(ctx, subjectID)
	if err != nil {
		s.logger.Error("membership resolution failed", zap.String("subject_id", subjectID), zap.Error(err))
		return errorutil.NewRoleGrantFailed(err)
	}
	if !member {
		return errorutil.NewSubjectNotFound()
	}

	if err := s.guild.GrantRole(ctx, subjectID); err != nil {
		s.logger.Error("role grant failed", zap.String("subject_id", subjectID), zap.Error(err))
		return errorutil.NewRoleGrantFailed(err)
	}
	return nil
}

func (s *VerificationService) publishRejected(ctx context.Context, subjectID string, cause error) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.New(events.EventVerificationRejected, subjectID, events.VerificationRejectedPayload{
		Reason: errorutil.ToDomainError(cause).Code,
	}))
}
