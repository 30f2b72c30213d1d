package dto

import "github.com/spec-kit/verify-service/internal/domain"

// VerifyRequest payload for the CAPTCHA-protected form submission.
type VerifyRequest struct {
	CaptchaResponse string `form:"g-recaptcha-response"`
	UserID          string `form:"user_id"`
	Token           string `form:"token"`
}

// ToDomain maps the form payload onto the transient domain request.
func (r VerifyRequest) ToDomain() domain.VerificationRequest {
	return domain.VerificationRequest{
		CaptchaResponse: r.CaptchaResponse,
		SubjectID:       r.UserID,
		Token:           r.Token,
	}
}
