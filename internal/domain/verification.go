package domain

// Subject is the end user attempting verification, identified by the
// platform's user id plus the display metadata embedded in the link.
type Subject struct {
	ID        string
	Username  string
	AvatarURL string
}

// VerificationRequest carries one submission of the CAPTCHA-protected
// form. It is validated and discarded, never persisted.
type VerificationRequest struct {
	CaptchaResponse string
	SubjectID       string
	Token           string
}
