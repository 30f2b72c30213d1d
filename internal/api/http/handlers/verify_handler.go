package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/verify-service/internal/api/dto"
	"github.com/spec-kit/verify-service/internal/observability"
	"github.com/spec-kit/verify-service/internal/service"
	"github.com/spec-kit/verify-service/pkg/util/errorutil"
)

const successMessage = "✅ Verification successful! You may now return to Discord."

// VerifyHandler exposes the verification endpoint.
type VerifyHandler struct {
	verification *service.VerificationService
	logger       *zap.Logger
	metrics      *observability.Metrics
}

// NewVerifyHandler constructs handler.
func NewVerifyHandler(verification *service.VerificationService, logger *zap.Logger, metrics *observability.Metrics) *VerifyHandler {
	return &VerifyHandler{verification: verification, logger: logger, metrics: metrics}
}

// Verify handles POST /verify. Responses are plain text: the rejection
// reason with 400, a generic message with 500, the success message
// with 200.
func (h *VerifyHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		// an unreadable body carries no captcha response
		req = dto.VerifyRequest{}
	}

	if err := h.verification.Verify(c.UserContext(), req.ToDomain()); err != nil {
		domainErr := errorutil.ToDomainError(err)
		h.metrics.RecordVerification(domainErr.Code)
		h.metrics.RecordError(c.Path(), c.Method(), domainErr.Code)

		if domainErr.HTTPStatus >= http.StatusInternalServerError {
			h.logger.Error("verification failed on role grant",
				zap.String("subject_id", req.UserID),
				zap.Error(domainErr))
		}
		return c.Status(domainErr.HTTPStatus).SendString(domainErr.Message)
	}

	h.metrics.RecordVerification("OK")
	h.logger.Info("member verified", zap.String("subject_id", req.UserID))
	return c.SendString(successMessage)
}
