package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/intake-service/internal/api/dto"
	"github.com/spec-kit/intake-service/internal/auth"
	"github.com/spec-kit/intake-service/internal/service"
	apperrors "github.com/spec-kit/intake-service/pkg/util"
)

// ambientIdentityHeader carries the session identity a fronting host or
// proxy resolved for the caller; the legacy system recorded this identity
// on every submission.
const ambientIdentityHeader = "X-Authenticated-Email"

// EntriesHandler serves the submit and recent-entries endpoints.
type EntriesHandler struct {
	intake        *service.IntakeService
	codec         *auth.TokenCodec
	ambientCaller string
}

// NewEntriesHandler constructs handler. ambientCaller is the fallback
// identity recorded when neither a bearer token nor an identity header is
// presented.
func NewEntriesHandler(intakeService *service.IntakeService, codec *auth.TokenCodec, ambientCaller string) *EntriesHandler {
	return &EntriesHandler{intake: intakeService, codec: codec, ambientCaller: ambientCaller}
}

// Submit handles the /submit selector.
func (h *EntriesHandler) Submit(c *fiber.Ctx) error {
	var req dto.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewServerError(err)
	}

	result, err := h.intake.Submit(c.Context(), service.SubmitInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Department:    req.Department,
		TokenSubject:  h.tokenSubject(c),
		AmbientCaller: h.ambientIdentity(c),
	})
	if err != nil {
		return err
	}

	return Respond(c, http.StatusOK, dto.SubmitResponse{
		Message:   result.Message,
		Timestamp: result.Timestamp.UTC().Format(time.RFC3339),
	})
}

// Recent handles the /recent-entries selector.
func (h *EntriesHandler) Recent(c *fiber.Ctx) error {
	entries, err := h.intake.RecentEntries(c.Context())
	if err != nil {
		return err
	}
	return Respond(c, http.StatusOK, entries)
}

// tokenSubject decodes an optional bearer token. Absent or invalid tokens
// resolve to no subject rather than an error: submissions are not gated on
// authentication, the token only contributes identity.
func (h *EntriesHandler) tokenSubject(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	payload, err := h.codec.Verify(parts[1])
	if err != nil {
		return ""
	}
	return payload.Username
}

func (h *EntriesHandler) ambientIdentity(c *fiber.Ctx) string {
	if identity := c.Get(ambientIdentityHeader); identity != "" {
		return identity
	}
	return h.ambientCaller
}
