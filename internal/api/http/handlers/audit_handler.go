package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/auth-service/internal/api/dto"
	"github.com/spec-kit/auth-service/internal/repository"
)

// AuditHandler exposes the audit trail to operators.
type AuditHandler struct {
	events repository.AuditEventRepository
}

// NewAuditHandler constructs handler.
func NewAuditHandler(events repository.AuditEventRepository) *AuditHandler {
	return &AuditHandler{events: events}
}

// ListBySubject handles GET /admin/audit-events.
func (h *AuditHandler) ListBySubject(c *fiber.Ctx) error {
	subject := c.Query("subject")
	if subject == "" {
		return fiber.NewError(http.StatusBadRequest, "subject query parameter required")
	}
	limit := c.QueryInt("limit", 50)

	events, err := h.events.ListBySubject(c.Context(), subject, limit)
	if err != nil {
		return err
	}

	out := make([]dto.AuditEventResponse, 0, len(events))
	for _, event := range events {
		out = append(out, dto.AuditEventResponse{
			ID:          event.ID,
			Subject:     event.Subject,
			EventType:   string(event.Type),
			Description: event.Description,
			IP:          event.IP,
			UserAgent:   event.UserAgent,
			OccurredAt:  event.Timestamp,
		})
	}

	return c.JSON(fiber.Map{"data": out, "count": len(out)})
}
