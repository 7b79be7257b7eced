package controllers

import (
	"errors"
	"net/http"

	"Gin_postgres_redis_property_invite/app"
	"Gin_postgres_redis_property_invite/services"

	"github.com/gin-gonic/gin"
)

type InviteController struct{ *Srv }

func GetInviteController(s *Srv) *InviteController { return &InviteController{Srv: s} }

type validateReq struct {
	Token string `json:"token"`
}

type acceptReq struct {
	InvitationID string `json:"invitationId"`
	UserID       string `json:"userId"`
}

// POST /api/invites/validate
// Always 200 for a well-formed request; the verdict is in the body.
func (ic *InviteController) Validate(c *gin.Context) {
	var in validateReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid_request"})
		return
	}

	res, err := ic.Lookup.Validate(c.Request.Context(), in.Token)
	switch {
	case errors.Is(err, services.ErrMissingFields):
		c.JSON(http.StatusBadRequest, app.H{"error": "missing_token"})
		return
	case err != nil:
		ic.Metrics.ObserveValidate("error")
		c.JSON(http.StatusInternalServerError, app.H{"error": "internal_error"})
		return
	}

	if res.Valid {
		ic.Metrics.ObserveValidate("valid")
	} else {
		ic.Metrics.ObserveValidate(res.Error)
	}
	c.JSON(http.StatusOK, res)
}

// POST /api/invites/accept
func (ic *InviteController) Accept(c *gin.Context) {
	var in acceptReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": "invalid_request"})
		return
	}

	res, err := ic.Processor.Accept(c.Request.Context(), in.InvitationID, in.UserID)
	kind := services.Kind(err)
	ic.Metrics.ObserveAccept(kind)
	if err != nil {
		status, msg := acceptErrorStatus(err)
		if status != http.StatusInternalServerError {
			ic.Log.DebugContext(c.Request.Context(), "invitation not accepted",
				"invitationID", in.InvitationID, "userID", in.UserID, "reason", kind)
		}
		c.JSON(status, app.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, app.H{
		"success":    true,
		"propertyId": res.PropertyID,
		"role":       res.Role,
	})
}

// acceptErrorStatus maps the error taxonomy onto HTTP. Unexpected failures
// get a generic message; the cause has been logged by the processor.
func acceptErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrMissingFields):
		return http.StatusBadRequest, "missing_fields"
	case errors.Is(err, services.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found"
	case errors.Is(err, services.ErrInvitationNotFound):
		return http.StatusNotFound, "invitation_not_found"
	case errors.Is(err, services.ErrEmailMismatch):
		return http.StatusForbidden, "email_mismatch"
	case errors.Is(err, services.ErrAlreadyUsed):
		return http.StatusBadRequest, "invitation_already_used"
	case errors.Is(err, services.ErrInvitationExpired):
		return http.StatusBadRequest, "invitation_expired"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}
