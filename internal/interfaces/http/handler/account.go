package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	appaccount "github.com/kitchencloud/backend/internal/application/account"
	"github.com/kitchencloud/backend/internal/infrastructure/auth"
)

// ProfileReader loads account profiles
type ProfileReader interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*appaccount.ProfileResponse, error)
}

// AccountHandler serves account profiles
type AccountHandler struct {
	BaseHandler
	profiles ProfileReader
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(profiles ProfileReader) *AccountHandler {
	return &AccountHandler{profiles: profiles}
}

// GetAccount godoc
//
//	@Summary	Get an account with its loyalty balance and used coupons
//	@Tags		accounts
//	@Produce	json
//	@Param		id	path		string	true	"Account ID"
//	@Success	200	{object}	dto.Response
//	@Failure	403,404	{object}	dto.Response
//	@Security	BearerAuth
//	@Router		/accounts/{id} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	claims, userID, ok := h.caller(c)
	if !ok {
		return
	}
	id, ok := h.uuidParam(c, "id")
	if !ok {
		return
	}
	if !claims.HasRole(auth.RoleAdmin) && id != userID {
		h.Forbidden(c, "cannot read another account")
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, profile)
}
