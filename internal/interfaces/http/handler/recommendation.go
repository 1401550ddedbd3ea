package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apprecommendation "github.com/kitchencloud/backend/internal/application/recommendation"
)

// Recommender ranks dishes for an optional account
type Recommender interface {
	Recommend(ctx context.Context, accountID *uuid.UUID) ([]apprecommendation.DishResponse, error)
}

// RecommendationHandler serves the public dish recommendations
type RecommendationHandler struct {
	BaseHandler
	recommender Recommender
}

// NewRecommendationHandler creates a new RecommendationHandler
func NewRecommendationHandler(recommender Recommender) *RecommendationHandler {
	return &RecommendationHandler{recommender: recommender}
}

// Popular returns the globally most ordered dishes
func (h *RecommendationHandler) Popular(c *gin.Context) {
	h.respond(c, nil)
}

// ForAccount returns the account's favorites followed by popular dishes
func (h *RecommendationHandler) ForAccount(c *gin.Context) {
	id, ok := h.uuidParam(c, "accountId")
	if !ok {
		return
	}
	h.respond(c, &id)
}

func (h *RecommendationHandler) respond(c *gin.Context, accountID *uuid.UUID) {
	dishes, err := h.recommender.Recommend(c.Request.Context(), accountID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, dishes)
}
