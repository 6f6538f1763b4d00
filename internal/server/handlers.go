package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"docrelay/internal/oauth"
)

// TokenService authenticates users and resolves their access tokens.
// *oauth.Manager implements it.
type TokenService interface {
	Authenticate(ctx context.Context, userID, code string) (oauth.TokenRecord, error)
	ResolveAccessToken(ctx context.Context, userID string) (string, error)
}

// DocumentFetcher fetches a document with a bearer access token.
// *docs.Client implements it.
type DocumentFetcher interface {
	GetDocument(ctx context.Context, accessToken, documentID string) (json.RawMessage, error)
}

// UserCounter reports the number of users with cached tokens.
// *oauth.TokenStore implements it.
type UserCounter interface {
	Count() int
}

// Handlers serves the docrelay API endpoints.
type Handlers struct {
	tokens    TokenService
	documents DocumentFetcher
	users     UserCounter
}

// NewHandlers creates the API handlers.
func NewHandlers(tokens TokenService, documents DocumentFetcher, users UserCounter) *Handlers {
	return &Handlers{
		tokens:    tokens,
		documents: documents,
		users:     users,
	}
}

type authRequest struct {
	Code   string `json:"code"`
	UserID string `json:"userId"`
}

type authResponse struct {
	Message string            `json:"message"`
	Tokens  oauth.TokenRecord `json:"tokens"`
}

type documentResponse struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type healthResponse struct {
	Status string `json:"status"`
	Users  int    `json:"users"`
}

// Authenticate handles POST /auth/google.
func (h *Handlers) Authenticate(c *gin.Context) {
	var req authRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" || req.UserID == "" {
		c.JSON(http.StatusBadRequest, errorBody(msgMissingAuthParams))
		return
	}

	record, err := h.tokens.Authenticate(c.Request.Context(), req.UserID, req.Code)
	if err != nil {
		writeError(c, err, msgMissingAuthParams)
		return
	}

	c.JSON(http.StatusOK, authResponse{
		Message: msgAuthenticated,
		Tokens:  record,
	})
}

// GetDocument handles GET /google-doc.
func (h *Handlers) GetDocument(c *gin.Context) {
	documentID := c.Query("documentId")
	userID := c.Query("userId")
	if documentID == "" || userID == "" {
		c.JSON(http.StatusBadRequest, errorBody(msgMissingDocParams))
		return
	}

	ctx := c.Request.Context()
	accessToken, err := h.tokens.ResolveAccessToken(ctx, userID)
	if err != nil {
		writeError(c, err, msgMissingDocParams)
		return
	}

	doc, err := h.documents.GetDocument(ctx, accessToken, documentID)
	if err != nil {
		writeError(c, err, msgMissingDocParams)
		return
	}

	c.JSON(http.StatusOK, documentResponse{
		Message: msgDocFetched,
		Data:    doc,
	})
}

// Health handles GET /health.
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status: "ok",
		Users:  h.users.Count(),
	})
}
