package handlers

import (
	"errors"
	"net/http"

	"real-estate-crm/internal/auth"
	"real-estate-crm/internal/models"
	"real-estate-crm/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler handles registration and session endpoints
type AuthHandler struct {
	agents *services.AgentService
	issuer *auth.TokenIssuer
}

func NewAuthHandler(db *gorm.DB, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{agents: services.NewAgentService(db), issuer: issuer}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an agent account and issues a session token
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.agents.GetByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	agent := models.Agent{
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
	}
	if err := h.agents.Create(&agent); err != nil {
		respondError(c, err)
		return
	}

	token, err := h.issuer.Issue(agent.ID, agent.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "agent": agent})
}

// Login checks credentials and issues a session token
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	agent, err := h.agents.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		respondError(c, err)
		return
	}

	if !auth.CheckPassword(agent.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.issuer.Issue(agent.ID, agent.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "agent": agent})
}

// Logout exists for symmetry; the session is a bearer token the client
// discards.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Me returns the authenticated agent with settings
func (h *AuthHandler) Me(c *gin.Context) {
	agentID := auth.AgentID(c)

	agent, err := h.agents.GetByID(agentID)
	if err != nil {
		respondError(c, err)
		return
	}
	settings, err := h.agents.GetOrCreateSettings(agentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"agent": agent, "settings": settings})
}

type onboardingRequest struct {
	Completed bool `json:"completed"`
}

// SetOnboarding persists the onboarding-completed flag
func (h *AuthHandler) SetOnboarding(c *gin.Context) {
	var req onboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.agents.SetOnboardingCompleted(auth.AgentID(c), req.Completed); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
