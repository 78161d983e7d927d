package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"huduma/models"
	"huduma/services/user"
	"huduma/utils"
)

// UserHandler exposes account endpoints.
type UserHandler struct {
	Service user.UserService
	Logger  *zap.Logger
}

func NewUserHandler(svc user.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{Service: svc, Logger: logger}
}

type registerRequest struct {
	DisplayName string `json:"display_name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phone_number" binding:"required"`
	Address     string `json:"address"`
	Role        string `json:"role" binding:"required,oneof=customer provider"`
}

// RegisterHandler handles POST /api/users/register.
func (h *UserHandler) RegisterHandler(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	u, token, err := h.Service.Register(c.Request.Context(), user.RegisterRequest{
		DisplayName: req.DisplayName,
		Email:       req.Email,
		Password:    req.Password,
		PhoneNumber: req.PhoneNumber,
		Address:     req.Address,
		Role:        models.Role(req.Role),
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": u, "token": token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler handles POST /api/users/login.
func (h *UserHandler) LoginHandler(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	u, token, err := h.Service.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": u, "token": token})
}

// GetUserByIDHandler handles GET /api/users/id/:id.
func (h *UserHandler) GetUserByIDHandler(c *gin.Context) {
	u, err := h.Service.GetUserByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

type fcmTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

// UpdateFCMTokenHandler handles PUT /api/users/fcm-token for the
// authenticated account.
func (h *UserHandler) UpdateFCMTokenHandler(c *gin.Context) {
	var req fcmTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	if err := h.Service.UpdateFCMToken(c.Request.Context(), c.GetString("userID"), req.Token); err != nil {
		respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
