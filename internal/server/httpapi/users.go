package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/tempero/internal/logging"
	"github.com/dmitrijs2005/tempero/internal/server/models"
	"github.com/dmitrijs2005/tempero/internal/server/services"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"nome"`
	Email    string `json:"email"`
	Phone    string `json:"telefone"`
	Bio      string `json:"bio"`
	Password string `json:"senha"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"senha"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"usuario"`
}

type userHandler struct {
	users UserService
	log   logging.Logger
}

func newUserHandler(us UserService, log logging.Logger) *userHandler {
	return &userHandler{users: us, log: log}
}

func (h *userHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cadastro", h.register)
	rg.POST("/login", h.login)
}

func (h *userHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(msgBadRequest))
		return
	}

	user, err := h.users.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Bio:      req.Bio,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	h.log.Info(c.Request.Context(), "Registered", "user", user.ID)
	c.JSON(http.StatusCreated, user)
}

func (h *userHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(msgBadRequest))
		return
	}

	token, user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}
