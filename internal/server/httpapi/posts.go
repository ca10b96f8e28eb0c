package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/tempero/internal/logging"
	"github.com/dmitrijs2005/tempero/internal/server/services"
	"github.com/gin-gonic/gin"
)

// postRequest is the body of create and edit requests. usuarioId is not
// read: the author always comes from the token.
type postRequest struct {
	Title     string `json:"titulo"`
	Content   string `json:"conteudo"`
	CreatedAt string `json:"dataCriacao"`
}

type postHandler struct {
	posts PostService
	log   logging.Logger
}

func newPostHandler(ps PostService, log logging.Logger) *postHandler {
	return &postHandler{posts: ps, log: log}
}

func (h *postHandler) RegisterRoutes(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	rg.GET("", h.list)
	rg.POST("", auth, h.create)
	rg.PUT("/:id", auth, h.update)
	rg.DELETE("/:id", auth, h.delete)
}

func (h *postHandler) list(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

func (h *postHandler) create(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(msgBadRequest))
		return
	}

	post, err := h.posts.Create(c.Request.Context(), currentUserID(c), services.PostInput{
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

func (h *postHandler) update(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody(msgBadRequest))
		return
	}

	post, err := h.posts.Update(c.Request.Context(), currentUserID(c), c.Param("id"), req.Title, req.Content)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *postHandler) delete(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), currentUserID(c), c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}
