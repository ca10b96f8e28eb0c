package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tempero/internal/common"
	"github.com/dmitrijs2005/tempero/internal/logging"
	"github.com/dmitrijs2005/tempero/internal/server/services"
	"github.com/gin-gonic/gin"
)

// Messages sent in {"erro": ...} bodies. The client matches the first two
// verbatim.
const (
	msgEmailTaken         = "Email já cadastrado"
	msgInvalidCredentials = "Credenciais inválidas"
	msgBadRequest         = "Requisição inválida"
	msgTokenMissing       = "Token não fornecido"
	msgTokenInvalid       = "Token inválido"
	msgTokenExpired       = "Token expirado"
	msgForbidden          = "Apenas o autor pode alterar esta publicação"
	msgPostNotFound       = "Publicação não encontrada"
	msgInternal           = "Erro interno do servidor"
)

func errorBody(msg string) gin.H {
	return gin.H{"erro": msg}
}

// writeError maps a service error onto a status and {erro} body. Errors
// that match no sentinel are logged and answered with 500.
func writeError(c *gin.Context, log logging.Logger, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, errorBody(ve.Fields.First()))
	case errors.Is(err, common.ErrorAlreadyExists):
		c.JSON(http.StatusConflict, errorBody(msgEmailTaken))
	case errors.Is(err, common.ErrorUnauthorized):
		c.JSON(http.StatusUnauthorized, errorBody(msgInvalidCredentials))
	case errors.Is(err, common.ErrorForbidden):
		c.JSON(http.StatusForbidden, errorBody(msgForbidden))
	case errors.Is(err, common.ErrorNotFound):
		c.JSON(http.StatusNotFound, errorBody(msgPostNotFound))
	default:
		log.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, errorBody(msgInternal))
	}
}
