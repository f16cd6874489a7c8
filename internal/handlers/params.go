package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/crime-detection/internal/dto"
	"github.com/BruksfildServices01/crime-detection/internal/httperr"
)

// pathID parses :id; a malformed id is reported with notFoundCode so
// callers cannot tell a bad id from a missing row.
func pathID(c *gin.Context, notFoundCode string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.Respond(c, httperr.ErrBusiness(notFoundCode))
		return uuid.Nil, false
	}
	return id, true
}

func pageQuery(c *gin.Context) dto.Page {
	return dto.ParsePage(c.Query("page"), c.Query("size"))
}

func invalidRequest(c *gin.Context, err error) {
	httperr.BadRequest(c, httperr.CodeInvalidRequest, err.Error())
}
