package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-admin-panel/internal/interface/middleware"
)

type HomeHandler struct {
	Base string
}

func NewHomeHandler(basePath string) *HomeHandler {
	return &HomeHandler{Base: basePath}
}

func (h *HomeHandler) Index(c *gin.Context) {
	data := gin.H{"Base": h.Base}
	if s := middleware.SessionData(c); s != nil && s.LoggedIn {
		data["UserName"] = s.UserName
		data["LoggedIn"] = true
	}
	c.HTML(http.StatusOK, "home/index", data)
}
