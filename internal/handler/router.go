package handler

import (
	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	Chat  *ChatHandler
	Files *FileHandler
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/chat", deps.Chat.Create)
	api.POST("/uploadFile", deps.Files.Upload)
	api.GET("/files/:key", deps.Files.Get)
}
