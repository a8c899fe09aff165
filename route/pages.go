package route

import (
	"guestgallery/controller"

	"github.com/gin-gonic/gin"
)

func Pages(router *gin.Engine, g *controller.Gallery, uploadLimit gin.HandlerFunc) {
	router.GET("/", g.GalleryPage)
	router.POST("/guest-upload", uploadLimit, g.GuestUpload)
}
