package route

import (
	"guestgallery/controller"

	"github.com/gin-gonic/gin"
)

// API mounts the JSON endpoints at the root and again under /api, where the front end
// proxies them.
func API(router *gin.Engine, g *controller.Gallery, uploadLimit gin.HandlerFunc) {
	router.GET("/health", controller.Health)

	for _, prefix := range []string{"/", "/api"} {
		api := router.Group(prefix)
		api.GET("/gallery-images", g.GetGalleryImages)
		api.GET("/get-gallery-images", g.GetGalleryImages)
		api.POST("/save-image", g.SaveImage)
		api.GET("/test-connection", g.TestConnection)
		api.POST("/upload-asset", uploadLimit, g.UploadAsset)
		api.POST("/upload", uploadLimit, g.LegacyUpload)
	}
}
