package route

import (
	"guestgallery/controller"
	"guestgallery/middlewares"
	"guestgallery/web"

	"github.com/gin-gonic/gin"
)

type Options struct {
	CORSOrigins []string
	// UploadLimit guards the upload routes. Nil leaves them unlimited.
	UploadLimit gin.HandlerFunc
	Tracing     gin.HandlerFunc
}

// NewRouter builds the engine with recovery, tracing, request logging and CORS.
func NewRouter(g *controller.Gallery, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if opts.Tracing != nil {
		router.Use(opts.Tracing)
	}
	router.Use(middlewares.RequestLogger(), middlewares.CORS(opts.CORSOrigins))
	router.SetHTMLTemplate(web.Templates())

	limit := opts.UploadLimit
	if limit == nil {
		limit = func(c *gin.Context) { c.Next() }
	}
	API(router, g, limit)
	Pages(router, g, limit)
	return router
}
