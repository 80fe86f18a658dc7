// Package web serves the embedded student dashboard.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed static
var staticFS embed.FS

// Register mounts the dashboard at / and its assets under /static.
func Register(r *gin.Engine) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("embedded dashboard assets missing: " + err.Error())
	}

	r.StaticFS("/static", http.FS(sub))
	r.GET("/", func(c *gin.Context) {
		// http.FileServer redirects bare index.html requests, so serve the
		// bytes directly
		page, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", page)
	})
}
