package file

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// Controller serves uploaded files from a flat directory.
type Controller struct {
	dir string
}

func NewController(dir string) *Controller {
	return &Controller{dir}
}

// File serves /<prefix>/*filepath. Nested paths and directories are not
// served.
func (cf Controller) File(c *gin.Context) {
	name := path.Clean("/" + c.Param("filepath"))[1:]
	if name == "" || strings.Contains(name, "/") || strings.HasPrefix(name, ".") {
		c.JSON(http.StatusNotFound, map[string]any{
			"error":  "file not found",
			"status": false,
		})
		return
	}

	full := filepath.Join(cf.dir, name)
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, map[string]any{
			"error":  "file not found",
			"status": false,
		})
		return
	}

	c.Header("Cache-Control", "public, max-age=86400")
	http.ServeFile(c.Writer, c.Request, full)
}
