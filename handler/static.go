package handler

import (
	"Agora/config"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

// Static serves files from the configured root. Unlike http.FileServer it
// serves /index.html as is instead of redirecting to the directory.
type Static struct {
	Config *config.Config
}

func (s *Static) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusNotFound)
		return
	}
	name := path.Clean("/" + c.Request.URL.Path)
	f, err := os.Open(filepath.Join(s.Config.Static.Root, filepath.FromSlash(name)))
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		c.Status(http.StatusNotFound)
		return
	}
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}
