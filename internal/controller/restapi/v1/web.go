package v1

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed web/*.html
var webFiles embed.FS

// ViewsEngine serves the embedded login/upload/gallery pages, no on-disk
// template directory is needed at runtime.
func ViewsEngine() (*html.Engine, error) {
	sub, err := fs.Sub(webFiles, "web")
	if err != nil {
		return nil, fmt.Errorf("restapi - v1 - ViewsEngine - fs.Sub: %w", err)
	}

	return html.NewFileSystem(http.FS(sub), ".html"), nil
}
