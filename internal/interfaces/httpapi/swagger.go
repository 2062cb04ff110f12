package httpapi

import (
	_ "embed"
	"fmt"
	"net/http"
	"strconv"
)

const (
	swaggerTitle = "Cricket Scorecard API Docs"
	openAPIPath  = "/openapi.yaml"
	swaggerDist  = "https://unpkg.com/swagger-ui-dist@5"
)

//go:embed openapi.yaml
var openAPISpec []byte

var swaggerPage = []byte(fmt.Sprintf(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>%[1]s</title>
    <link rel="stylesheet" href="%[2]s/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="%[2]s/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '%[3]s',
        dom_id: '#swagger-ui',
        deepLinking: true,
        tryItOutEnabled: true,
        presets: [SwaggerUIBundle.presets.apis],
      });
    </script>
  </body>
</html>`, swaggerTitle, swaggerDist, openAPIPath))

func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	h.writeStatic(w, r, "application/yaml; charset=utf-8", openAPISpec)
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	h.writeStatic(w, r, "text/html; charset=utf-8", swaggerPage)
}

func (h *Handler) writeStatic(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(body); err != nil {
		h.logger.WarnContext(r.Context(), "write static document failed", "path", r.URL.Path, "error", err)
	}
}
