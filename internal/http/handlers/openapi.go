package handlers

import (
	_ "embed"
	"fmt"
	"net/http"
)

//go:embed openapi.json
var openAPISpec []byte

const (
	docsTitle    = "Flatify API Docs"
	docsSpecPath = "/v1/openapi.json"
	redocBundle  = "https://cdn.jsdelivr.net/npm/redoc@2.2.0/bundles/redoc.standalone.js"
)

var docsPage = []byte(fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>%s</title>
<style>body{margin:0}redoc{display:block;height:100vh}</style>
</head>
<body>
<redoc spec-url=%q hide-download-button></redoc>
<script src=%q></script>
</body>
</html>`, docsTitle, docsSpecPath, redocBundle))

// OpenAPIJSON serves the embedded route description.
func (a *App) OpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	writeStatic(w, "application/json; charset=utf-8", openAPISpec)
}

func (a *App) OpenAPIDocs(w http.ResponseWriter, _ *http.Request) {
	writeStatic(w, "text/html; charset=utf-8", docsPage)
}

func writeStatic(w http.ResponseWriter, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
