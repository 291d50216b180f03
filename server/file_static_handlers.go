package server

import (
	"embed"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
)

//go:embed static/*
var staticFiles embed.FS

// StaticFilesFS exposes the embedded pages, stylesheets and scripts rooted at static/
func StaticFilesFS() fs.FS {
	subFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic("Failed to create static sub filesystem: " + err.Error())
	}
	return subFS
}

// StreamAsset writes an embedded stylesheet or script with its content type.
func StreamAsset(w http.ResponseWriter, name string) error {
	data, err := fs.ReadFile(StaticFilesFS(), name)
	if err != nil {
		return fmt.Errorf("[Server StreamAsset] %s: %w", name, err)
	}

	w.Header().Set("Content-Type", assetContentType(name, data))
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("[Server StreamAsset] writing %s: %w", name, err)
	}
	return nil
}

// assetContentType resolves the type from the extension, sniffing when unknown.
// Text types always carry an explicit utf-8 charset.
func assetContentType(name string, data []byte) string {
	ctype := mime.TypeByExtension(strings.ToLower(path.Ext(name)))
	if ctype == "" {
		ctype = http.DetectContentType(data)
	}
	if strings.HasPrefix(ctype, "text/") && !strings.Contains(strings.ToLower(ctype), "charset=") {
		ctype += "; charset=utf-8"
	}
	return ctype
}
