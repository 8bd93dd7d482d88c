package artifacts

import (
	"mime"
	"path/filepath"
	"strings"
)

const fallbackContentType = "application/octet-stream"

// Types produced by test runs that are either missing from the builtin mime
// table or would otherwise depend on the host's mime.types.
var knownTypes = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".xml":  "application/xml",
	".txt":  "text/plain",
	".log":  "text/plain",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
	".zip":  "application/zip",
}

var utf8Types = map[string]bool{
	"application/json":       true,
	"application/javascript": true,
	"application/xml":        true,
}

// ContentType infers the Content-Type header for the given path from its
// extension, attaching a charset where one applies.
func ContentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	mediaType, ok := knownTypes[ext]
	if !ok {
		if t := mime.TypeByExtension(ext); t != "" {
			if parsed, _, err := mime.ParseMediaType(t); err == nil {
				mediaType = parsed
			}
		}
	}
	if mediaType == "" {
		return fallbackContentType
	}

	if cs := charsetOf(mediaType); cs != "" {
		return mediaType + "; charset=" + cs
	}
	return mediaType
}

func charsetOf(mediaType string) string {
	if strings.HasPrefix(mediaType, "text/") || utf8Types[mediaType] {
		return "UTF-8"
	}
	return ""
}
