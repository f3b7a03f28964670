package email

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var logoMimeByExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".webp": "image/webp",
	// SVG renders, but some mail clients filter it.
	".svg": "image/svg+xml",
}

// LoadLogoDataURI reads the helpdesk logo into an inline data URI so the
// email needs no external asset. Any failure yields an empty string and
// the composer simply omits the logo block.
func LoadLogoDataURI(path string) string {
	if path == "" {
		return ""
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	mime, ok := logoMimeByExt[strings.ToLower(filepath.Ext(path))]
	if !ok {
		mime = mimetype.Detect(data).String()
	}

	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data))
}
