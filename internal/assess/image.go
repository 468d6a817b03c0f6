// internal/assess/image.go
package assess

import (
	"fmt"
	"os"

	"github.com/factorylens/hazardbench/internal/util"
)

// Image is one factory photograph ready to send to the model.
type Image struct {
	Path     string
	Data     []byte
	MIMEType string
}

// LoadImage reads an image from disk and declares its MIME type by file
// extension. A missing file is the caller's signal to skip the trial.
func LoadImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("image not found: %w", err)
	}
	return Image{
		Path:     path,
		Data:     data,
		MIMEType: util.MIMEByExtension(path),
	}, nil
}
