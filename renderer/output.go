package renderer

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// Encode frame as a PNG image and write it to filename.
func SaveFrame(frame image.Image, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("renderer: could not create %s: %w", filename, err)
	}

	if err = png.Encode(f, frame); err != nil {
		f.Close()
		return fmt.Errorf("renderer: could not encode frame to %s: %w", filename, err)
	}
	return f.Close()
}
