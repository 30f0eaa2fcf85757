package icons

import (
	"fmt"
	"image/png"
	"os"

	"github.com/disintegration/imaging"

	"iconforge/core"
)

// AddBackground composites a solid background color under the image at
// imagePath and writes the result as a new PNG. An empty outputPath
// derives a sibling path with a _bg suffix, disambiguated on collision.
func AddBackground(imagePath, colorSpec, outputPath string) (string, error) {
	img, err := decodeImage(imagePath)
	if err != nil {
		return "", err
	}

	result := compositeOnColor(imaging.Clone(img), ParseBackgroundColor(colorSpec))

	if outputPath == "" {
		outputPath = core.UniquePath(core.DerivedPath(imagePath, "_bg"))
	}
	f, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", outputPath, err)
	}
	defer f.Close()
	if err := png.Encode(f, result); err != nil {
		return "", fmt.Errorf("encode %s: %w", outputPath, err)
	}
	return outputPath, nil
}
