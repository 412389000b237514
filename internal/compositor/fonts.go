package compositor

import (
	"os"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// Font sizes for the three text tiers.
const (
	titleFontSize    = 48
	subtitleFontSize = 28
	contentFontSize  = 24
)

// fontPaths is probed in order. CJK-capable fonts come first since most
// rendered text is Chinese.
var fontPaths = []string{
	"static/fonts/PingFang-Bold.ttf",
	"static/fonts/PingFang-Regular.ttf",
	"/System/Library/Fonts/PingFang.ttc",
	"/usr/share/fonts/truetype/wqy/wqy-microhei.ttc",
	"/usr/share/fonts/opentype/noto/NotoSansCJK-Regular.ttc",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"C:/Windows/Fonts/msyh.ttc",
}

var (
	loadOnce   sync.Once
	loadedFont *sfnt.Font
)

// loadFace returns a face at the requested size. It probes the known font
// paths once and falls back to the embedded bitmap face, so text rendering
// always has a usable face.
func loadFace(size float64) font.Face {
	loadOnce.Do(func() {
		for _, path := range fontPaths {
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			parsed, err := parseFont(path, data)
			if err != nil {
				continue
			}
			loadedFont = parsed
			return
		}
	})
	if loadedFont == nil {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(loadedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return basicfont.Face7x13
	}
	return face
}

// parseFont handles both single fonts and .ttc collections, taking the
// first font of a collection.
func parseFont(path string, data []byte) (*sfnt.Font, error) {
	if strings.HasSuffix(strings.ToLower(path), ".ttc") {
		collection, err := opentype.ParseCollection(data)
		if err != nil {
			return nil, err
		}
		return collection.Font(0)
	}
	return opentype.Parse(data)
}
