package compositor

import (
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"

	"sellerkit/internal/domain"
)

const (
	paletteEdge   = 150
	paletteK      = 6
	minRegionW    = 50
	minRegionH    = 20
	maxRegions    = 5
	kmeansRounds  = 20
	gradientScale = 2.0
)

// TextRegion is a candidate area for text placement, in source pixel
// coordinates.
type TextRegion struct {
	X           int     `json:"x"`
	Y           int     `json:"y"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	Area        int     `json:"area"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// Zone is one of the fixed layout bands of a template.
type Zone struct {
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Purpose string `json:"purpose"`
}

// TemplateAnalysis summarizes a template image: dimensions, dominant colors,
// candidate text regions and the fixed header/main/footer zones.
type TemplateAnalysis struct {
	Width          int             `json:"width"`
	Height         int             `json:"height"`
	AspectRatio    float64         `json:"aspect_ratio"`
	TextRegions    []TextRegion    `json:"text_regions"`
	DominantColors []string        `json:"color_palette"`
	Zones          map[string]Zone `json:"layout_zones"`
}

// Analyze inspects a template image. Color clustering runs on a 150x150
// downsample with deterministic seeding, so repeated runs on the same input
// produce the same palette.
func Analyze(img image.Image) (*TemplateAnalysis, error) {
	if img == nil {
		return nil, &domain.CompositionError{Stage: "analyze", Cause: fmt.Errorf("nil image")}
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, &domain.CompositionError{Stage: "analyze", Cause: fmt.Errorf("empty image %dx%d", w, h)}
	}

	analysis := &TemplateAnalysis{
		Width:       w,
		Height:      h,
		AspectRatio: float64(w) / float64(h),
		Zones:       layoutZones(w, h),
	}
	analysis.DominantColors = dominantColors(img)
	analysis.TextRegions = detectTextRegions(img)
	return analysis, nil
}

func layoutZones(w, h int) map[string]Zone {
	return map[string]Zone{
		"header": {X: 0, Y: 0, Width: w, Height: h / 4, Purpose: "title"},
		"main":   {X: 0, Y: h / 4, Width: w, Height: h / 2, Purpose: "content"},
		"footer": {X: 0, Y: 3 * h / 4, Width: w, Height: h / 4, Purpose: "footer"},
	}
}

type rgb struct{ r, g, b float64 }

// dominantColors clusters the downsampled pixels with k-means. Centers are
// seeded at evenly spaced pixel indices instead of random picks so the
// result is stable.
func dominantColors(img image.Image) []string {
	small := imaging.Resize(img, paletteEdge, paletteEdge, imaging.Lanczos)
	bounds := small.Bounds()
	pixels := make([]rgb, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := small.At(x, y).RGBA()
			pixels = append(pixels, rgb{float64(r >> 8), float64(g >> 8), float64(b >> 8)})
		}
	}
	if len(pixels) == 0 {
		return nil
	}

	k := paletteK
	if len(pixels) < k {
		k = len(pixels)
	}
	centers := make([]rgb, k)
	for i := range centers {
		centers[i] = pixels[i*len(pixels)/k]
	}

	assign := make([]int, len(pixels))
	counts := make([]int, k)
	for round := 0; round < kmeansRounds; round++ {
		changed := false
		for i, p := range pixels {
			best, bestDist := 0, sqDist(p, centers[0])
			for c := 1; c < k; c++ {
				if d := sqDist(p, centers[c]); d < bestDist {
					best, bestDist = c, d
				}
			}
			if assign[i] != best {
				assign[i] = best
				changed = true
			}
		}
		sums := make([]rgb, k)
		for i := range counts {
			counts[i] = 0
		}
		for i, p := range pixels {
			c := assign[i]
			sums[c].r += p.r
			sums[c].g += p.g
			sums[c].b += p.b
			counts[c]++
		}
		for c := range centers {
			if counts[c] > 0 {
				n := float64(counts[c])
				centers[c] = rgb{sums[c].r / n, sums[c].g / n, sums[c].b / n}
			}
		}
		if !changed {
			break
		}
	}

	order := make([]int, k)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return counts[order[a]] > counts[order[b]] })

	colors := make([]string, 0, k)
	for _, c := range order {
		if counts[c] == 0 {
			continue
		}
		colors = append(colors, fmt.Sprintf("#%02x%02x%02x",
			int(centers[c].r), int(centers[c].g), int(centers[c].b)))
	}
	return colors
}

func sqDist(a, b rgb) float64 {
	dr, dg, db := a.r-b.r, a.g-b.g, a.b-b.b
	return dr*dr + dg*dg + db*db
}

// detectTextRegions thresholds the luminance gradient and groups busy rows
// into horizontal bands. Bands that are too small to hold text are dropped.
func detectTextRegions(img image.Image) []TextRegion {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w < 2 || h < 2 {
		return nil
	}

	lum := make([][]float64, h)
	for y := 0; y < h; y++ {
		lum[y] = make([]float64, w)
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			lum[y][x] = 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
		}
	}

	grad := make([][]float64, h-1)
	var total float64
	for y := 0; y < h-1; y++ {
		grad[y] = make([]float64, w-1)
		for x := 0; x < w-1; x++ {
			gx := lum[y][x+1] - lum[y][x]
			gy := lum[y+1][x] - lum[y][x]
			if gx < 0 {
				gx = -gx
			}
			if gy < 0 {
				gy = -gy
			}
			grad[y][x] = gx + gy
			total += grad[y][x]
		}
	}
	threshold := gradientScale * total / float64((h-1)*(w-1))
	if threshold <= 0 {
		return nil
	}

	// Per-row count of above-threshold pixels, then group consecutive busy
	// rows into candidate bands.
	busy := make([]int, h-1)
	for y := range grad {
		for x := range grad[y] {
			if grad[y][x] > threshold {
				busy[y]++
			}
		}
	}
	rowMin := (w - 1) / 20

	var regions []TextRegion
	bandStart := -1
	for y := 0; y <= len(busy); y++ {
		active := y < len(busy) && busy[y] > rowMin
		if active && bandStart < 0 {
			bandStart = y
			continue
		}
		if !active && bandStart >= 0 {
			if region, ok := bandRegion(grad, threshold, bandStart, y); ok {
				regions = append(regions, region)
			}
			bandStart = -1
		}
	}

	sort.SliceStable(regions, func(a, b int) bool { return regions[a].Area > regions[b].Area })
	if len(regions) > maxRegions {
		regions = regions[:maxRegions]
	}
	return regions
}

func bandRegion(grad [][]float64, threshold float64, top, bottom int) (TextRegion, bool) {
	minX, maxX := len(grad[0]), -1
	for y := top; y < bottom; y++ {
		for x := range grad[y] {
			if grad[y][x] > threshold {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
			}
		}
	}
	if maxX < minX {
		return TextRegion{}, false
	}
	width, height := maxX-minX+1, bottom-top
	if width <= minRegionW || height <= minRegionH {
		return TextRegion{}, false
	}
	return TextRegion{
		X:           minX,
		Y:           top,
		Width:       width,
		Height:      height,
		Area:        width * height,
		AspectRatio: float64(width) / float64(height),
	}, true
}
