package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"sellerkit/internal/compositor"
	"sellerkit/internal/infra"
)

// Offline compositing: render a text overlay onto a local template image
// without running the API server.
func main() {
	var (
		templatePath = flag.String("template", "", "path to the template image")
		title        = flag.String("title", "", "main title text")
		subtitle     = flag.String("subtitle", "", "subtitle text")
		points       = flag.String("points", "", "key points, comma separated (max 3)")
		output       = flag.String("out", "", "output path (defaults to OUTPUT_DIR/composite.png)")
	)
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := infra.LoadConfig()
	if err != nil {
		fatal("load config: %v", err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	if *templatePath == "" {
		fatal("-template is required")
	}
	file, err := os.Open(*templatePath)
	if err != nil {
		fatal("open template: %v", err)
	}
	img, _, err := image.Decode(file)
	file.Close()
	if err != nil {
		fatal("decode template: %v", err)
	}

	spec := compositor.TextRenderSpec{Title: *title, Subtitle: *subtitle}
	for _, p := range strings.Split(*points, ",") {
		if p = strings.TrimSpace(p); p != "" {
			spec.KeyPoints = append(spec.KeyPoints, p)
		}
	}

	analysis, err := compositor.Analyze(img)
	if err != nil {
		fatal("analyze: %v", err)
	}
	logger.Info().
		Strs("palette", analysis.DominantColors).
		Int("text_regions", len(analysis.TextRegions)).
		Msg("template analyzed")

	out, err := compositor.Compose(img, spec, analysis)
	if err != nil {
		fatal("compose: %v", err)
	}

	dest := *output
	if dest == "" {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			fatal("ensure output dir: %v", err)
		}
		dest = filepath.Join(cfg.OutputDir, "composite.png")
	}
	f, err := os.Create(dest)
	if err != nil {
		fatal("create output: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, out); err != nil {
		fatal("encode output: %v", err)
	}
	logger.Info().Str("path", dest).Msg("composite written")
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
