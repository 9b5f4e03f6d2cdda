package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"resumescan-backend/internal/render"
)

func main() {
	inPath := flag.String("in", "", "path to an input PDF")
	outPath := flag.String("out", "./out/resume.png", "output path for the rendered PNG")
	flag.Parse()

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "usage: renderdemo -in resume.pdf [-out resume.png]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
		os.Exit(1)
	}

	renderer := render.New()
	result := renderer.Render(context.Background(), render.Document{
		FileName: filepath.Base(*inPath),
		Data:     data,
	})
	if result.Err != "" {
		fmt.Fprintf(os.Stderr, "render failed: %s\n", result.Err)
		os.Exit(1)
	}
	if !result.HasArtifact() {
		fmt.Fprintln(os.Stderr, "render produced no artifact")
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, result.Data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: wrote %s (%dx%d, %s)\n", *outPath, result.Width, result.Height, result.FileName)
}
