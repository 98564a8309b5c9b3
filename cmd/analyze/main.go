// Command analyze runs the detection pipeline on files from disk and
// prints one JSON report per file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"

	"github.com/AnishkaKhobragade/DeFake-AI/internal/config"
	"github.com/AnishkaKhobragade/DeFake-AI/internal/detection"
	"github.com/AnishkaKhobragade/DeFake-AI/internal/service"
	"github.com/AnishkaKhobragade/DeFake-AI/pkg/logger"
)

func main() {
	claims := flag.String("claims", "", "semicolon separated claims to fact-check")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [-claims \"a;b\"] <file>...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}

	// Reports go to stdout, so logs stay quiet unless asked for.
	level := "warn"
	if os.Getenv("LOG_LEVEL") != "" {
		level = cfg.Log.Level
	}
	zl, err := logger.New(level)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer zl.Sync()

	log := zl.Sugar()

	engine, err := detection.New(cfg.Detection)
	if err != nil {
		log.Fatal("Failed to create detection engine: ", err)
	}

	ingestor := service.NewMediaIngestor(&cfg.App, zl)
	analysis := service.NewAnalysisService(engine, zl)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")

	failed := false
	for _, path := range flag.Args() {
		if err := analyzeFile(ctx, ingestor, analysis, enc, path, splitClaims(*claims)); err != nil {
			log.Errorw("Failed to analyze file", "path", path, "error", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

func analyzeFile(ctx context.Context, ingestor service.MediaIngestor, analysis service.AnalysisService, enc *json.Encoder, path string, claims []string) error {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	media, err := ingestor.Ingest(path, declaredType(mtype, path), f)
	if err != nil && !service.IsPreviewOnly(err) {
		return err
	}

	report, err := analysis.Analyze(ctx, media, claims)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "%s: %s, %s\n", media.Filename, media.ContentType, humanize.Bytes(uint64(media.Size)))
	return enc.Encode(report)
}

// declaredType keeps a sniffed image or video type and otherwise falls back
// to the extension, so a corrupt .jpg is reported as unreadable.
func declaredType(sniffed *mimetype.MIME, path string) string {
	for m := sniffed; m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") || strings.HasPrefix(m.String(), "video/") {
			return m.String()
		}
	}
	return service.TypeByExtension(path)
}

func splitClaims(raw string) []string {
	var out []string
	for _, c := range strings.Split(raw, ";") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
