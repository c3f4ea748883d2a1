package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"watermarker/pkg/watermark"
)

type config struct {
	verbose     bool
	jpegQuality int
	workers     int
}

func defaultConfig() config {
	return config{
		jpegQuality: watermark.DefaultJPEGQuality,
		workers:     1,
	}
}

func main() {
	cfg := defaultConfig()
	flag.BoolVar(&cfg.verbose, "v", cfg.verbose, "log debug details to stderr")
	flag.IntVar(&cfg.jpegQuality, "jpeg-quality", cfg.jpegQuality, "jpeg output quality 1..100")
	flag.IntVar(&cfg.workers, "workers", cfg.workers, "row workers for the pixel scan")
	flag.Parse()

	if err := cfg.validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	if cfg.verbose {
		watermark.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(os.Stdin, os.Stdout, cfg); err != nil {
		fmt.Fprintln(os.Stdout, err)
		os.Exit(1)
	}
}

func (c config) validate() error {
	if c.jpegQuality < 1 || c.jpegQuality > 100 {
		return fmt.Errorf("invalid -jpeg-quality %d: want 1..100", c.jpegQuality)
	}
	if c.workers < 1 {
		return fmt.Errorf("invalid -workers %d: want at least 1", c.workers)
	}
	return nil
}
