package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gen2brain/tga/internal/config"
	"github.com/gen2brain/tga/internal/convert"
)

func main() {
	cfg := config.ParseFlags()

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Usage: tga2png [-format png|bmp|tiff] [-out dir] [-workers n] file.tga...\n%v", err)
	}

	conv, err := convert.New(cfg)
	if err != nil {
		log.Fatalf("converter: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	start := time.Now()
	n, err := conv.Convert(ctx, cfg.Inputs)
	stop()

	if err != nil {
		if convert.IsDecodeError(err) {
			log.Fatalf("decode: %v (%d of %d files converted)", err, n, len(cfg.Inputs))
		}

		log.Fatalf("convert: %v (%d of %d files converted)", err, n, len(cfg.Inputs))
	}

	log.Printf("Converted %d files to %s in %v", n, cfg.Format, time.Since(start).Round(time.Millisecond))
}
