// Command city-backfill canonicalizes city/country pairs in bulk. It reads
// NDJSON lines {"city": ..., "country": ...} on stdin and writes each input
// back out with its canonical identity attached, for re-keying existing
// spot data after canonicalization rule changes.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sync"

	"spots_backend/internal/geo/citynorm"
	"spots_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const maxConcurrency = 8

type inputLine struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

type outputLine struct {
	City      string          `json:"city"`
	Country   string          `json:"country"`
	Canonical citynorm.Result `json:"canonical"`
}

func main() {
	log := logger.New(os.Getenv("APP_ENV"))
	log.Info("starting city backfill")

	var (
		mu      sync.Mutex
		encoder = json.NewEncoder(os.Stdout)
	)

	group, _ := errgroup.WithContext(context.Background())
	group.SetLimit(maxConcurrency)

	lines := 0
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		line := make([]byte, len(raw))
		copy(line, raw)
		lines++

		group.Go(func() error {
			var in inputLine
			if err := json.Unmarshal(line, &in); err != nil {
				log.Warn("skipping malformed line", "error", err)
				return nil
			}

			out := outputLine{
				City:      in.City,
				Country:   in.Country,
				Canonical: citynorm.Canonicalize(in.City, in.Country),
			}

			mu.Lock()
			defer mu.Unlock()
			return encoder.Encode(out)
		})
	}

	if err := scanner.Err(); err != nil {
		log.Error("failed to read input", "error", err)
		os.Exit(1)
	}
	if err := group.Wait(); err != nil {
		log.Error("failed to write output", "error", err)
		os.Exit(1)
	}

	log.Info("city backfill complete", "lines", lines)
}
