// Command scheduler runs one timetable generation pass: it reads a
// GenerateRequest document from stdin (or a file given as the first
// argument), runs the full pipeline, and writes the resulting
// ScheduleDocument as JSON to stdout.
package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"os"

	"github.com/kasakgupta/timetable-scheduler/internal/compliance"
	"github.com/kasakgupta/timetable-scheduler/internal/dto"
	"github.com/kasakgupta/timetable-scheduler/internal/pipeline"
	"github.com/kasakgupta/timetable-scheduler/pkg/config"
	"github.com/kasakgupta/timetable-scheduler/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	input, err := openInput()
	if err != nil {
		logr.Sugar().Fatalw("failed to open input", "error", err)
	}
	defer input.Close()

	var req dto.GenerateRequest
	if err := json.NewDecoder(input).Decode(&req); err != nil {
		logr.Sugar().Fatalw("failed to decode generate request", "error", err)
	}

	p := pipeline.New(cfg.Scheduler, logr)
	doc, err := p.Run(context.Background(), req)
	if err != nil {
		logr.Sugar().Fatalw("generation failed", "error", err)
	}

	if doc.Compliance != nil {
		logr.Sugar().Infow("compliance summary", "report", compliance.Summarize(doc.Compliance))
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		logr.Sugar().Fatalw("failed to encode schedule document", "error", err)
	}
}

func openInput() (io.ReadCloser, error) {
	if len(os.Args) > 1 {
		return os.Open(os.Args[1])
	}
	return os.Stdin, nil
}
