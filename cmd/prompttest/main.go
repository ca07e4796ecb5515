package main

// Manual harness for the analysis pipeline against the live completion API:
//   go run ./cmd/prompttest -resume resume.txt -jd jd.txt

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"resume-optimizer/internal/analyses"
	"resume-optimizer/internal/llm/anthropic"
	"resume-optimizer/internal/shared/config"
)

func main() {
	resumePath := flag.String("resume", "", "path to resume text file")
	jdPath := flag.String("jd", "", "path to job description text file")
	flag.Parse()

	if *resumePath == "" || *jdPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	resumeText, err := os.ReadFile(*resumePath)
	if err != nil {
		log.Fatalf("read resume: %v", err)
	}
	jdText, err := os.ReadFile(*jdPath)
	if err != nil {
		log.Fatalf("read job description: %v", err)
	}

	cfg := config.Load()
	client, err := anthropic.New(cfg.AnthropicAPIKey,
		anthropic.WithModel(cfg.LLMModel),
		anthropic.WithTimeout(time.Duration(cfg.LLMTimeoutSeconds)*time.Second),
	)
	if err != nil {
		log.Fatalf("build client: %v", err)
	}

	svc := analyses.NewService(client, nil, cfg.LLMMaxTokens)

	start := time.Now()
	analysis, err := svc.Analyze(context.Background(), "", string(resumeText), string(jdText))
	if err != nil {
		log.Fatalf("analyze: %v", err)
	}

	out, err := json.MarshalIndent(analysis.Result, "", "  ")
	if err != nil {
		log.Fatalf("marshal result: %v", err)
	}
	fmt.Println(string(out))

	var result analyses.AnalysisResult
	if raw, err := json.Marshal(analysis.Result); err == nil {
		_ = json.Unmarshal(raw, &result)
	}
	score, applicable := analyses.Score(result.GapAnalysis)
	fmt.Fprintf(os.Stderr, "\nelapsed=%s score=%d applicable=%t changes=%d\n",
		time.Since(start).Round(time.Millisecond), score, applicable, len(result.LineByLineChanges))
}
