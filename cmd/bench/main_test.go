package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestRunBenchPipe(t *testing.T) {
	var out bytes.Buffer
	app := application()
	app.Writer = &out
	app.Reader = strings.NewReader(`{
		"parameters": {
			"pa": {"num": 1, "denom": 4}, "pc": {"num": 1, "denom": 4},
			"pg": {"num": 1, "denom": 4}, "pt": {"num": 1, "denom": 4},
			"lambda": {"num": 1, "denom": 1}, "mu": {"num": 2, "denom": 1},
			"tau": {"num": 1, "denom": 10}
		},
		"sequence_a": "A",
		"sequence_b": "A",
		"precision": "high",
		"samples": 2
	}`)

	args := os.Args[0:1]
	if err := app.Run(args); err != nil {
		t.Fatalf("Run error: %s", err)
	}

	var resp struct {
		TicksPerSecond int64   `json:"ticks_per_second"`
		ElapsedTicks   []int64 `json:"elapsed_ticks"`
		SequenceA      string  `json:"sequence_a"`
		SequenceB      string  `json:"sequence_b"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response %q: %v", out.String(), err)
	}
	if len(resp.ElapsedTicks) != 2 {
		t.Errorf("got %d samples, want 2", len(resp.ElapsedTicks))
	}
	if resp.SequenceA != "A" || resp.SequenceB != "A" {
		t.Errorf("got rows %q/%q, want A/A", resp.SequenceA, resp.SequenceB)
	}
}

func TestRunBenchPipeRejectsZeroSamples(t *testing.T) {
	var out bytes.Buffer
	app := application()
	app.Writer = &out
	app.Reader = strings.NewReader(`{
		"parameters": {
			"pa": {"num": 1, "denom": 4}, "pc": {"num": 1, "denom": 4},
			"pg": {"num": 1, "denom": 4}, "pt": {"num": 1, "denom": 4},
			"lambda": {"num": 1, "denom": 1}, "mu": {"num": 2, "denom": 1},
			"tau": {"num": 1, "denom": 10}
		},
		"sequence_a": "A",
		"sequence_b": "A",
		"precision": "high",
		"samples": 0
	}`)

	args := os.Args[0:1]
	if err := app.Run(args); err == nil {
		t.Fatal("expected an error for samples=0")
	}
}
