package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestRunCheckPipe(t *testing.T) {
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
		"sequence_b": "A"
	}`)

	args := os.Args[0:1]
	if err := app.Run(args); err != nil {
		t.Fatalf("Run error: %s", err)
	}

	var resp struct {
		AlignmentIsOptimal        string `json:"alignment_is_optimal"`
		AlignmentIsCanonical      string `json:"alignment_is_canonical"`
		NumberOfOptimalAlignments string `json:"number_of_optimal_alignments"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response %q: %v", out.String(), err)
	}
	if resp.AlignmentIsOptimal != "yes" {
		t.Errorf("got alignment_is_optimal=%s, want yes", resp.AlignmentIsOptimal)
	}
	if resp.NumberOfOptimalAlignments != "1" {
		t.Errorf("got number_of_optimal_alignments=%s, want 1", resp.NumberOfOptimalAlignments)
	}
}

func TestRunCheckPipeRejectsMismatchedLengths(t *testing.T) {
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
		"sequence_a": "AC",
		"sequence_b": "A"
	}`)

	args := os.Args[0:1]
	if err := app.Run(args); err == nil {
		t.Fatal("expected an error for mismatched-length aligned rows")
	}
}
