package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func TestRunCountPipe(t *testing.T) {
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
		NumberOfOptimalAlignments string `json:"number_of_optimal_alignments"`
	}
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode response %q: %v", out.String(), err)
	}
	if resp.NumberOfOptimalAlignments != "1" {
		t.Errorf("got %s, want 1", resp.NumberOfOptimalAlignments)
	}
}

func TestRunCountPipeRejectsInvalidParameters(t *testing.T) {
	var out bytes.Buffer
	app := application()
	app.Writer = &out
	app.Reader = strings.NewReader(`{
		"parameters": {
			"pa": {"num": 1, "denom": 4}, "pc": {"num": 1, "denom": 4},
			"pg": {"num": 1, "denom": 4}, "pt": {"num": 1, "denom": 4},
			"lambda": {"num": 5, "denom": 1}, "mu": {"num": 2, "denom": 1},
			"tau": {"num": 1, "denom": 10}
		},
		"sequence_a": "A",
		"sequence_b": "A"
	}`)

	args := os.Args[0:1]
	if err := app.Run(args); err == nil {
		t.Fatal("expected lambda >= mu to be rejected")
	}
}
