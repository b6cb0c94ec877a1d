/*
Command count reads one count request (§6) as JSON from stdin — two
raw, unaligned sequences — and writes the exact number of distinct
co-optimal alignments as JSON to stdout.

Grounded on _examples/bebop-poly/poly/main.go's run(args)/application()
split.
*/
package main

import (
	"log"
	"os"

	"github.com/openalign/tkf91cert/cmd/internal/runner"
	"github.com/openalign/tkf91cert/proto"
	"github.com/urfave/cli/v2"
)

func main() {
	run(os.Args)
}

func run(args []string) {
	log.SetOutput(os.Stderr)
	if err := application().Run(args); err != nil {
		log.Fatal(err)
	}
}

func application() *cli.App {
	return &cli.App{
		Name:  "count",
		Usage: "Count the distinct co-optimal TKF91 alignments of two sequences from a JSON request on stdin.",
		Action: func(c *cli.Context) error {
			var req proto.CountRequest
			return runner.Run(c.App.Reader, c.App.Writer, &req, func() (interface{}, error) {
				return proto.RunCount(req)
			})
		},
	}
}
