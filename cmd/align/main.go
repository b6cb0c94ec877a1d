/*
Command align reads one align request (§6) as JSON from stdin and
writes the certified optimal TKF91 alignment as JSON to stdout.

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
		Name:  "align",
		Usage: "Produce the certified optimal TKF91 alignment of two sequences from a JSON request on stdin.",
		Action: func(c *cli.Context) error {
			var req proto.AlignRequest
			return runner.Run(c.App.Reader, c.App.Writer, &req, func() (interface{}, error) {
				return proto.RunAlign(req)
			})
		},
	}
}
