/*
Command check reads one check request (§6) as JSON from stdin — a
candidate alignment, already aligned — and writes its optimality and
canonicity verdicts plus the true co-optimal count as JSON to stdout.

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
		Name:  "check",
		Usage: "Verify a candidate TKF91 alignment's optimality and canonicity from a JSON request on stdin.",
		Action: func(c *cli.Context) error {
			var req proto.CheckRequest
			return runner.Run(c.App.Reader, c.App.Writer, &req, func() (interface{}, error) {
				return proto.RunCheck(req)
			})
		},
	}
}
