/*
Package runner implements the one-request-in, one-response-out shape
every cmd/* executable shares (§6): decode a single JSON object from a
reader, hand it to a handler, and write the JSON response — or the
literal null on any failure — to a writer.

Grounded on _examples/bebop-poly/poly/main.go's run(args)/application()
split (main kept trivial, everything else testable) and
_examples/bebop-poly/cmd/poly/commands_test.go's pattern of swapping
cli.App's Reader/Writer fields for pipe-style testing.
*/
package runner

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// Run decodes one JSON request into req, calls handle, and writes
// exactly one JSON value to w: the handler's response on success, or
// the literal null after printing a diagnostic to stderr (§6, §7). It
// returns a cli.Exit error on failure so the caller's *cli.App reports
// a nonzero process exit code without the four executables each
// re-implementing that plumbing.
func Run(r io.Reader, w io.Writer, req interface{}, handle func() (interface{}, error)) error {
	if err := json.NewDecoder(r).Decode(req); err != nil {
		fmt.Fprintln(os.Stderr, "invalid request:", err)
		fmt.Fprintln(w, "null")
		return cli.Exit("", 1)
	}

	resp, err := handle()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(w, "null")
		return cli.Exit("", 1)
	}

	return json.NewEncoder(w).Encode(resp)
}
