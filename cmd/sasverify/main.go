// Command sasverify drives the verification package end to end against a
// pair of in-process devices, for manual inspection of the wire messages
// and the derived short code without wiring up a real transport.
package main

import (
	"github.com/alecthomas/kong"
)

type cli struct {
	Demo demoCmd `cmd:"" help:"Run a local two-device SAS verification and print the transcript."`
}

func main() {
	var cli cli

	ctx := kong.Parse(&cli,
		kong.Name("sasverify"),
		kong.Description("SAS device-verification transaction core, demoed locally."),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
