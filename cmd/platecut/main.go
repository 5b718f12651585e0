// PlateCut - plate cutting and weight partition optimizer.
//
// Build:
//
//	go build -o platecut ./cmd/platecut
package main

import (
	"github.com/piwi3910/PlateCut/cmd/platecut/commands"
)

func main() {
	commands.Execute()
}
