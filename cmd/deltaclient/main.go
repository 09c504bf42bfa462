// deltaclient connects to a proof server, verifies every update it streams,
// and records the slots that verified.
package main

import (
	"fmt"
	"os"

	"github.com/ledgerwatch/log/v3"
)

func main() {
	app := makeApp()
	if err := app.Run(os.Args); err != nil {
		if _, printErr := fmt.Fprintln(os.Stderr, err); printErr != nil {
			log.Warn("Fprintln error", "err", printErr)
		}
		os.Exit(1)
	}
}
