package main

import (
	"github.com/urfave/cli/v2"
)

var (
	addrFlag = cli.StringFlag{
		Name:  "addr",
		Usage: "Proof server address (host:port)",
		Value: "127.0.0.1:10000",
	}
	parallelismFlag = cli.IntFlag{
		Name:  "parallelism",
		Usage: "Proofs checked concurrently per update. 0 or 1 checks sequentially",
		Value: 0,
	}
	checkStateHashFlag = cli.BoolFlag{
		Name:  "check-state-hash",
		Usage: "Also recompute each record's state hash from its account metadata",
	}
	maxFrameFlag = cli.StringFlag{
		Name:  "max-frame",
		Usage: "Largest message accepted from the server",
		Value: "64MB",
	}
	verbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "Log level: crit, error, warn, info, debug, trace",
		Value: "info",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "Sets flags not given on the command line from a .yaml or .toml file",
	}
	metricsAddrFlag = cli.StringFlag{
		Name:  "metrics.addr",
		Usage: "Serve prometheus metrics on this address. Disabled if empty",
	}
)

var defaultFlags = []cli.Flag{
	&addrFlag,
	&parallelismFlag,
	&checkStateHashFlag,
	&maxFrameFlag,
	&verbosityFlag,
	&configFlag,
	&metricsAddrFlag,
}

func makeApp() *cli.App {
	return &cli.App{
		Name:   "deltaclient",
		Usage:  "verify account delta proofs streamed by a proof server",
		Flags:  defaultFlags,
		Action: runClient,
	}
}
