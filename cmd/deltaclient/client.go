package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/ledgerwatch/log/v3"
	"github.com/mit-pdos/deltaproof/chainstate"
	"github.com/mit-pdos/deltaproof/netffi"
	"github.com/mit-pdos/deltaproof/verifier"
	"github.com/urfave/cli/v2"
)

type client struct {
	conn    *netffi.Conn
	v       *verifier.Verifier
	tracker *chainstate.Tracker
	m       *metrics
	logger  log.Logger
}

func runClient(cliCtx *cli.Context) error {
	cfg, err := parseConfig(cliCtx)
	if err != nil {
		return err
	}
	log.Root().SetHandler(log.LvlFilterHandler(cfg.lvl, log.StderrHandler))
	logger := log.New("app", "deltaclient")

	m := newMetrics()
	if cfg.metricsAddr != "" {
		go m.serve(cfg.metricsAddr, logger)
	}

	conn, err := netffi.Dial(cfg.addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", cfg.addr, err)
	}
	defer conn.Close()
	conn.SetMaxFrame(cfg.maxFrame.Bytes())
	logger.Info("Connected", "addr", cfg.addr, "parallelism", cfg.verify.Parallelism,
		"checkStateHash", cfg.verify.CheckStateHash, "maxFrame", cfg.maxFrame.HumanReadable())

	c := &client{
		conn:    conn,
		v:       verifier.New(cfg.verify),
		tracker: chainstate.New(),
		m:       m,
		logger:  logger,
	}
	return c.run()
}

// run handles updates until the server hangs up.
func (c *client) run() error {
	for {
		msg, err := c.conn.Receive()
		if errors.Is(err, io.EOF) {
			c.logger.Info("Server closed the stream", "height", c.tracker.Height(),
				"link", hex.EncodeToString(c.tracker.Link()))
			return nil
		}
		if err != nil {
			return fmt.Errorf("receive: %w", err)
		}
		c.handle(msg)
	}
}

func (c *client) handle(msg []byte) {
	u, err := verifier.DecodeMessage(msg)
	if err {
		c.m.malformed.Inc()
		c.logger.Warn("Dropping malformed message", "len", len(msg))
		return
	}

	res := c.v.Verify(u)
	verifier.Report(c.logger, res)
	c.m.observe(res)
	if !res.Ok() {
		return
	}

	height, linked, err0 := c.tracker.Record(res.Slot, u.Proof.ParentBankHash, res.BankHash)
	if err0 != nil {
		c.logger.Warn("Not recording slot", "slot", res.Slot, "err", err0)
		return
	}
	c.m.height.Set(float64(height))
	if height > 1 && !linked {
		c.m.unlinked.Inc()
		c.logger.Warn("Verified slot doesn't extend the previous one", "slot", res.Slot, "height", height)
	}
}
