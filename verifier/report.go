package verifier

import (
	"encoding/hex"
	"errors"

	"github.com/ledgerwatch/log/v3"
	"github.com/mit-pdos/deltaproof/deltaproof"
)

// Report logs r: one line per failure, a debug line per success,
// and a summary line for the update.
func Report(logger log.Logger, r *Result) {
	failed := 0
	for _, o := range r.Outcomes {
		if o.Ok() {
			logger.Debug("Proof verified", "slot", r.Slot, "index", o.Index,
				"variant", o.Variant, "pubkey", hex.EncodeToString(o.Pubkey))
			continue
		}
		failed++
		logger.Warn("Proof verification failed", "slot", r.Slot, "index", o.Index,
			"variant", o.Variant, "pubkey", hex.EncodeToString(o.Pubkey),
			"kind", ErrKind(o.Err), "err", o.Err)
	}
	if r.BankHashErr != nil {
		logger.Warn("Bank hash verification failed", "slot", r.Slot,
			"kind", ErrKind(r.BankHashErr), "err", r.BankHashErr)
	}
	logger.Info("Verified update", "slot", r.Slot, "proofs", len(r.Outcomes),
		"failed", failed, "bankhash", hex.EncodeToString(r.BankHash), "ok", r.Ok())
}

// ErrKind extracts the failure kind from a verification error.
func ErrKind(err error) deltaproof.Kind {
	if err == nil {
		return deltaproof.KindNone
	}
	var e *deltaproof.Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return deltaproof.MalformedProof
}
