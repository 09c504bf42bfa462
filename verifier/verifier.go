// Package verifier checks a slot update: every account delta proof
// against the shared delta root, and the delta root against the bank hash.
//
// verification is pure and synchronous. it never stops at the first failure;
// callers get one outcome per proof, in input order, and pick their own policy.
package verifier

import (
	"github.com/mit-pdos/deltaproof/bankhash"
	"github.com/mit-pdos/deltaproof/deltaproof"
	"golang.org/x/sync/errgroup"
)

// BankHashProof bundles a slot's account proofs with the values
// needed to rebuild its bank hash.
type BankHashProof struct {
	Proofs           []deltaproof.AccountDeltaProof
	NumSigs          uint64
	AccountDeltaRoot []byte
	ParentBankHash   []byte
	BlockHash        []byte
}

// Update is one decoded message from the proof stream.
type Update struct {
	Slot uint64
	// Root is the claimed bank hash.
	Root  []byte
	Proof *BankHashProof
}

// Context groups u's cryptographic values for the bank hash check.
func (u *Update) Context() *bankhash.Context {
	return &bankhash.Context{
		Slot:             u.Slot,
		Claimed:          u.Root,
		NumSigs:          u.Proof.NumSigs,
		AccountDeltaRoot: u.Proof.AccountDeltaRoot,
		ParentBankHash:   u.Proof.ParentBankHash,
		BlockHash:        u.Proof.BlockHash,
	}
}

type Config struct {
	// Parallelism bounds the goroutines checking one batch.
	// <= 1 checks proofs sequentially.
	Parallelism int
	// CheckStateHash decodes leaf metadata and checks it against state hashes.
	CheckStateHash bool
}

// Outcome is the verdict on one proof.
type Outcome struct {
	Index   int
	Variant deltaproof.Variant
	Pubkey  []byte
	// Err is nil on success, else a *deltaproof.Error.
	Err error
}

func (o *Outcome) Ok() bool {
	return o.Err == nil
}

type Result struct {
	Slot uint64
	// BankHash is the reconstructed bank hash, nil if its inputs were malformed.
	BankHash    []byte
	BankHashErr error
	Outcomes    []Outcome
}

// Ok requires the bank hash and every proof to check out.
func (r *Result) Ok() bool {
	if r.BankHashErr != nil {
		return false
	}
	for i := range r.Outcomes {
		if !r.Outcomes[i].Ok() {
			return false
		}
	}
	return true
}

// Failures lists the failed outcomes, in input order.
func (r *Result) Failures() []Outcome {
	var fs []Outcome
	for _, o := range r.Outcomes {
		if !o.Ok() {
			fs = append(fs, o)
		}
	}
	return fs
}

type Verifier struct {
	cfg     Config
	checker *deltaproof.Checker
}

func New(cfg Config) *Verifier {
	return &Verifier{cfg: cfg, checker: &deltaproof.Checker{StateHash: cfg.CheckStateHash}}
}

// Verify checks all of u. the bank hash is checked once per update.
func (v *Verifier) Verify(u *Update) *Result {
	if u == nil {
		return &Result{BankHashErr: &deltaproof.Error{Kind: deltaproof.MalformedProof, Msg: "missing update"}}
	}
	res := &Result{Slot: u.Slot}
	if u.Proof == nil {
		res.BankHashErr = &deltaproof.Error{Kind: deltaproof.MalformedProof, Slot: u.Slot, Msg: "missing bank hash proof"}
		return res
	}

	proofs := u.Proof.Proofs
	res.Outcomes = make([]Outcome, len(proofs))
	root := u.Proof.AccountDeltaRoot
	if v.cfg.Parallelism <= 1 || len(proofs) <= 1 {
		for i, p := range proofs {
			res.Outcomes[i] = v.check(u.Slot, i, p, root)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(v.cfg.Parallelism)
		for i, p := range proofs {
			i, p := i, p
			g.Go(func() error {
				// each goroutine owns slot i.
				res.Outcomes[i] = v.check(u.Slot, i, p, root)
				return nil
			})
		}
		_ = g.Wait()
	}

	bankHash, err := u.Context().Check()
	res.BankHash = bankHash
	if err != nil {
		res.BankHashErr = err
	}
	return res
}

func (v *Verifier) check(slot uint64, index int, p deltaproof.AccountDeltaProof, root []byte) Outcome {
	if p == nil {
		return Outcome{Index: index, Err: &deltaproof.Error{Kind: deltaproof.MalformedProof, Slot: slot, Msg: "missing proof"}}
	}
	// Variant and Queried tolerate a nil proof pointer. Check rejects it.
	o := Outcome{Index: index, Variant: p.Variant(), Pubkey: p.Queried()}
	if err := v.checker.Check(p, root); err != nil {
		err.Slot = slot
		o.Err = err
	}
	return o
}
