package deltaproof

import (
	"encoding/hex"
	"fmt"
)

// Kind classifies a verification failure.
// every kind is recoverable and reported per proof.
type Kind uint64

const (
	KindNone Kind = iota
	// MalformedProof is a structural inconsistency, e.g., a bad path length.
	MalformedProof
	// RootMismatch is a path that doesn't reconstruct the delta root.
	RootMismatch
	// OrderingViolation is a failed adjacency or boundary check.
	OrderingViolation
	// BankHashMismatch is a reconstructed bank hash that differs from the claimed one.
	BankHashMismatch
	// SizeMismatch is a right-boundary leaf list that doesn't match the tree.
	SizeMismatch
)

var kindNames = map[Kind]string{
	KindNone:          "none",
	MalformedProof:    "malformed proof",
	RootMismatch:      "root mismatch",
	OrderingViolation: "ordering violation",
	BankHashMismatch:  "bank hash mismatch",
	SizeMismatch:      "size mismatch",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint64(k))
}

// Error lets a Kind be matched with errors.Is.
func (k Kind) Error() string {
	return k.String()
}

// Error is a failed check, with enough context to log or alert on.
type Error struct {
	Kind Kind
	Slot uint64
	// Variant and Pubkey are unset for bank hash failures,
	// which aren't tied to one proof.
	Variant Variant
	Pubkey  []byte
	Msg     string
}

func (e *Error) Error() string {
	if e.Pubkey == nil {
		return fmt.Sprintf("slot %d: %s: %s", e.Slot, e.Kind, e.Msg)
	}
	return fmt.Sprintf("slot %d: %s proof for %s: %s: %s",
		e.Slot, e.Variant, hex.EncodeToString(e.Pubkey), e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func fail(p AccountDeltaProof, kind Kind, msg string) *Error {
	return &Error{Kind: kind, Variant: p.Variant(), Pubkey: p.Queried(), Msg: msg}
}
