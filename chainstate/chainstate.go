// Package chainstate tracks the slots whose updates verified.
// it counts slot height, stores the transition at each height,
// and commits to the whole history with a hash chain.
// the verifier never consults it.
package chainstate

import (
	"bytes"
	"errors"
	"sync"

	"github.com/mit-pdos/deltaproof/cryptoffi"
	"github.com/mit-pdos/deltaproof/cryptoutil"
	"github.com/tchajed/marshal"
)

// entryLen is one chain entry: slot (le64) ++ bank hash.
const entryLen = 8 + cryptoffi.HashLen

var (
	ErrSlotNotIncreasing = errors.New("chainstate: slot doesn't increase")
	ErrBadBankHash       = errors.New("chainstate: bank hash isn't a digest")
)

// Transition is one recorded slot.
type Transition struct {
	Slot           uint64
	ParentBankHash []byte
	BankHash       []byte
}

func (tr *Transition) clone() *Transition {
	return &Transition{Slot: tr.Slot, ParentBankHash: bytes.Clone(tr.ParentBankHash), BankHash: bytes.Clone(tr.BankHash)}
}

type Tracker struct {
	mu          sync.Mutex
	transitions []*Transition
	lastLink    []byte
	// vals is pre-flattened to quickly convert it to a proof.
	vals []byte
}

func New() *Tracker {
	return &Tracker{lastLink: getEmptyLink()}
}

// Record appends slot at the next height.
// it reports the new height and whether parent is the previous head's
// bank hash, i.e., no slot with a bank hash was missed in between.
// slots must strictly increase.
func (t *Tracker) Record(slot uint64, parent, bankHash []byte) (height uint64, linked bool, err error) {
	if uint64(len(bankHash)) != cryptoffi.HashLen {
		return 0, false, ErrBadBankHash
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	height = uint64(len(t.transitions))
	if height > 0 {
		head := t.transitions[height-1]
		if slot <= head.Slot {
			return height, false, ErrSlotNotIncreasing
		}
		linked = bytes.Equal(parent, head.BankHash)
	}

	tr := &Transition{Slot: slot, ParentBankHash: bytes.Clone(parent), BankHash: bytes.Clone(bankHash)}
	t.transitions = append(t.transitions, tr)
	val := encodeEntry(slot, bankHash)
	t.lastLink = getNextLink(t.lastLink, val)
	t.vals = append(t.vals, val...)
	return height + 1, linked, nil
}

// Height is the number of recorded slots.
func (t *Tracker) Height() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return uint64(len(t.transitions))
}

// Transition returns the slot recorded at height, counting from 1.
func (t *Tracker) Transition(height uint64) (*Transition, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if height == 0 || height > uint64(len(t.transitions)) {
		return nil, false
	}
	return t.transitions[height-1].clone(), true
}

// Head is the latest transition, or nil.
func (t *Tracker) Head() *Transition {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.transitions) == 0 {
		return nil
	}
	return t.transitions[len(t.transitions)-1].clone()
}

// Link commits to every recorded (slot, bank hash).
func (t *Tracker) Link() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return bytes.Clone(t.lastLink)
}

// Prove transitions from knowing a prevLen prefix to knowing the latest history.
// it errors if prevLen is past the current height.
func (t *Tracker) Prove(prevLen uint64) (proof []byte, err bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if prevLen > uint64(len(t.transitions)) {
		err = true
		return
	}
	start := prevLen * entryLen
	proof = bytes.Clone(t.vals[start:])
	return
}

// VerifyChain extends prevLink with proof, returning the number of new entries,
// the last new (slot, bank hash), and the new link.
// if there are no new entries, the slot is 0 and the bank hash nil.
// it errors on a malformed proof.
func VerifyChain(prevLink, proof []byte) (extLen uint64, slot uint64, bankHash []byte, newLink []byte, err bool) {
	proofLen := uint64(len(proof))
	if proofLen%entryLen != 0 {
		err = true
		return
	}
	extLen = proofLen / entryLen
	newLink = prevLink
	for i := uint64(0); i < extLen; i++ {
		val := proof[i*entryLen : (i+1)*entryLen]
		newLink = getNextLink(newLink, val)
		slot, _ = marshal.ReadInt(val)
		bankHash = val[8:]
	}
	return
}

// EmptyLink is the link of an empty history.
func EmptyLink() []byte {
	return getEmptyLink()
}

func encodeEntry(slot uint64, bankHash []byte) []byte {
	var b = make([]byte, 0, entryLen)
	b = marshal.WriteInt(b, slot)
	return append(b, bankHash...)
}

func getEmptyLink() []byte {
	return cryptoutil.Hash(nil)
}

func getNextLink(prevLink, nextVal []byte) []byte {
	return cryptoutil.HashConcat(prevLink, nextVal)
}
