package verifier_test

import (
	"fmt"
	"testing"

	"github.com/mit-pdos/deltaproof/deltaproof"
	"github.com/mit-pdos/deltaproof/internal/deltatest"
	"github.com/mit-pdos/deltaproof/verifier"
)

func benchUpdate(nAccts, nProofs int) *verifier.Update {
	d := deltatest.NewDelta(nAccts)
	var proofs []deltaproof.AccountDeltaProof
	for i := 0; i < nProofs; i++ {
		idx := (i * 7919) % nAccts
		if i%2 == 0 {
			proofs = append(proofs, d.Inclusion(idx))
		} else {
			proofs = append(proofs, d.NonInclusion(d.AbsentKey(idx)))
		}
	}
	return makeUpdate(d, 1, proofs...)
}

func BenchmarkVerify(b *testing.B) {
	u := benchUpdate(4096, 256)
	for _, par := range []int{1, 4, 16} {
		b.Run(fmt.Sprintf("par=%d", par), func(b *testing.B) {
			v := verifier.New(verifier.Config{Parallelism: par})
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if !v.Verify(u).Ok() {
					b.Fatal()
				}
			}
			b.ReportMetric(float64(b.N*len(u.Proof.Proofs))/b.Elapsed().Seconds(), "proofs/s")
		})
	}
}
