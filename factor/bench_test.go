package factor_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/latentfa/factor"
)

var sinkModel *factor.Model

func BenchmarkFit(b *testing.B) {
	for _, n := range []int{100, 1000} {
		for _, k := range []int{1, 2, 4} {
			b.Run(fmt.Sprintf("n=%d/k=%d", n, k), func(b *testing.B) {
				X := sample(n, simpleStructure, 0.5, 1337)
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					m, err := factor.Fit(X, k)
					if err != nil {
						b.Fatal(err)
					}
					sinkModel = m
				}
			})
		}
	}
}
