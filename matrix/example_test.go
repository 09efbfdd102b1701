package matrix_test

import (
	"fmt"
	"math"

	"github.com/katalvlaran/latentfa/matrix"
)

// ExampleStandardizeColumns z-scores two survey items with the population convention.
func ExampleStandardizeColumns() {
	X, _ := matrix.NewDenseFrom(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})
	Z, means, _, err := matrix.StandardizeColumns(X, matrix.PopulationDdof)
	if err != nil {
		fmt.Println(err)
		return
	}
	z00, _ := Z.At(0, 0)
	z31, _ := Z.At(3, 1)
	fmt.Printf("means=%v z[0,0]=%.4f z[3,1]=%.4f\n", means, z00, z31)

	// Output:
	// means=[2.5 25] z[0,0]=-1.3416 z[3,1]=1.3416
}

// ExampleRowNanMeans builds a composite score that skips unanswered items.
func ExampleRowNanMeans() {
	raw, _ := matrix.NewDenseFrom(2, 3, []float64{
		1, 2, 3,
		math.NaN(), 4, 2,
	}, matrix.WithNoValidateNaNInf())
	means, _ := matrix.RowNanMeans(raw)
	fmt.Println(means)

	// Output:
	// [2 3]
}
