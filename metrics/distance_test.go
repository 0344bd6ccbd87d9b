package metrics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/YuminosukeSato/scoreknn/pkg/errors"
)

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name    string
		a       []float64
		b       []float64
		want    float64
		wantErr bool
	}{
		{name: "3-4-5 triangle", a: []float64{0, 0}, b: []float64{3, 4}, want: 5},
		{name: "one dimension", a: []float64{0.5}, b: []float64{1}, want: 0.5},
		{name: "identical", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 0},
		{name: "empty vectors", a: []float64{}, b: []float64{}, want: 0},
		{name: "negative coordinates", a: []float64{-1, -1}, b: []float64{2, 3}, want: 5},
		{name: "dimension mismatch", a: []float64{1, 2}, b: []float64{1}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EuclideanDistance(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("EuclideanDistance() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				var dimErr *errors.DimensionError
				if !errors.As(err, &dimErr) {
					t.Errorf("expected DimensionError, got %T", err)
				}
				return
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("EuclideanDistance() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEuclideanDistanceProperties(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 42))

	for trial := 0; trial < 100; trial++ {
		n := 1 + rng.IntN(5)
		a := make([]float64, n)
		b := make([]float64, n)
		for i := range a {
			a[i] = rng.NormFloat64() * 10
			b[i] = rng.NormFloat64() * 10
		}

		ab, err := EuclideanDistance(a, b)
		if err != nil {
			t.Fatal(err)
		}
		ba, _ := EuclideanDistance(b, a)
		if ab != ba {
			t.Fatalf("not symmetric: d(a,b)=%v d(b,a)=%v", ab, ba)
		}
		if ab < 0 {
			t.Fatalf("negative distance %v", ab)
		}
		aa, _ := EuclideanDistance(a, a)
		if aa != 0 {
			t.Fatalf("d(a,a) = %v, want 0", aa)
		}
	}
}
