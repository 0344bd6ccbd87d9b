package main

import (
	"math"
	"math/rand/v2"
)

// 落下ゲームの盤面
const (
	boardWidth = 800.0
	buckets    = 10
)

// drop is one ball dropped onto the board.
type drop struct {
	position   float64 // 0..boardWidth
	bounciness float64 // 0.4..0.6
	size       float64 // 16..20
	bucket     int     // 1..buckets
}

type recorder interface {
	Record(feature1, feature2, feature3 float64, label int)
}

// simulate plays n drops and records each landing on r. The landing bucket
// follows the drop position, scattered by bounciness; size has no effect.
func simulate(r recorder, n int, rng *rand.Rand) {
	for i := 0; i < n; i++ {
		d := play(rng)
		r.Record(d.position, d.bounciness, d.size, d.bucket)
	}
}

func play(rng *rand.Rand) drop {
	d := drop{
		position:   rng.Float64() * boardWidth,
		bounciness: 0.4 + rng.Float64()*0.2,
		size:       16 + rng.Float64()*4,
	}
	landing := d.position + rng.NormFloat64()*d.bounciness*40
	landing = math.Min(math.Max(landing, 0), boardWidth-1)
	d.bucket = int(landing/(boardWidth/buckets)) + 1
	return d
}
