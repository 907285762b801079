package arena

import "math"

func float32FromBits(v uint32) float32 { return math.Float32frombits(v) }
func float32Bits(v float32) uint32     { return math.Float32bits(v) }
