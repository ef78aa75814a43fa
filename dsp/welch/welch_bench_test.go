package welch

import (
	"math"
	"testing"
)

func BenchmarkPSD(b *testing.B) {
	sizes := []int{4096, 16384, 65536}
	for _, n := range sizes {
		b.Run("n="+itoa(n), func(b *testing.B) {
			samples := make([]float64, n)
			for i := range samples {
				samples[i] = math.Sin(2 * math.Pi * 440 * float64(i) / 44100)
			}

			cfg := Config{SampleRate: 44100}

			b.ReportAllocs()
			b.ResetTimer()

			for range b.N {
				if _, err := PSD(samples, cfg); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}

	buf := [20]byte{}

	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}

	return string(buf[i:])
}
