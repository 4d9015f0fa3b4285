package vpx

import (
	"fmt"
	"testing"
)

func benchmarkDecode(b *testing.B, w, h, threads int) {
	key := keyFrame(w, h)
	inter := intraInterFrame(w, h).Encode()
	cfg := DefaultConfig(CodecVP8)
	cfg.ThreadCount = threads
	d, err := NewDecoder(cfg)
	if err != nil {
		b.Fatal(err)
	}
	defer d.Close()
	b.SetBytes(int64(len(key) + len(inter)))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, data := range [][]byte{key, inter} {
			if err := d.Decode(data); err != nil {
				b.Fatal(err)
			}
			pic, _ := d.TakeOutput()
			pic.Release()
		}
	}
}

func BenchmarkDecodeVP8(b *testing.B) {
	for _, size := range [][2]int{{176, 144}, {640, 480}, {1280, 720}} {
		for _, threads := range []int{1, 4} {
			b.Run(fmt.Sprintf("%dx%d/threads=%d", size[0], size[1], threads), func(b *testing.B) {
				benchmarkDecode(b, size[0], size[1], threads)
			})
		}
	}
}
