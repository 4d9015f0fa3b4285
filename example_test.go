package vpx_test

import (
	"fmt"

	"github.com/deepteams/vpx"
	"github.com/deepteams/vpx/internal/vp8"
)

func ExampleDecoder() {
	key := &vp8.SynthFrame{Key: true, Width: 40, Height: 24, BaseQ: 20, DC: []int{3, -2, 1}}
	hidden := &vp8.SynthFrame{Hidden: true, Width: 40, Height: 24, BaseQ: 20, RefreshAlt: true}
	inter := &vp8.SynthFrame{Width: 40, Height: 24, BaseQ: 20}

	d, err := vpx.NewDecoder(vpx.DefaultConfig(vpx.CodecVP8))
	if err != nil {
		fmt.Println(err)
		return
	}
	defer d.Close()

	for _, f := range []*vp8.SynthFrame{key, hidden, inter} {
		if err := d.Decode(f.Encode()); err != nil {
			fmt.Println(err)
			return
		}
		for pic, ok := d.TakeOutput(); ok; pic, ok = d.TakeOutput() {
			fmt.Printf("frame %d: %v key=%v\n", pic.FrameID, pic.YCbCr().Bounds(), pic.KeyFrame)
			pic.Release()
		}
	}
	st := d.Stats()
	fmt.Printf("decoded %d, shown %d\n", st.FramesDecoded, st.FramesShown)
	// Output:
	// frame 0: (0,0)-(40,24) key=true
	// frame 2: (0,0)-(40,24) key=false
	// decoded 3, shown 2
}

func ExampleConfig_Validate() {
	cfg := vpx.Config{Codec: vpx.CodecVP9, ThreadCount: -2}
	fmt.Println(cfg.Validate())
	// Output:
	// vpx: negative thread count -2
}
