package vpx

import (
	"image"

	"github.com/deepteams/vpx/internal/frame"
	"github.com/deepteams/vpx/internal/vp9"
)

// ColorSpace identifies the matrix used to derive the YUV samples. Values
// follow the VP9 color_space syntax element.
type ColorSpace int

const (
	ColorSpaceUnknown  ColorSpace = vp9.ColorSpaceUnknown
	ColorSpaceBT601    ColorSpace = vp9.ColorSpaceBT601
	ColorSpaceBT709    ColorSpace = vp9.ColorSpaceBT709
	ColorSpaceSMPTE170 ColorSpace = vp9.ColorSpaceSMPTE170
	ColorSpaceSMPTE240 ColorSpace = vp9.ColorSpaceSMPTE240
	ColorSpaceBT2020   ColorSpace = vp9.ColorSpaceBT2020
	ColorSpaceReserved ColorSpace = vp9.ColorSpaceReserved
	ColorSpaceSRGB     ColorSpace = vp9.ColorSpaceSRGB
)

func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceBT601:
		return "bt601"
	case ColorSpaceBT709:
		return "bt709"
	case ColorSpaceSMPTE170:
		return "smpte170"
	case ColorSpaceSMPTE240:
		return "smpte240"
	case ColorSpaceBT2020:
		return "bt2020"
	case ColorSpaceReserved:
		return "reserved"
	case ColorSpaceSRGB:
		return "srgb"
	}
	return "unknown"
}

// ColorRange tells whether samples span the studio (16-235) or full range.
type ColorRange int

const (
	ColorRangeStudio ColorRange = iota
	ColorRangeFull
)

func (r ColorRange) String() string {
	if r == ColorRangeFull {
		return "full"
	}
	return "studio"
}

// Picture is a decoded frame handed out by Decoder.TakeOutput. Its planes
// stay valid until Release is called; the decoder may keep reading them as
// a reference in the meantime, so callers must not modify them.
type Picture struct {
	// Planes holds Y, U and V. Each plane covers the coded area.
	Planes  [3][]byte
	Strides [3]int

	// Width and Height give the display size.
	Width, Height int
	// CodedWidth and CodedHeight give the block-aligned size of the planes.
	CodedWidth, CodedHeight int
	// Crop is the displayed region of the planes.
	Crop image.Rectangle

	FrameID     uint64
	KeyFrame    bool
	ColorSpace  ColorSpace
	ColorRange  ColorRange
	Subsampling image.YCbCrSubsampleRatio
	BitDepth    int

	buf *frame.Buffer
}

// newPicture wraps b, taking over one of its references.
func newPicture(b *frame.Buffer, codec Codec) *Picture {
	p := &Picture{
		Planes:      [3][]byte{b.Y, b.U, b.V},
		Strides:     [3]int{b.YStride, b.UVStride, b.UVStride},
		Width:       b.Width,
		Height:      b.Height,
		CodedWidth:  b.AlignedW,
		CodedHeight: b.AlignedH,
		Crop:        image.Rect(0, 0, b.Width, b.Height),
		FrameID:     b.Meta.FrameID,
		KeyFrame:    b.Meta.KeyFrame,
		ColorSpace:  ColorSpace(b.Meta.ColorSpace),
		Subsampling: subsampleRatio(b.Meta.SubsamplingX, b.Meta.SubsamplingY),
		BitDepth:    b.Meta.BitDepth,
		buf:         b,
	}
	if codec == CodecVP8 {
		// color_space 0 is BT.601; 1 is reserved.
		p.ColorSpace = ColorSpaceBT601
		if b.Meta.ColorSpace != 0 {
			p.ColorSpace = ColorSpaceReserved
		}
	}
	if b.Meta.FullRange {
		p.ColorRange = ColorRangeFull
	}
	return p
}

func subsampleRatio(x, y int) image.YCbCrSubsampleRatio {
	switch {
	case x == 1 && y == 1:
		return image.YCbCrSubsampleRatio420
	case x == 1:
		return image.YCbCrSubsampleRatio422
	case y == 1:
		return image.YCbCrSubsampleRatio440
	}
	return image.YCbCrSubsampleRatio444
}

// YCbCr returns an image sharing the picture's planes, bounded to Crop. It
// is only valid until Release.
func (p *Picture) YCbCr() *image.YCbCr {
	return &image.YCbCr{
		Y:              p.Planes[0],
		Cb:             p.Planes[1],
		Cr:             p.Planes[2],
		YStride:        p.Strides[0],
		CStride:        p.Strides[1],
		SubsampleRatio: p.Subsampling,
		Rect:           p.Crop,
	}
}

// Release returns the picture's buffer to the decoder. Calling it again is
// a no-op.
func (p *Picture) Release() {
	if p.buf == nil {
		return
	}
	p.buf.Release()
	p.buf = nil
	p.Planes = [3][]byte{}
}
