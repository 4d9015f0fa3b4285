package vp9

import (
	"github.com/pkg/errors"

	"github.com/deepteams/vpx/internal/bitio"
	"github.com/deepteams/vpx/internal/entropy"
	"github.com/deepteams/vpx/internal/vpxerr"
)

const (
	planeTypes         = 2
	refTypes           = 2
	coefBands          = 6
	bandCoeffContexts  = 6
	unconstrainedNodes = 3
)

var txModeToBiggestTxSize = [...]int{
	TxModeOnly4x4:    Tx4x4,
	TxModeAllow8x8:   Tx8x8,
	TxModeAllow16x16: Tx16x16,
	TxModeAllow32x32: Tx32x32,
	TxModeSelect:     Tx32x32,
}

// CompressedHeader holds the frame-level modes read from the compressed
// header. Probability updates are applied to the frame context in place.
type CompressedHeader struct {
	TxMode        int
	ReferenceMode int
	// Set when compound prediction is possible.
	CompFixedRef int
	CompVarRef   [2]int
	// Number of coefficient probabilities updated.
	CoefUpdates int
}

// compoundReferenceAllowed reports whether two of the references lie on
// opposite sides of the current frame.
func compoundReferenceAllowed(h *FrameHeader) bool {
	for i := LastFrame + 1; i <= AltRefFrame; i++ {
		if h.SignBias[i] != h.SignBias[LastFrame] {
			return true
		}
	}
	return false
}

func setupCompoundReference(h *FrameHeader, ch *CompressedHeader) {
	switch {
	case h.SignBias[LastFrame] == h.SignBias[GoldenFrame]:
		ch.CompFixedRef = AltRefFrame
		ch.CompVarRef = [2]int{LastFrame, GoldenFrame}
	case h.SignBias[LastFrame] == h.SignBias[AltRefFrame]:
		ch.CompFixedRef = GoldenFrame
		ch.CompVarRef = [2]int{LastFrame, AltRefFrame}
	default:
		ch.CompFixedRef = LastFrame
		ch.CompVarRef = [2]int{GoldenFrame, AltRefFrame}
	}
}

func diffUpdate(br *bitio.BoolReader, probs []uint8) int {
	n := 0
	for i := range probs {
		if entropy.ReadDiffUpdate(br, &probs[i]) {
			n++
		}
	}
	return n
}

func mvUpdate(br *bitio.BoolReader, probs []uint8) {
	for i := range probs {
		entropy.ReadMVUpdate(br, &probs[i])
	}
}

// ParseCompressedHeader reads the compressed header of h from data and
// applies its probability updates to fc.
func ParseCompressedHeader(data []byte, h *FrameHeader, fc *FrameContext) (*CompressedHeader, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(vpxerr.ErrTruncatedStream, "vp9: empty compressed header")
	}
	br := bitio.NewBoolReader(data)
	if br.GetBit(0x80) != 0 {
		return nil, errors.Wrap(vpxerr.ErrCorruptBitstream, "vp9: compressed header marker bit set")
	}

	ch := &CompressedHeader{}
	if h.Quant.Lossless() {
		ch.TxMode = TxModeOnly4x4
	} else {
		ch.TxMode = int(br.GetValue(2))
		if ch.TxMode == TxModeAllow32x32 {
			ch.TxMode += br.GetBit(0x80)
		}
	}
	if ch.TxMode == TxModeSelect {
		for i := range fc.Tx.P8x8 {
			diffUpdate(br, fc.Tx.P8x8[i][:])
		}
		for i := range fc.Tx.P16x16 {
			diffUpdate(br, fc.Tx.P16x16[i][:])
		}
		for i := range fc.Tx.P32x32 {
			diffUpdate(br, fc.Tx.P32x32[i][:])
		}
	}

	ch.CoefUpdates = readCoefProbs(br, fc, ch.TxMode)
	diffUpdate(br, fc.Skip[:])

	if !h.IntraOnlyFrame() {
		for i := range fc.InterMode {
			diffUpdate(br, fc.InterMode[i][:])
		}
		if h.InterpFilter == InterpSwitchable {
			for i := range fc.SwitchableInterp {
				diffUpdate(br, fc.SwitchableInterp[i][:])
			}
		}
		diffUpdate(br, fc.IntraInter[:])

		ch.ReferenceMode = SingleReference
		if compoundReferenceAllowed(h) && br.GetFlag() {
			ch.ReferenceMode = CompoundReference
			if br.GetFlag() {
				ch.ReferenceMode = ReferenceModeSelect
			}
		}
		if ch.ReferenceMode != SingleReference {
			setupCompoundReference(h, ch)
		}
		if ch.ReferenceMode == ReferenceModeSelect {
			diffUpdate(br, fc.CompInter[:])
		}
		if ch.ReferenceMode != CompoundReference {
			for i := range fc.SingleRef {
				diffUpdate(br, fc.SingleRef[i][:])
			}
		}
		if ch.ReferenceMode != SingleReference {
			diffUpdate(br, fc.CompRef[:])
		}

		for i := range fc.YMode {
			diffUpdate(br, fc.YMode[i][:])
		}
		for i := range fc.Partition {
			diffUpdate(br, fc.Partition[i][:])
		}
		readMVProbs(br, &fc.MV, h.AllowHighPrecisionMV)
	}

	if br.EOF() {
		return nil, errors.Wrap(vpxerr.ErrTruncatedStream, "vp9: compressed header overruns its size")
	}
	return ch, nil
}

// readCoefProbs applies the coefficient probability updates for every
// transform size allowed by txMode and returns how many were updated.
func readCoefProbs(br *bitio.BoolReader, fc *FrameContext, txMode int) int {
	n := 0
	for tx := Tx4x4; tx <= txModeToBiggestTxSize[txMode]; tx++ {
		if !br.GetFlag() {
			continue
		}
		probs := &fc.Coef[tx]
		for i := 0; i < planeTypes; i++ {
			for j := 0; j < refTypes; j++ {
				for k := 0; k < coefBands; k++ {
					contexts := bandCoeffContexts
					if k == 0 {
						contexts = 3
					}
					for l := 0; l < contexts; l++ {
						n += diffUpdate(br, probs[i][j][k][l][:])
					}
				}
			}
		}
	}
	return n
}

func readMVProbs(br *bitio.BoolReader, mv *MVContext, allowHP bool) {
	mvUpdate(br, mv.Joints[:])
	for i := range mv.Comps {
		c := &mv.Comps[i]
		entropy.ReadMVUpdate(br, &c.Sign)
		mvUpdate(br, c.Classes[:])
		mvUpdate(br, c.Class0[:])
		mvUpdate(br, c.Bits[:])
	}
	for i := range mv.Comps {
		c := &mv.Comps[i]
		for j := range c.Class0FP {
			mvUpdate(br, c.Class0FP[j][:])
		}
		mvUpdate(br, c.FP[:])
	}
	if !allowHP {
		return
	}
	for i := range mv.Comps {
		entropy.ReadMVUpdate(br, &mv.Comps[i].Class0HP)
		entropy.ReadMVUpdate(br, &mv.Comps[i].HP)
	}
}
