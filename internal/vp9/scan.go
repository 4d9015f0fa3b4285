package vp9

import "github.com/deepteams/vpx/internal/dsp"

// scanOrder is a coefficient scan plus, per scan position, the two raster
// positions whose token energy forms the context of the next token.
type scanOrder struct {
	scan      []int16
	neighbors [][2]int16
}

// scanOrders is indexed by transform size and type.
var scanOrders [NumTxSizes][4]scanOrder

// intraTxType maps a luma intra mode to the transform of its residual.
var intraTxType = [NumIntraModes]dsp.TxType{
	ModeDC:   dsp.DCTDCT,
	ModeV:    dsp.ADSTDCT,
	ModeH:    dsp.DCTADST,
	ModeD45:  dsp.DCTDCT,
	ModeD135: dsp.ADSTADST,
	ModeD117: dsp.ADSTDCT,
	ModeD153: dsp.DCTADST,
	ModeD207: dsp.DCTADST,
	ModeD63:  dsp.ADSTDCT,
	ModeTM:   dsp.ADSTADST,
}

var (
	band4x4     = [16]uint8{0, 1, 1, 2, 2, 2, 3, 3, 3, 3, 4, 4, 4, 5, 5, 5}
	band8x8Plus [32 * 32]uint8
)

type scanKind int

const (
	scanDefault scanKind = iota
	scanCol
	scanRow
)

func init() {
	type entry struct {
		scan []int16
		kind scanKind
	}
	sets := [NumTxSizes][3]entry{
		{{defaultScan4x4[:], scanDefault}, {colScan4x4[:], scanCol}, {rowScan4x4[:], scanRow}},
		{{defaultScan8x8[:], scanDefault}, {colScan8x8[:], scanCol}, {rowScan8x8[:], scanRow}},
		{{defaultScan16x16[:], scanDefault}, {colScan16x16[:], scanCol}, {rowScan16x16[:], scanRow}},
	}
	for tx := Tx4x4; tx < Tx32x32; tx++ {
		def := newScanOrder(sets[tx][0].scan, 4<<tx, scanDefault)
		col := newScanOrder(sets[tx][1].scan, 4<<tx, scanCol)
		row := newScanOrder(sets[tx][2].scan, 4<<tx, scanRow)
		scanOrders[tx][dsp.DCTDCT] = def
		scanOrders[tx][dsp.ADSTDCT] = row
		scanOrders[tx][dsp.DCTADST] = col
		scanOrders[tx][dsp.ADSTADST] = def
	}
	def32 := newScanOrder(defaultScan32x32[:], 32, scanDefault)
	for t := range scanOrders[Tx32x32] {
		scanOrders[Tx32x32][t] = def32
	}

	for i := range band8x8Plus {
		switch {
		case i == 0:
			band8x8Plus[i] = 0
		case i < 3:
			band8x8Plus[i] = 1
		case i < 6:
			band8x8Plus[i] = 2
		case i < 10:
			band8x8Plus[i] = 3
		case i < 21:
			band8x8Plus[i] = 4
		default:
			band8x8Plus[i] = 5
		}
	}
}

// newScanOrder derives the context neighbours of scan, a raster scan of an
// l x l block. Column scans look only above, row scans only left.
func newScanOrder(scan []int16, l int, kind scanKind) scanOrder {
	nb := make([][2]int16, len(scan))
	for n := 1; n < len(scan); n++ {
		rc := int(scan[n])
		i, j := rc/l, rc%l
		above, left := int16((i-1)*l+j), int16(i*l+j-1)
		switch {
		case i > 0 && j > 0:
			switch kind {
			case scanCol:
				nb[n] = [2]int16{above, above}
			case scanRow:
				nb[n] = [2]int16{left, left}
			default:
				nb[n] = [2]int16{above, left}
			}
		case i > 0:
			nb[n] = [2]int16{above, above}
		default:
			nb[n] = [2]int16{left, left}
		}
	}
	return scanOrder{scan: scan, neighbors: nb}
}
