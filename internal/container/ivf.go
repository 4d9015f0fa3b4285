package container

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// FileHeader is the 32-byte IVF file header.
type FileHeader struct {
	Version    int
	HeaderSize int
	FourCC     uint32
	Width      int
	Height     int
	// The time base is TimeScale/FrameRate seconds per timestamp unit.
	FrameRate  uint32
	TimeScale  uint32
	FrameCount uint32
}

// Frame is one IVF frame record.
type Frame struct {
	PTS  uint64
	Data []byte
}

// ParseFileHeader validates and parses the IVF file header at the start of
// data.
func ParseFileHeader(data []byte) (FileHeader, error) {
	if len(data) < FileHeaderSize {
		return FileHeader{}, ErrTruncated
	}
	if binary.LittleEndian.Uint32(data[0:4]) != SignatureDKIF {
		return FileHeader{}, ErrInvalidSignature
	}
	h := FileHeader{
		Version:    int(binary.LittleEndian.Uint16(data[4:6])),
		HeaderSize: int(binary.LittleEndian.Uint16(data[6:8])),
		FourCC:     binary.LittleEndian.Uint32(data[8:12]),
		Width:      int(binary.LittleEndian.Uint16(data[12:14])),
		Height:     int(binary.LittleEndian.Uint16(data[14:16])),
		FrameRate:  binary.LittleEndian.Uint32(data[16:20]),
		TimeScale:  binary.LittleEndian.Uint32(data[20:24]),
		FrameCount: binary.LittleEndian.Uint32(data[24:28]),
	}
	if h.Version != Version {
		return FileHeader{}, errors.Wrapf(ErrInvalidHeader, "version %d", h.Version)
	}
	if h.HeaderSize < FileHeaderSize {
		return FileHeader{}, errors.Wrapf(ErrInvalidHeader, "header size %d", h.HeaderSize)
	}
	return h, nil
}

// AppendFileHeader appends the encoding of h to b. Zero Version and
// HeaderSize fields are written as their defaults.
func AppendFileHeader(b []byte, h FileHeader) []byte {
	if h.HeaderSize == 0 {
		h.HeaderSize = FileHeaderSize
	}
	b = binary.LittleEndian.AppendUint32(b, SignatureDKIF)
	b = binary.LittleEndian.AppendUint16(b, uint16(h.Version))
	b = binary.LittleEndian.AppendUint16(b, uint16(h.HeaderSize))
	b = binary.LittleEndian.AppendUint32(b, h.FourCC)
	b = binary.LittleEndian.AppendUint16(b, uint16(h.Width))
	b = binary.LittleEndian.AppendUint16(b, uint16(h.Height))
	b = binary.LittleEndian.AppendUint32(b, h.FrameRate)
	b = binary.LittleEndian.AppendUint32(b, h.TimeScale)
	b = binary.LittleEndian.AppendUint32(b, h.FrameCount)
	b = binary.LittleEndian.AppendUint32(b, 0)
	for i := FileHeaderSize; i < h.HeaderSize; i++ {
		b = append(b, 0)
	}
	return b
}

// ReadFrameHeader reads a frame's payload size and timestamp from data.
func ReadFrameHeader(data []byte) (size uint32, pts uint64, err error) {
	if len(data) < FrameHeaderSize {
		return 0, 0, ErrTruncated
	}
	size = binary.LittleEndian.Uint32(data[0:4])
	pts = binary.LittleEndian.Uint64(data[4:12])
	if size > MaxFrameSize {
		return 0, 0, ErrTooLarge
	}
	return size, pts, nil
}

// Reader reads IVF frames from a stream.
type Reader struct {
	r      io.Reader
	header FileHeader
	frames int
}

// NewReader reads the file header from r.
func NewReader(r io.Reader) (*Reader, error) {
	var buf [FileHeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, errors.Wrap(ErrTruncated, "reading file header")
	}
	h, err := ParseFileHeader(buf[:])
	if err != nil {
		return nil, err
	}
	if extra := int64(h.HeaderSize - FileHeaderSize); extra > 0 {
		if _, err := io.CopyN(io.Discard, r, extra); err != nil {
			return nil, errors.Wrap(ErrTruncated, "skipping file header extension")
		}
	}
	return &Reader{r: r, header: h}, nil
}

// Header returns the parsed file header.
func (r *Reader) Header() FileHeader { return r.header }

// ReadFrame returns the next frame. It returns io.EOF at a clean end of
// stream and ErrTruncated when the stream stops inside a frame.
func (r *Reader) ReadFrame() (Frame, error) {
	var hdr [FrameHeaderSize]byte
	n, err := io.ReadFull(r.r, hdr[:])
	switch {
	case err == io.EOF && n == 0:
		return Frame{}, io.EOF
	case err != nil:
		return Frame{}, errors.Wrapf(ErrTruncated, "frame %d header", r.frames)
	}
	size, pts, err := ReadFrameHeader(hdr[:])
	if err != nil {
		return Frame{}, errors.Wrapf(err, "frame %d", r.frames)
	}
	data := make([]byte, size)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return Frame{}, errors.Wrapf(ErrTruncated, "frame %d payload of %d bytes", r.frames, size)
	}
	r.frames++
	return Frame{PTS: pts, Data: data}, nil
}

// Writer writes an IVF stream.
type Writer struct {
	w      io.Writer
	frames int
}

// NewWriter writes the file header to w.
func NewWriter(w io.Writer, h FileHeader) (*Writer, error) {
	if _, err := w.Write(AppendFileHeader(nil, h)); err != nil {
		return nil, errors.Wrap(err, "ivf: writing file header")
	}
	return &Writer{w: w}, nil
}

// WriteFrame writes one frame record.
func (w *Writer) WriteFrame(pts uint64, data []byte) error {
	if len(data) > MaxFrameSize {
		return ErrTooLarge
	}
	buf := make([]byte, 0, FrameHeaderSize+len(data))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(len(data)))
	buf = binary.LittleEndian.AppendUint64(buf, pts)
	buf = append(buf, data...)
	if _, err := w.w.Write(buf); err != nil {
		return errors.Wrapf(err, "ivf: writing frame %d", w.frames)
	}
	w.frames++
	return nil
}
