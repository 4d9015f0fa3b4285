package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

func testHeader() FileHeader {
	return FileHeader{
		FourCC:     FourCCVP80,
		Width:      176,
		Height:     144,
		FrameRate:  30,
		TimeScale:  1,
		FrameCount: 3,
	}
}

func TestParseFileHeader_Valid(t *testing.T) {
	data := AppendFileHeader(nil, testHeader())
	if len(data) != FileHeaderSize {
		t.Fatalf("header is %d bytes, want %d", len(data), FileHeaderSize)
	}
	h, err := ParseFileHeader(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := testHeader()
	want.HeaderSize = FileHeaderSize
	if h != want {
		t.Fatalf("header = %+v, want %+v", h, want)
	}
	if got := FourCCString(h.FourCC); got != "VP80" {
		t.Fatalf("fourcc = %q, want VP80", got)
	}
}

func TestParseFileHeader_TooShort(t *testing.T) {
	_, err := ParseFileHeader([]byte("DKIF"))
	if err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestParseFileHeader_BadSignature(t *testing.T) {
	data := AppendFileHeader(nil, testHeader())
	copy(data[0:4], "RIFF")
	_, err := ParseFileHeader(data)
	if err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestParseFileHeader_BadFields(t *testing.T) {
	data := AppendFileHeader(nil, testHeader())
	binary.LittleEndian.PutUint16(data[4:6], 1)
	if _, err := ParseFileHeader(data); !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("version 1: expected ErrInvalidHeader, got %v", err)
	}

	data = AppendFileHeader(nil, testHeader())
	binary.LittleEndian.PutUint16(data[6:8], 16)
	if _, err := ParseFileHeader(data); !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("header size 16: expected ErrInvalidHeader, got %v", err)
	}
}

func TestReadFrameHeader(t *testing.T) {
	data := make([]byte, FrameHeaderSize)
	binary.LittleEndian.PutUint32(data[0:4], 42)
	binary.LittleEndian.PutUint64(data[4:12], 1<<40)

	size, pts, err := ReadFrameHeader(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size != 42 || pts != 1<<40 {
		t.Fatalf("got size %d pts %d, want 42 and %d", size, pts, uint64(1<<40))
	}

	binary.LittleEndian.PutUint32(data[0:4], MaxFrameSize+1)
	if _, _, err := ReadFrameHeader(data); err != ErrTooLarge {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if _, _, err := ReadFrameHeader(data[:5]); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestReaderRoundTrip(t *testing.T) {
	frames := [][]byte{{1, 2, 3}, {}, bytes.Repeat([]byte{7}, 300)}
	var buf bytes.Buffer
	w, err := NewWriter(&buf, testHeader())
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range frames {
		if err := w.WriteFrame(uint64(i*2), f); err != nil {
			t.Fatal(err)
		}
	}

	r, err := NewReader(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if r.Header().Width != 176 || r.Header().Height != 144 {
		t.Fatalf("dimensions = %dx%d, want 176x144", r.Header().Width, r.Header().Height)
	}
	for i, want := range frames {
		f, err := r.ReadFrame()
		if err != nil {
			t.Fatalf("frame %d: %v", i, err)
		}
		if f.PTS != uint64(i*2) {
			t.Errorf("frame %d: pts = %d, want %d", i, f.PTS, i*2)
		}
		if !bytes.Equal(f.Data, want) {
			t.Errorf("frame %d: payload mismatch", i)
		}
	}
	if _, err := r.ReadFrame(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestReaderHeaderExtension(t *testing.T) {
	h := testHeader()
	h.HeaderSize = 40
	data := AppendFileHeader(nil, h)
	data = binary.LittleEndian.AppendUint32(data, 2)
	data = binary.LittleEndian.AppendUint64(data, 9)
	data = append(data, 0xaa, 0xbb)

	r, err := NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	f, err := r.ReadFrame()
	if err != nil {
		t.Fatal(err)
	}
	if f.PTS != 9 || !bytes.Equal(f.Data, []byte{0xaa, 0xbb}) {
		t.Fatalf("got frame %+v", f)
	}
}

func TestReaderTruncated(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, testHeader())
	if err != nil {
		t.Fatal(err)
	}
	if err := w.WriteFrame(0, []byte{1, 2, 3, 4}); err != nil {
		t.Fatal(err)
	}
	full := buf.Bytes()

	for _, cut := range []int{FileHeaderSize + 5, len(full) - 1} {
		r, err := NewReader(bytes.NewReader(full[:cut]))
		if err != nil {
			t.Fatal(err)
		}
		if _, err := r.ReadFrame(); !errors.Is(err, ErrTruncated) {
			t.Fatalf("cut at %d: expected ErrTruncated, got %v", cut, err)
		}
	}

	if _, err := NewReader(bytes.NewReader(full[:10])); !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
