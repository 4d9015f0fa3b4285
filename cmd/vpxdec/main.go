// Command vpxdec inspects and decodes IVF files holding VP8 or VP9 streams.
//
// Usage:
//
//	vpxdec probe <input.ivf>              Print the stream and per-frame headers
//	vpxdec decode [options] <input.ivf>   Decode to raw I420 or YUV4MPEG2
//	vpxdec remux [options] <input.ivf>    Split or build VP9 superframes
package main

import (
	"bufio"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"hash"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	mcvp9 "github.com/bluenviron/mediacommon/pkg/codecs/vp9"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/deepteams/vpx"
	"github.com/deepteams/vpx/internal/container"
	"github.com/deepteams/vpx/internal/vp8"
	"github.com/deepteams/vpx/internal/vp9"
)

const (
	flagVerbose = "verbose"
	flagOutput  = "output"
	flagFormat  = "format"
	flagThreads = "threads"
	flagStrict  = "strict"
	flagFrames  = "frames"
	flagMD5     = "md5"
	flagSplit   = "split-superframes"
	flagMerge   = "merge-superframes"

	formatI420 = "i420"
	formatY4M  = "y4m"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "vpxdec: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.App {
	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetLevel(logrus.WarnLevel)

	return &cli.App{
		Name:      "vpxdec",
		Usage:     "inspect and decode VP8/VP9 IVF streams",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    flagVerbose,
				Aliases: []string{"v"},
				Usage:   "log per-frame decoder events",
			},
		},
		Before: func(c *cli.Context) error {
			if c.Bool(flagVerbose) {
				logger.SetLevel(logrus.DebugLevel)
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "probe",
				Usage:     "print the IVF header and a summary of every frame",
				ArgsUsage: "<input.ivf>",
				Action: func(c *cli.Context) error {
					return probeAction(c)
				},
			},
			{
				Name:      "decode",
				Usage:     "decode a stream to raw I420 or YUV4MPEG2",
				ArgsUsage: "<input.ivf>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    flagOutput,
						Aliases: []string{"o"},
						Usage:   `output path ("-" for stdout; default: none with --md5, else <input>.yuv or .y4m)`,
					},
					&cli.StringFlag{
						Name:  flagFormat,
						Usage: "output format: i420 or y4m (default: from the output extension)",
					},
					&cli.IntFlag{
						Name:  flagThreads,
						Usage: "goroutines per frame (0 = one per CPU)",
					},
					&cli.BoolFlag{
						Name:  flagStrict,
						Usage: "reject reserved header values",
					},
					&cli.IntFlag{
						Name:  flagFrames,
						Usage: "stop after `N` output frames (0 = all)",
					},
					&cli.BoolFlag{
						Name:  flagMD5,
						Usage: "print the MD5 of the decoded output",
					},
				},
				Action: func(c *cli.Context) error {
					return decodeAction(c, logger)
				},
			},
			{
				Name:      "remux",
				Usage:     "rewrite a VP9 stream with superframes split apart or hidden frames packed into them",
				ArgsUsage: "<input.ivf>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagOutput,
						Aliases:  []string{"o"},
						Usage:    "output IVF path",
						Required: true,
					},
					&cli.BoolFlag{
						Name:  flagSplit,
						Usage: "write every frame of a superframe as its own IVF frame",
					},
					&cli.BoolFlag{
						Name:  flagMerge,
						Usage: "pack hidden frames with the next shown frame into one superframe",
					},
				},
				Action: func(c *cli.Context) error {
					return remuxAction(c, logger)
				},
			},
		},
	}
}

func openIVF(c *cli.Context) (*os.File, *container.Reader, vpx.Codec, error) {
	if c.NArg() < 1 {
		return nil, nil, 0, errors.Errorf("%s: missing input file", c.Command.Name)
	}
	f, err := os.Open(c.Args().First())
	if err != nil {
		return nil, nil, 0, err
	}
	r, err := container.NewReader(bufio.NewReader(f))
	if err != nil {
		f.Close()
		return nil, nil, 0, errors.Wrap(err, c.Args().First())
	}
	codec, err := vpx.ParseCodec(container.FourCCString(r.Header().FourCC))
	if err != nil {
		f.Close()
		return nil, nil, 0, err
	}
	return f, r, codec, nil
}

// --- probe ---

func probeAction(c *cli.Context) error {
	f, r, codec, err := openIVF(c)
	if err != nil {
		return err
	}
	defer f.Close()

	w := c.App.Writer
	h := r.Header()
	fmt.Fprintf(w, "codec: %s  size: %dx%d  rate: %d/%d  frames: %d\n",
		container.FourCCString(h.FourCC), h.Width, h.Height, h.FrameRate, h.TimeScale, h.FrameCount)

	for i := 0; ; i++ {
		fr, err := r.ReadFrame()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "frame %d: pts %d, %d bytes", i, fr.PTS, len(fr.Data))
		if codec == vpx.CodecVP8 {
			fmt.Fprintf(w, ", %s\n", describeVP8(fr.Data))
			continue
		}
		frames, err := vp9.ParseSuperframeIndex(fr.Data)
		if err != nil {
			fmt.Fprintf(w, ", %v\n", err)
			continue
		}
		if len(frames) > 1 {
			fmt.Fprintf(w, ", superframe of %d", len(frames))
		}
		fmt.Fprintln(w)
		for j, sub := range frames {
			fmt.Fprintf(w, "  [%d] %d bytes, %s\n", j, len(sub), describeVP9(sub))
		}
	}
}

func describeVP8(data []byte) string {
	hdr, _, err := vp8.ParseFrameHeader(data, false)
	if err != nil {
		return err.Error()
	}
	shown := "shown"
	if !hdr.Show {
		shown = "hidden"
	}
	if hdr.KeyFrame {
		return fmt.Sprintf("key %dx%d, version %d, %s", hdr.Width, hdr.Height, hdr.Version, shown)
	}
	return fmt.Sprintf("inter, version %d, %s", hdr.Version, shown)
}

func describeVP9(data []byte) string {
	var h mcvp9.Header
	if err := h.Unmarshal(data); err != nil {
		return err.Error()
	}
	if h.ShowExistingFrame {
		return fmt.Sprintf("profile %d, show existing %d", h.Profile, h.FrameToShowMapIdx)
	}
	shown := "shown"
	if !h.ShowFrame {
		shown = "hidden"
	}
	if h.FrameType == mcvp9.FrameTypeKeyFrame {
		return fmt.Sprintf("profile %d, key %dx%d, %d-bit, %s", h.Profile, h.Width(), h.Height(), h.ColorConfig.BitDepth, shown)
	}
	return fmt.Sprintf("profile %d, inter, %s", h.Profile, shown)
}

// --- remux ---

// A superframe index has room for eight frames.
const maxSuperframeFrames = 8

func remuxAction(c *cli.Context, logger *logrus.Logger) error {
	split, merge := c.Bool(flagSplit), c.Bool(flagMerge)
	if split == merge {
		return errors.Errorf("remux: exactly one of --%s and --%s is required", flagSplit, flagMerge)
	}
	f, r, codec, err := openIVF(c)
	if err != nil {
		return err
	}
	defer f.Close()
	if codec != vpx.CodecVP9 {
		return errors.Errorf("remux: superframes are a VP9 feature, input is %s", codec)
	}

	var frames []container.Frame
	var pending [][]byte
	for {
		fr, err := r.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		subs, err := vp9.ParseSuperframeIndex(fr.Data)
		if err != nil {
			return errors.Wrapf(err, "remux: frame pts %d", fr.PTS)
		}
		for _, sub := range subs {
			if split {
				frames = append(frames, container.Frame{PTS: fr.PTS, Data: sub})
				continue
			}
			pending = append(pending, sub)
			if hiddenVP9(sub) && len(pending) < maxSuperframeFrames {
				continue
			}
			frames = append(frames, container.Frame{PTS: fr.PTS, Data: packSuperframe(pending)})
			pending = nil
		}
	}
	if len(pending) > 0 {
		pts := uint64(0)
		if len(frames) > 0 {
			pts = frames[len(frames)-1].PTS
		}
		frames = append(frames, container.Frame{PTS: pts, Data: packSuperframe(pending)})
	}

	out, err := os.Create(c.String(flagOutput))
	if err != nil {
		return err
	}
	defer out.Close()
	bw := bufio.NewWriter(out)
	h := r.Header()
	h.FrameCount = uint32(len(frames))
	w, err := container.NewWriter(bw, h)
	if err != nil {
		return err
	}
	for _, fr := range frames {
		if err := w.WriteFrame(fr.PTS, fr.Data); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{
		"input":  c.Args().First(),
		"output": c.String(flagOutput),
		"frames": len(frames),
		"split":  split,
	}).Debug("stream remuxed")
	return nil
}

// hiddenVP9 reports whether a frame decodes without being shown. Frames
// whose header cannot be read are treated as shown.
func hiddenVP9(data []byte) bool {
	var h mcvp9.Header
	if err := h.Unmarshal(data); err != nil {
		return false
	}
	return !h.ShowExistingFrame && !h.ShowFrame
}

func packSuperframe(frames [][]byte) []byte {
	if len(frames) == 1 {
		return frames[0]
	}
	return vp9.BuildSuperframe(frames)
}

// --- decode ---

func outputFormat(format, path string) (string, error) {
	switch strings.ToLower(format) {
	case formatI420, formatY4M:
		return strings.ToLower(format), nil
	case "":
		if strings.EqualFold(filepath.Ext(path), ".y4m") {
			return formatY4M, nil
		}
		return formatI420, nil
	}
	return "", errors.Errorf("decode: unknown format %q", format)
}

func decodeAction(c *cli.Context, logger *logrus.Logger) error {
	f, r, codec, err := openIVF(c)
	if err != nil {
		return err
	}
	defer f.Close()

	outPath := c.String(flagOutput)
	format, err := outputFormat(c.String(flagFormat), outPath)
	if err != nil {
		return err
	}
	if outPath == "" && !c.Bool(flagMD5) {
		ext := ".yuv"
		if format == formatY4M {
			ext = ".y4m"
		}
		outPath = strings.TrimSuffix(c.Args().First(), filepath.Ext(c.Args().First())) + ext
	}

	var sinks []io.Writer
	var sum hash.Hash
	if c.Bool(flagMD5) {
		sum = md5.New()
		sinks = append(sinks, sum)
	}
	switch outPath {
	case "":
	case "-":
		sinks = append(sinks, c.App.Writer)
	default:
		out, err := os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()
		sinks = append(sinks, out)
	}
	bw := bufio.NewWriter(io.MultiWriter(sinks...))

	cfg := vpx.DefaultConfig(codec)
	cfg.StrictHeaderValidation = c.Bool(flagStrict)
	cfg.ThreadCount = c.Int(flagThreads)
	cfg.Logger = logger
	d, err := vpx.NewDecoder(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	pw := &pictureWriter{w: bw, format: format, rate: r.Header().FrameRate, scale: r.Header().TimeScale}
	limit := c.Int(flagFrames)
	for limit == 0 || pw.frames < limit {
		fr, err := r.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		// Failed frames are logged by the decoder and counted in its stats.
		_ = d.Decode(fr.Data)
		for pic, ok := d.TakeOutput(); ok; pic, ok = d.TakeOutput() {
			if limit == 0 || pw.frames < limit {
				err = pw.write(pic)
			}
			pic.Release()
			if err != nil {
				return err
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}

	st := d.Stats()
	logger.WithFields(logrus.Fields{
		"decoded": st.FramesDecoded,
		"shown":   st.FramesShown,
		"dropped": st.FramesDropped,
		"written": pw.frames,
	}).Debug("stream decoded")
	if sum != nil && outPath != "-" {
		fmt.Fprintln(c.App.Writer, hex.EncodeToString(sum.Sum(nil)))
	}
	if st.FramesDropped > 0 {
		return errors.Errorf("decode: %d frames dropped", st.FramesDropped)
	}
	return nil
}

// pictureWriter writes the visible area of pictures as planar 4:2:0.
type pictureWriter struct {
	w           io.Writer
	format      string
	rate, scale uint32
	frames      int
}

func (pw *pictureWriter) write(pic *vpx.Picture) error {
	if pic.Subsampling != image.YCbCrSubsampleRatio420 || pic.BitDepth != 8 {
		return errors.Errorf("decode: cannot write %v %d-bit pictures", pic.Subsampling, pic.BitDepth)
	}
	if pw.format == formatY4M {
		if pw.frames == 0 {
			rate, scale := pw.rate, pw.scale
			if rate == 0 || scale == 0 {
				rate, scale = 30, 1
			}
			if _, err := fmt.Fprintf(pw.w, "YUV4MPEG2 W%d H%d F%d:%d Ip A0:0 C420jpeg\n",
				pic.Width, pic.Height, rate, scale); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(pw.w, "FRAME\n"); err != nil {
			return err
		}
	}
	cw, ch := (pic.Width+1)/2, (pic.Height+1)/2
	for p := 0; p < 3; p++ {
		w, h := pic.Width, pic.Height
		if p > 0 {
			w, h = cw, ch
		}
		plane, stride := pic.Planes[p], pic.Strides[p]
		for y := 0; y < h; y++ {
			if _, err := pw.w.Write(plane[y*stride : y*stride+w]); err != nil {
				return err
			}
		}
	}
	pw.frames++
	return nil
}
