// Package vpx provides a pure Go decoder core for the VP8 and VP9 video
// formats.
//
// A Decoder consumes one coded frame per call and publishes the frames
// meant for display to an output queue. Reference buffers, probability
// adaptation and loop filtering are handled internally; containers and
// presentation timing are left to the caller.
//
// The package supports:
//   - VP8 key and inter frames, segmentation, token partitions decoded in
//     parallel, golden and altref references, normal and simple loop filters
//   - VP9 profile 0 frames: superframes, intra and inter blocks, compound
//     prediction, segmentation, tile columns decoded in parallel, reference
//     slots, show_existing_frame and probability adaptation
//
// VP9 frames at other bit depths or subsamplings, and inter frames whose
// references differ in size, fail with ErrUnsupported and leave the
// decoder unchanged.
//
// Basic usage:
//
//	d, err := vpx.NewDecoder(vpx.DefaultConfig(vpx.CodecVP8))
//	if err != nil {
//		return err
//	}
//	defer d.Close()
//	for _, pkt := range packets {
//		if err := d.Decode(pkt); err != nil {
//			continue // the frame is dropped, the stream goes on
//		}
//		for pic, ok := d.TakeOutput(); ok; pic, ok = d.TakeOutput() {
//			show(pic.YCbCr())
//			pic.Release()
//		}
//	}
package vpx
