// Package encoder bridges a pull-based frame producer (a stage.SceneRuntime)
// to a push-based H.264/MP4 sink built on FFmpeg via go-astiav: container
// setup, per-frame RGBA-to-YUV420P conversion, PTS assignment, and the
// send_frame/receive_packet/mux loop through to the trailer.
package encoder

import (
	"errors"
	"fmt"

	"github.com/asticode/go-astiav"

	"github.com/duskwillow/moviemaker/internal/mmlog"
	"github.com/duskwillow/moviemaker/stage"
)

// Pipeline configures one H.264/MP4 encode run. One Pipeline drives exactly
// one scene from the first frame through trailer flush.
type Pipeline struct {
	Width, Height int
	FPS           int
	OutputPath    string
}

// Encode pulls frameCount frames from scene at t = k/fps for k in
// [0, frameCount), converts each to YUV420P, and muxes it into an H.264 MP4
// at p.OutputPath. Any codec or I/O failure aborts the run and is returned
// to the caller; a partially-written output (header but no trailer) is left
// on disk — cleanup is the caller's responsibility.
func (p *Pipeline) Encode(scene *stage.SceneRuntime, frameCount int) error {
	formatCtx, err := astiav.AllocOutputFormatContext(nil, "", p.OutputPath)
	if err != nil || formatCtx == nil {
		return fmt.Errorf("encoder: alloc output format context: %w", err)
	}
	defer formatCtx.Free()

	codec := astiav.FindEncoder(astiav.CodecIDH264)
	if codec == nil {
		return errors.New("encoder: h264 encoder not available")
	}

	codecCtx := astiav.AllocCodecContext(codec)
	if codecCtx == nil {
		return errors.New("encoder: alloc codec context failed")
	}
	defer codecCtx.Free()

	timeBase := astiav.NewRational(1, p.FPS)
	codecCtx.SetWidth(p.Width)
	codecCtx.SetHeight(p.Height)
	codecCtx.SetTimeBase(timeBase)
	codecCtx.SetFramerate(astiav.NewRational(p.FPS, 1))
	codecCtx.SetPixelFormat(astiav.PixelFormatYuv420P)
	codecCtx.SetThreadType(astiav.ThreadTypeSlice)

	outputFormat := formatCtx.OutputFormat()
	if outputFormat.Flags()&astiav.IOFormatFlagGlobalHeader != 0 {
		codecCtx.SetFlags(codecCtx.Flags().Add(astiav.CodecContextFlagGlobalHeader))
	}

	if err := codecCtx.Open(codec, nil); err != nil {
		return fmt.Errorf("encoder: open h264 codec: %w", err)
	}

	stream := formatCtx.NewStream(nil)
	if stream == nil {
		return errors.New("encoder: alloc output stream failed")
	}
	stream.SetTimeBase(timeBase)
	if err := stream.CodecParameters().FromCodecContext(codecCtx); err != nil {
		return fmt.Errorf("encoder: copy codec parameters to stream: %w", err)
	}

	if outputFormat.Flags()&astiav.IOFormatFlagNoFile == 0 {
		ioCtx, err := astiav.AllocIOContext(p.OutputPath, nil, nil, astiav.NewIOContextFlags(astiav.IOContextFlagWrite))
		if err != nil {
			return fmt.Errorf("encoder: open output file: %w", err)
		}
		defer ioCtx.Close()
		formatCtx.SetPb(ioCtx)
	}

	if err := formatCtx.WriteHeader(nil); err != nil {
		return fmt.Errorf("encoder: write container header: %w", err)
	}

	yuvFrame := astiav.AllocFrame()
	defer yuvFrame.Free()
	yuvFrame.SetWidth(p.Width)
	yuvFrame.SetHeight(p.Height)
	yuvFrame.SetPixelFormat(astiav.PixelFormatYuv420P)
	if err := yuvFrame.AllocBuffer(1); err != nil {
		return fmt.Errorf("encoder: alloc yuv frame buffer: %w", err)
	}

	packet := astiav.AllocPacket()
	defer packet.Free()

	// rgbaFrame and swsCtx are (re)built whenever a rendered frame's actual
	// dimensions differ from the last one seen, so an encode whose clear
	// texture doesn't match the view-port still scales correctly instead of
	// producing a corrupted frame. In the common case every frame matches
	// the view-port and both are built once, on the first frame.
	var (
		rgbaFrame *astiav.Frame
		swsCtx    *astiav.SoftwareScaleContext
		rgbaW     int
		rgbaH     int
	)
	defer func() {
		if rgbaFrame != nil {
			rgbaFrame.Free()
		}
		if swsCtx != nil {
			swsCtx.Free()
		}
	}()

	for k := 0; k < frameCount; k++ {
		t := float64(k) / float64(p.FPS)
		img := scene.Render(t)
		b := img.Bounds()
		w, h := b.Dx(), b.Dy()

		if rgbaFrame == nil || w != rgbaW || h != rgbaH {
			if rgbaFrame != nil {
				rgbaFrame.Free()
			}
			if swsCtx != nil {
				swsCtx.Free()
			}

			rgbaFrame = astiav.AllocFrame()
			rgbaFrame.SetWidth(w)
			rgbaFrame.SetHeight(h)
			rgbaFrame.SetPixelFormat(astiav.PixelFormatRgba)
			if err := rgbaFrame.AllocBuffer(1); err != nil {
				return fmt.Errorf("encoder: alloc rgba frame buffer: %w", err)
			}

			swsCtx, err = astiav.CreateSoftwareScaleContext(
				w, h, astiav.PixelFormatRgba,
				p.Width, p.Height, astiav.PixelFormatYuv420P,
				astiav.NewSoftwareScaleContextFlags(astiav.SoftwareScaleContextFlagBilinear),
			)
			if err != nil {
				return fmt.Errorf("encoder: create software scale context: %w", err)
			}
			rgbaW, rgbaH = w, h
		}

		copy(rgbaFrame.Data().Bytes(0), img.Pix)

		if err := swsCtx.ScaleFrame(rgbaFrame, yuvFrame); err != nil {
			return fmt.Errorf("encoder: scale frame %d to yuv420p: %w", k, err)
		}
		yuvFrame.SetPts(int64(k))

		if err := p.submit(codecCtx, formatCtx, stream, yuvFrame, packet); err != nil {
			return err
		}
	}

	// Flush: send a nil frame, then drain whatever the encoder still holds.
	if err := p.submit(codecCtx, formatCtx, stream, nil, packet); err != nil {
		return err
	}

	if err := formatCtx.WriteTrailer(); err != nil {
		return fmt.Errorf("encoder: write container trailer: %w", err)
	}

	mmlog.Get().Info("encoder: finished", "frames", frameCount, "draw_calls", scene.DrawCalls())
	return nil
}

// submit sends one frame (or nil at EOF) to the encoder and drains every
// packet it produces, muxing each in turn. Shared between the per-frame
// path and the final flush.
func (p *Pipeline) submit(codecCtx *astiav.CodecContext, formatCtx *astiav.FormatContext, stream *astiav.Stream, frame *astiav.Frame, packet *astiav.Packet) error {
	if err := codecCtx.SendFrame(frame); err != nil {
		return fmt.Errorf("encoder: send frame to codec: %w", err)
	}

	for {
		err := codecCtx.ReceivePacket(packet)
		if errors.Is(err, astiav.ErrEof) || errors.Is(err, astiav.ErrEagain) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("encoder: receive packet from codec: %w", err)
		}

		packet.RescaleTs(codecCtx.TimeBase(), stream.TimeBase())
		packet.SetStreamIndex(stream.Index())
		werr := formatCtx.WriteInterleavedFrame(packet)
		packet.Unref()
		if werr != nil {
			return fmt.Errorf("encoder: mux packet: %w", werr)
		}
	}
}
