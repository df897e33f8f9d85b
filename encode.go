package moviemaker

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/duskwillow/moviemaker/encoder"
	"github.com/duskwillow/moviemaker/stage"
)

// EncodeScene binds meta against ctx's texture registry and encodes it to
// an H.264 MP4 at outputPath, running for ctx.FrameCount() frames at
// ctx.FPS. This is the single entry point tying the texture registry, the
// scene render loop, and the encoder pipeline together.
//
// A texture that cannot be opened is reported as AssetMissing and one that
// cannot be decoded as AssetDecode. Every failure inside the encoder
// pipeline, including opening the output file and writing the container
// header or trailer, is reported as Codec.
func EncodeScene(ctx *RuntimeContext, meta stage.MetaScene, outputPath string) error {
	runtime, err := stage.NewSceneRuntime(meta, ctx.Registry)
	if err != nil {
		kind := AssetDecode
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			kind = AssetMissing
		}
		return wrap(kind, err)
	}

	pipeline := &encoder.Pipeline{
		Width:      ctx.Width,
		Height:     ctx.Height,
		FPS:        ctx.FPS,
		OutputPath: outputPath,
	}

	if err := pipeline.Encode(runtime, ctx.FrameCount()); err != nil {
		return wrap(Codec, fmt.Errorf("scene %q: %w", meta.Name, err))
	}
	return nil
}
