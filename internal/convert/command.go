package convert

import (
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/Akaiko1/mp4-png-converter/internal/config"
)

// BuildArgs returns the converter arguments for req: every frame as a lossless image at the
// source resolution, progress key/value lines on the status stream.
func BuildArgs(req Request, cfg *config.Config) []string {
	stream := ffmpeg.Input(req.InputFile).
		Output(req.FramePath(cfg.FramePattern), ffmpeg.KwArgs{
			"format": cfg.Format,
			"vcodec": cfg.VideoCodec,
		}).
		GlobalArgs("-progress", cfg.ProgressTarget, "-nostats")
	if cfg.Overwrite {
		stream = stream.OverWriteOutput()
	}
	return stream.GetArgs()
}
