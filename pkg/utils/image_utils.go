package utils

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"go.uber.org/zap"
)

// maxFrameCandidates bounds how many embedded frame signatures are tried
// before a video is declared preview-less.
const maxFrameCandidates = 64

var (
	jpegSignature = []byte{0xFF, 0xD8, 0xFF}
	pngSignature  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

	ErrNoFrame       = errors.New("no decodable frame")
	ErrImageTooLarge = errors.New("image dimensions exceed pixel limit")
)

type ImageProcessor struct {
	log       *zap.Logger
	maxPixels int64
}

// NewImageProcessor returns a processor that refuses to decode images whose
// header declares more than maxPixels pixels.
func NewImageProcessor(log *zap.Logger, maxPixels int64) *ImageProcessor {
	return &ImageProcessor{log: log, maxPixels: maxPixels}
}

// decode reads the header first so a forged size never reaches the
// decoder's pixel buffer allocation.
func (p *ImageProcessor) decode(data []byte) (image.Image, string, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	pixels := int64(cfg.Width) * int64(cfg.Height)
	if cfg.Width <= 0 || cfg.Height <= 0 || pixels > p.maxPixels {
		return nil, "", fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	return image.Decode(bytes.NewReader(data))
}

// Canonicalize decodes an image in any registered format and re-encodes it
// as PNG.
func (p *ImageProcessor) Canonicalize(data []byte) ([]byte, string, error) {
	img, format, err := p.decode(data)
	if err != nil {
		return nil, "", err
	}

	out, err := EncodePNG(img)
	if err != nil {
		return nil, "", err
	}

	p.log.Debug("Image canonicalized",
		zap.String("source_format", format),
		zap.Int("input_size", len(data)),
		zap.Int("output_size", len(out)))

	return out, format, nil
}

// ExtractFirstFrame returns the first decodable frame of a video payload as
// PNG. The whole payload is tried first, then every embedded JPEG or PNG
// signature in order, which covers motion-JPEG containers and cover art.
func (p *ImageProcessor) ExtractFirstFrame(data []byte) ([]byte, error) {
	if img, _, err := p.decode(data); err == nil {
		return EncodePNG(img)
	}

	tried := 0
	for offset := 0; offset < len(data) && tried < maxFrameCandidates; offset++ {
		rest := data[offset:]
		if !bytes.HasPrefix(rest, jpegSignature) && !bytes.HasPrefix(rest, pngSignature) {
			continue
		}
		tried++

		img, format, err := p.decode(rest)
		if err != nil {
			if errors.Is(err, ErrImageTooLarge) {
				p.log.Debug("Skipping oversized frame",
					zap.Int("offset", offset),
					zap.Error(err))
			}
			continue
		}

		p.log.Debug("Video frame extracted",
			zap.Int("offset", offset),
			zap.String("format", format))

		return EncodePNG(img)
	}

	return nil, ErrNoFrame
}

func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
