package storage

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// AvatarMaxEdge 是存储头像的最长边像素数。
const AvatarMaxEdge = 512

// Thumbnail 解码图片并在保持宽高比的前提下缩到最长边不超过 maxEdge，
// 统一编码为 JPEG 返回。已经足够小的图片只做重编码。
func Thumbnail(data []byte, maxEdge int) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode avatar image: %w", err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if width > maxEdge || height > maxEdge {
		if width >= height {
			height = height * maxEdge / width
			width = maxEdge
		} else {
			width = width * maxEdge / height
			height = maxEdge
		}
		if width < 1 {
			width = 1
		}
		if height < 1 {
			height = 1
		}

		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode avatar image: %w", err)
	}
	return buf.Bytes(), nil
}
