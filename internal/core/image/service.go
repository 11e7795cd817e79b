// Package image 食譜縮圖產生。
// 來源圖片（URL 或 base64 data URI）置中裁切成正方形縮圖，
// 輸出為可直接內嵌的 JPEG data URI。與資料模型無關，僅在登錄流程使用。
package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"math"
	"strings"
	"time"

	"umapedia/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"github.com/nfnt/resize"
	"go.uber.org/zap"
)

const jpegQuality = 80

// Service 縮圖服務
type Service struct {
	client   *resty.Client
	size     int
	maxBytes int64
}

// NewService 建立縮圖服務
func NewService(size int, maxBytes int64, fetchTimeout time.Duration) *Service {
	client := resty.New().
		SetTimeout(fetchTimeout).
		SetHeader("User-Agent", "umapedia/1.0")

	return &Service{
		client:   client,
		size:     size,
		maxBytes: maxBytes,
	}
}

// GenerateThumbnail 產生置中裁切的正方形縮圖
// 接受 http(s) URL 或 data URI，回傳 JPEG data URI
func (s *Service) GenerateThumbnail(ctx context.Context, src string) (string, error) {
	data, err := s.loadSource(ctx, src)
	if err != nil {
		return "", err
	}
	if int64(len(data)) > s.maxBytes {
		return "", common.ErrInvalidImageSize
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidImageFormat, err)
	}

	thumb := centerCrop(img, s.size)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return "", fmt.Errorf("encode thumbnail: %w", err)
	}

	common.LogDebug("縮圖產生完成",
		zap.String("來源格式", format),
		zap.Int("尺寸", s.size),
		zap.Int("輸出位元組", buf.Len()),
	)

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// loadSource 取得來源圖片位元組
func (s *Service) loadSource(ctx context.Context, src string) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:image/"):
		parts := strings.SplitN(src, ";base64,", 2)
		if len(parts) != 2 {
			return nil, common.ErrInvalidImageFormat
		}
		data, err := base64.StdEncoding.DecodeString(parts[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidImageFormat, err)
		}
		return data, nil

	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		resp, err := s.client.R().SetContext(ctx).Get(src)
		if err != nil {
			return nil, fmt.Errorf("fetch image: %w", err)
		}
		if resp.StatusCode() != 200 {
			return nil, fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode())
		}
		return resp.Body(), nil

	default:
		return nil, common.ErrInvalidImageFormat
	}
}

// centerCrop 等比縮放後置中裁切成 size x size
func centerCrop(img image.Image, size int) image.Image {
	bounds := img.Bounds()
	iw := float64(bounds.Dx())
	ih := float64(bounds.Dy())

	// 取較大的縮放比，讓短邊貼齊目標尺寸
	scale := math.Max(float64(size)/iw, float64(size)/ih)
	nw := uint(math.Round(iw * scale))
	nh := uint(math.Round(ih * scale))

	resized := resize.Resize(nw, nh, img, resize.Lanczos3)

	x0 := (int(nw) - size) / 2
	y0 := (int(nh) - size) / 2

	out := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(out, out.Bounds(), resized, image.Pt(x0, y0), draw.Src)
	return out
}
