package image

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"os"
	"strings"
	"testing"
	"time"

	"umapedia/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	common.InitTestLogger()
	os.Exit(m.Run())
}

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestGenerateThumbnailFromDataURI(t *testing.T) {
	svc := NewService(100, 5<<20, 5*time.Second)

	out, err := svc.GenerateThumbnail(context.Background(), pngDataURI(t, 400, 200))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "data:image/jpeg;base64,"))

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(out, "data:image/jpeg;base64,"))
	require.NoError(t, err)

	thumb, format, err := image.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	// 橫向來源圖也裁成正方形
	assert.Equal(t, 100, thumb.Bounds().Dx())
	assert.Equal(t, 100, thumb.Bounds().Dy())
}

func TestGenerateThumbnailPortraitSource(t *testing.T) {
	svc := NewService(64, 5<<20, 5*time.Second)

	out, err := svc.GenerateThumbnail(context.Background(), pngDataURI(t, 120, 480))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(out, "data:image/jpeg;base64,"))
	require.NoError(t, err)
	thumb, _, err := image.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, 64, thumb.Bounds().Dx())
	assert.Equal(t, 64, thumb.Bounds().Dy())
}

func TestGenerateThumbnailRejectsOversize(t *testing.T) {
	// 上限設得很小
	svc := NewService(100, 16, 5*time.Second)

	_, err := svc.GenerateThumbnail(context.Background(), pngDataURI(t, 400, 400))
	assert.ErrorIs(t, err, common.ErrInvalidImageSize)
}

func TestGenerateThumbnailRejectsNonImage(t *testing.T) {
	svc := NewService(100, 5<<20, 5*time.Second)

	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("これは画像ではない"))
	_, err := svc.GenerateThumbnail(context.Background(), src)
	assert.ErrorIs(t, err, common.ErrInvalidImageFormat)
}

func TestGenerateThumbnailRejectsUnknownScheme(t *testing.T) {
	svc := NewService(100, 5<<20, 5*time.Second)

	_, err := svc.GenerateThumbnail(context.Background(), "ftp://example.com/x.png")
	assert.ErrorIs(t, err, common.ErrInvalidImageFormat)

	_, err = svc.GenerateThumbnail(context.Background(), "data:image/png,not-base64-section")
	assert.ErrorIs(t, err, common.ErrInvalidImageFormat)
}
