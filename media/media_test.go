package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/morgue/article"
	"github.com/tsawler/morgue/model"
	"github.com/tsawler/morgue/source"
)

// noisyPNG encodes a w x h image of random pixels, which PNG cannot
// compress, so payload size grows with area
func noisyPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(int64(w*h + 1)))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(rng.Intn(256)), uint8(rng.Intn(256)), uint8(rng.Intn(256)), 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestHarvest(t *testing.T) {
	photo := noisyPNG(t, 300, 240)
	thumb := noisyPNG(t, 120, 120)

	images := []model.Image{
		{Name: "Im1", Data: thumb},
		{Name: "Im2", Data: photo},
		{Name: "Im3", Data: []byte("tiny"), Format: "jpg", PixelWidth: 800, PixelHeight: 600},
		{Name: "Im4", Data: bytes.Repeat([]byte{0xff}, 20000), Format: "jpeg", PixelWidth: 800, PixelHeight: 600},
		{Name: "Im5", Data: bytes.Repeat([]byte{0x00}, 20000)},
		{Name: "Im6"},
	}

	got := Harvest(images, "council-budget", DefaultHarvestConfig())
	require.Len(t, got, 2)

	assert.Equal(t, "council-budget-2.png", got[0].Name)
	assert.Equal(t, 300, got[0].Width)
	assert.Equal(t, 240, got[0].Height)
	assert.Equal(t, "image/png", got[0].ContentType)

	assert.Equal(t, "council-budget-4.jpg", got[1].Name, "source dimensions are trusted")
	assert.Equal(t, "image/jpeg", got[1].ContentType)
}

func TestHarvest_MaxImages(t *testing.T) {
	data := bytes.Repeat([]byte{1}, 16000)
	var images []model.Image
	for i := 0; i < 8; i++ {
		images = append(images, model.Image{Data: data, Format: "jpg", PixelWidth: 400, PixelHeight: 400})
	}

	got := Harvest(images, "s", DefaultHarvestConfig())
	assert.Len(t, got, 5)

	cfg := DefaultHarvestConfig()
	cfg.MaxImages = 0
	assert.Len(t, Harvest(images, "s", cfg), 8)
}

type recordingUploader struct {
	keys []string
	fail string
}

func (r *recordingUploader) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if r.fail != "" && strings.HasSuffix(key, r.fail) {
		return "", errors.New("upload refused")
	}
	r.keys = append(r.keys, key)
	return "https://cdn.example/" + key, nil
}

func jpegImage(name string) model.Image {
	return model.Image{Name: name, Data: bytes.Repeat([]byte{7}, 16000), Format: "jpg", PixelWidth: 640, PixelHeight: 480}
}

func TestPublisher_CandidateImages(t *testing.T) {
	up := &recordingUploader{fail: "-2.jpg"}
	p := NewPublisher(up, "media/journalism", DefaultHarvestConfig())

	c := article.Candidate{Images: []model.Image{jpegImage("Im1"), jpegImage("Im2"), jpegImage("Im3")}}
	urls, err := p.Resolve(context.Background(), c, "mill-reopens")

	assert.Error(t, err)
	assert.Equal(t, []string{
		"https://cdn.example/media/journalism/mill-reopens/mill-reopens-1.jpg",
		"https://cdn.example/media/journalism/mill-reopens/mill-reopens-3.jpg",
	}, urls)
}

func TestPublisher_ReopensPage(t *testing.T) {
	src := source.NewMemory().Add("issues/a.pdf",
		model.Page{Width: 600, Height: 1000},
		model.Page{Width: 600, Height: 1000, Images: []model.Image{jpegImage("Im9")}},
	)
	up := &recordingUploader{}
	p := NewPublisher(up, "media", DefaultHarvestConfig()).WithSource(src, "issues")

	urls, err := p.Resolve(context.Background(), article.Candidate{Filename: "a.pdf", Page: 2}, "slug")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example/media/slug/slug-1.jpg"}, urls)

	_, err = p.Resolve(context.Background(), article.Candidate{Filename: "missing.pdf", Page: 1}, "slug")
	assert.Error(t, err)
}

func TestDirUploader(t *testing.T) {
	root := t.TempDir()

	u := NewDirUploader(root, "https://example.org/static")
	got, err := u.Upload(context.Background(), "media/slug/slug-1.jpg", []byte("data"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://example.org/static/media/slug/slug-1.jpg", got)

	data, err := os.ReadFile(filepath.Join(root, "media", "slug", "slug-1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(data))

	got, err = NewDirUploader(root, "").Upload(context.Background(), "x.png", []byte("p"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "file://"))
}

func TestNewS3Uploader_RequiresBucketAndRegion(t *testing.T) {
	_, err := NewS3Uploader(context.Background(), S3Config{Region: "ca-central-1"})
	assert.Error(t, err)

	_, err = NewS3Uploader(context.Background(), S3Config{Bucket: "b"})
	assert.Error(t, err)
}

func TestS3Uploader_URL(t *testing.T) {
	u := &S3Uploader{bucket: "archive", region: "ca-central-1"}
	assert.Equal(t, "https://archive.s3.ca-central-1.amazonaws.com/media/a/b.jpg", u.URL("media/a/b.jpg"))
}
