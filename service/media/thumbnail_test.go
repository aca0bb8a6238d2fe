package media

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/chai2010/webp"
)

func servePNG(t *testing.T, w, h int, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode fixture: %v", err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		rw.Header().Set("Content-Type", "image/png")
		rw.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestThumbnail_FitsWithinBoundsAsWebp(t *testing.T) {
	srv := servePNG(t, 1200, 800, nil)
	svc := NewServiceWithHTTP(srv.Client())

	payload, err := svc.Thumbnail(context.Background(), srv.URL+"/tee.png", 256)
	if err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	thumb, err := webp.Decode(bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	b := thumb.Bounds()
	if b.Dx() > 256 || b.Dy() > 256 {
		t.Errorf("thumb is %dx%d, want within 256x256", b.Dx(), b.Dy())
	}
	// Fit keeps the aspect ratio: 1200x800 lands on 256x170, not a square.
	if b.Dx() != 256 || b.Dy() >= 256 {
		t.Errorf("thumb is %dx%d, want aspect ratio preserved", b.Dx(), b.Dy())
	}
}

func TestThumbnail_SecondRequestServedFromCache(t *testing.T) {
	var hits atomic.Int32
	srv := servePNG(t, 400, 400, &hits)
	svc := NewServiceWithHTTP(srv.Client())

	url := srv.URL + "/tee.png"
	if _, err := svc.Thumbnail(context.Background(), url, 128); err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if _, err := svc.Thumbnail(context.Background(), url, 128); err != nil {
		t.Fatalf("Thumbnail: %v", err)
	}
	if hits.Load() != 1 {
		t.Errorf("origin hits = %d, want 1 with warm cache", hits.Load())
	}
}

func TestThumbnail_NonImagePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.Write([]byte("<html>not an image</html>"))
	}))
	t.Cleanup(srv.Close)

	svc := NewServiceWithHTTP(srv.Client())
	if _, err := svc.Thumbnail(context.Background(), srv.URL, 128); !errors.Is(err, ErrNotImage) {
		t.Errorf("err = %v, want ErrNotImage", err)
	}
}

func TestThumbnail_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, _ *http.Request) {
		rw.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	svc := NewServiceWithHTTP(srv.Client())
	if _, err := svc.Thumbnail(context.Background(), srv.URL, 128); err == nil {
		t.Error("Thumbnail succeeded against a 404 origin")
	}
}
