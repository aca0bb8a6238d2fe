// Package media produces thumbnails for catalog image references. Product
// images live on the CDN at full size; the register only ever needs small
// previews, so they are fetched once, fit-resized and re-encoded as webp.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"

	"meezy.GO/core/cache"
)

var ErrNotImage = errors.New("media: response is not a decodable image")

const (
	// DefaultEdge is the bounding box for register previews.
	DefaultEdge = 256

	thumbTTLSeconds = 3600
	thumbQuality    = 80
	maxSourceBytes  = 16 << 20
)

// Service fetches remote images and serves webp thumbnails out of the
// shared in-process cache.
type Service struct {
	http  *http.Client
	cache *cache.Cache
}

func NewService() *Service {
	return &Service{
		http:  &http.Client{Timeout: 15 * time.Second},
		cache: cache.GetInstance(),
	}
}

// NewServiceWithHTTP is for tests that need to point at a local server.
func NewServiceWithHTTP(client *http.Client) *Service {
	return &Service{http: client, cache: cache.NewCache()}
}

// Thumbnail returns the image at imageURL resized to fit within edge×edge,
// encoded as webp. Results are cached per URL and edge for an hour.
func (s *Service) Thumbnail(ctx context.Context, imageURL string, edge int) ([]byte, error) {
	if edge <= 0 {
		edge = DefaultEdge
	}
	key := fmt.Sprintf("media:thumb:%d:%s", edge, imageURL)
	if cached, ok := s.cache.Get(key); ok {
		if payload, ok := cached.([]byte); ok {
			return payload, nil
		}
	}

	img, err := s.fetch(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fit(img, edge, edge, imaging.Lanczos)
	var buf bytes.Buffer
	if err := webp.Encode(&buf, thumb, &webp.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("media: encode %s: %w", imageURL, err)
	}

	payload := buf.Bytes()
	s.cache.Set(key, payload, thumbTTLSeconds, []string{"media"})
	return payload, nil
}

func (s *Service) fetch(ctx context.Context, imageURL string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("media: bad image url %q: %w", imageURL, err)
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media: fetch %s: %w", imageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media: fetch %s: status %d", imageURL, resp.StatusCode)
	}

	img, err := imaging.Decode(io.LimitReader(resp.Body, maxSourceBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, imageURL)
	}
	return img, nil
}
