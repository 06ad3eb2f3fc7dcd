package chat

import (
	"context"
	"net/http"
	"strings"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/pkg/errors"
)

// ImageProber checks whether a product image can be loaded.
type ImageProber struct {
	client *http.Client
}

func NewImageProber(c *http.Client) *ImageProber {
	if c == nil {
		c = cleanhttp.DefaultClient()
	}
	return &ImageProber{client: c}
}

// Probe issues a HEAD request for url. An empty url, a failed request or a
// non-2xx status counts as a load failure.
func (p *ImageProber) Probe(ctx context.Context, url string) error {
	if strings.TrimSpace(url) == "" {
		return errors.New("empty image url")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return errors.Wrap(err, "build image request")
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "load image")
	}
	_ = resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("load image: status %d", resp.StatusCode)
	}
	return nil
}
