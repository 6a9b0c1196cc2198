// Package imageurl builds CDN transform URLs for catalog images.
package imageurl

import (
	"net/url"
	"strconv"
	"strings"
)

// Builder produces image URLs with width/height/fit parameters against a CDN
// base. The transform itself is opaque to this service.
type Builder struct {
	base string
}

func New(base string) *Builder {
	return &Builder{base: strings.TrimRight(base, "/")}
}

// Options are the requested transform parameters; zero values are omitted.
type Options struct {
	Width  int
	Height int
	Fit    string
}

// URL returns the delivery URL for ref. Absolute refs pass through with the
// transform query appended; relative refs are joined onto the CDN base. With
// no base configured, relative refs are returned untouched.
func (b *Builder) URL(ref string, opts Options) string {
	if ref == "" {
		return ""
	}

	target := ref
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		if b.base == "" {
			return ref
		}
		target = b.base + "/" + strings.TrimLeft(ref, "/")
	}

	u, err := url.Parse(target)
	if err != nil {
		return ref
	}
	q := u.Query()
	if opts.Width > 0 {
		q.Set("w", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		q.Set("h", strconv.Itoa(opts.Height))
	}
	if opts.Fit != "" {
		q.Set("fit", opts.Fit)
	}
	u.RawQuery = q.Encode()
	return u.String()
}
