// Package media manages images on the external object host: server-side
// validated uploads and deletion by folder/publicId reference.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/url"
	"path"
	"strings"

	errors "github.com/Laisky/errors/v2"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/nexbytes/nexfolio/backend/go-services/internal/apperr"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/logger"
	"github.com/nexbytes/nexfolio/backend/go-services/pkg/metrics"
)

// ObjectStore is the subset of the image host the manager needs.
// Remove returns apperr.ErrNotFound when key does not exist.
type ObjectStore interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, key string) error
}

type Options struct {
	Folder        string
	PublicBaseURL string
	MaxBytes      int64
	MaxDimension  int
	Quality       int
	// MaxPixels caps the declared width*height checked before decoding.
	MaxPixels int64
}

// Upload describes a stored image.
type Upload struct {
	URL      string `json:"url"`
	Folder   string `json:"folder"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Bytes    int64  `json:"bytes"`
}

const storedExt = ".jpg"

var allowedTypes = []string{"image/jpeg", "image/png"}

type Manager struct {
	store ObjectStore
	opts  Options
	newID func() string
}

func NewManager(store ObjectStore, opts Options) *Manager {
	if opts.Folder == "" {
		opts.Folder = "uploads"
	}
	if opts.MaxDimension <= 0 {
		opts.MaxDimension = 1200
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = 60
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = 5 << 20
	}
	if opts.MaxPixels <= 0 {
		opts.MaxPixels = 40_000_000
	}
	opts.PublicBaseURL = strings.TrimRight(opts.PublicBaseURL, "/")
	return &Manager{store: store, opts: opts, newID: uuid.NewString}
}

func (m *Manager) MaxBytes() int64 { return m.opts.MaxBytes }

// Upload validates the payload, fits it within the configured box and stores
// it as a JPEG under <folder>/<publicId>.jpg.
func (m *Manager) Upload(ctx context.Context, r io.Reader, declaredSize int64) (*Upload, error) {
	if declaredSize > m.opts.MaxBytes {
		return nil, tooLarge(m.opts.MaxBytes)
	}
	data, err := io.ReadAll(io.LimitReader(r, m.opts.MaxBytes+1))
	if err != nil {
		return nil, errors.Wrap(err, "read upload")
	}
	if len(data) == 0 {
		return nil, apperr.Validation("No file uploaded.")
	}
	if int64(len(data)) > m.opts.MaxBytes {
		return nil, tooLarge(m.opts.MaxBytes)
	}
	if mt := mimetype.Detect(data); !mimetype.EqualsAny(mt.String(), allowedTypes...) {
		return nil, apperr.Validation("Only JPG, JPEG and PNG images are allowed.")
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Validation("File is not a valid image.")
	}
	if int64(cfg.Width)*int64(cfg.Height) > m.opts.MaxPixels {
		return nil, apperr.Validation("Image dimensions are too large.")
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Validation("File is not a valid image.")
	}
	img = fit(img, m.opts.MaxDimension)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: m.opts.Quality}); err != nil {
		return nil, errors.Wrap(err, "encode jpeg")
	}

	publicID := m.newID()
	key := m.key(m.opts.Folder, publicID)
	size := int64(buf.Len())
	if err := m.store.Put(ctx, key, &buf, size, "image/jpeg"); err != nil {
		metrics.MediaOperations.WithLabelValues("upload", "error").Inc()
		return nil, errors.Wrap(err, "store image")
	}
	metrics.MediaOperations.WithLabelValues("upload", "ok").Inc()

	b := img.Bounds()
	return &Upload{
		URL:      m.URL(m.opts.Folder, publicID),
		Folder:   m.opts.Folder,
		PublicID: publicID,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Bytes:    size,
	}, nil
}

// Delete removes the image identified by folder and publicId. A missing
// image yields a NotFound error.
func (m *Manager) Delete(ctx context.Context, folder, publicID string) error {
	if !validSegment(folder) || !validSegment(publicID) {
		return apperr.NotFound("File not found on image host.")
	}
	err := m.store.Remove(ctx, m.key(folder, publicID))
	switch {
	case err == nil:
		metrics.MediaOperations.WithLabelValues("delete", "ok").Inc()
		return nil
	case errors.Is(err, apperr.ErrNotFound):
		metrics.MediaOperations.WithLabelValues("delete", "not_found").Inc()
		logger.Debugf("media delete: %s/%s not found", folder, publicID)
		return apperr.NotFound("File not found on image host.")
	default:
		metrics.MediaOperations.WithLabelValues("delete", "error").Inc()
		return errors.Wrapf(err, "delete image %s/%s", folder, publicID)
	}
}

// URL is the public address of a stored image.
func (m *Manager) URL(folder, publicID string) string {
	return m.opts.PublicBaseURL + "/" + m.key(folder, publicID)
}

func (m *Manager) key(folder, publicID string) string {
	if path.Ext(publicID) == "" {
		publicID += storedExt
	}
	return folder + "/" + publicID
}

// ParseReference derives folder and publicId from an image URL: the last two
// path segments, with the file extension dropped from the publicId.
func ParseReference(ref string) (folder, publicID string, err error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", "", errors.New("empty image reference")
	}
	p := ref
	if u, perr := url.Parse(ref); perr == nil {
		p = u.Path
	}
	segs := strings.Split(strings.Trim(p, "/"), "/")
	if len(segs) < 2 {
		return "", "", errors.Errorf("image reference %q has no folder", ref)
	}
	folder = segs[len(segs)-2]
	last := segs[len(segs)-1]
	publicID = strings.TrimSuffix(last, path.Ext(last))
	if !validSegment(folder) || !validSegment(publicID) {
		return "", "", errors.Errorf("invalid image reference %q", ref)
	}
	return folder, publicID, nil
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, "/\\")
}

// fit scales img to fit within limit x limit, never upscaling, and flattens it onto white.
func fit(img image.Image, limit int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w > limit || h > limit {
		if w >= h {
			h = h * limit / w
			w = limit
		} else {
			w = w * limit / h
			h = limit
		}
		if w < 1 {
			w = 1
		}
		if h < 1 {
			h = 1
		}
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	} else {
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	}
	return dst
}

func tooLarge(limit int64) error {
	return apperr.Validation("File exceeds the maximum size of %s.", humanBytes(limit))
}

func humanBytes(n int64) string {
	if n >= 1<<20 && n%(1<<20) == 0 {
		return fmt.Sprintf("%dMB", n>>20)
	}
	return fmt.Sprintf("%d bytes", n)
}
