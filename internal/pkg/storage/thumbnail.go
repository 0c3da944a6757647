// internal/pkg/storage/thumbnail.go
package storage

import (
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ThumbnailOptions control the generated preview
type ThumbnailOptions struct {
	Size    int
	Quality int
	Prefix  string
}

// Fit returns the largest w×h not exceeding bound on either side while
// keeping the aspect ratio. Images already small enough are left as they are.
func Fit(w, h, bound int) (int, int) {
	if w <= bound && h <= bound {
		return w, h
	}
	if w >= h {
		return bound, atLeastOne(h * bound / w)
	}
	return atLeastOne(w * bound / h), bound
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

// Thumbnail decodes src and writes a JPEG preview to
// {root}/thumbnails/{kind}/{id}/{prefix}{name}.
func (s *LocalStore) Thumbnail(src Object, kind string, id int64, name string, opts ThumbnailOptions) (Object, error) {
	in, err := os.Open(src.Path)
	if err != nil {
		return Object{}, fmt.Errorf("failed to open source: %w", err)
	}
	defer in.Close()

	img, _, err := image.Decode(in)
	if err != nil {
		return Object{}, fmt.Errorf("failed to decode image: %w", err)
	}

	b := img.Bounds()
	w, h := Fit(b.Dx(), b.Dy(), opts.Size)
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)

	obj := s.object(0, "thumbnails", kind, strconv.FormatInt(id, 10), opts.Prefix+name)
	if err := os.MkdirAll(filepath.Dir(obj.Path), 0o755); err != nil {
		return Object{}, fmt.Errorf("failed to create thumbnail directory: %w", err)
	}

	out, err := os.Create(obj.Path)
	if err != nil {
		return Object{}, fmt.Errorf("failed to create thumbnail: %w", err)
	}
	if err := jpeg.Encode(out, dst, &jpeg.Options{Quality: opts.Quality}); err != nil {
		out.Close()
		s.Remove(obj.Path)
		return Object{}, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	if err := out.Close(); err != nil {
		s.Remove(obj.Path)
		return Object{}, fmt.Errorf("failed to close thumbnail: %w", err)
	}

	if st, err := os.Stat(obj.Path); err == nil {
		obj.Size = st.Size()
	}
	return obj, nil
}
