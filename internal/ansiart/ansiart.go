// Package ansiart turns card images into truecolor terminal art made of upper
// half blocks, two pixel rows per text row.
package ansiart

import (
	"crypto/md5"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/nfnt/resize"
)

// Default art size in character cells.
const (
	DefaultWidth  = 40
	DefaultHeight = 32
)

// Extensions lists the image file extensions Find looks for.
var Extensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// Find returns the path of the image for ref inside dir, trying ref as given
// and then with each of Extensions.
func Find(dir, ref string) (string, error) {
	if ref == "" {
		return "", errors.New("card has no image")
	}
	base := filepath.Join(dir, filepath.FromSlash(ref))
	candidates := []string{base}
	if filepath.Ext(ref) == "" {
		for _, ext := range Extensions {
			candidates = append(candidates, base+ext)
		}
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("no image found for %s", ref)
}

// Cached returns the art for imagePath, generating it into cacheDir on first
// use. The cache file name is derived from the image path.
func Cached(imagePath, cacheDir string) (string, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create ANSI cache directory: %w", err)
	}

	cachePath := filepath.Join(cacheDir, fmt.Sprintf("%x.ansi", md5.Sum([]byte(imagePath))))
	if data, err := os.ReadFile(cachePath); err == nil {
		return string(data), nil
	}

	art, err := Generate(imagePath)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(cachePath, []byte(art), 0644); err != nil {
		return "", fmt.Errorf("failed to write ANSI art to file: %w", err)
	}
	return art, nil
}

// Generate decodes an image file and converts it at the default size.
func Generate(imagePath string) (string, error) {
	file, err := os.Open(imagePath)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}
	return FromImage(img, DefaultWidth, DefaultHeight), nil
}

// FromImage converts img to width x height character cells. Each cell covers
// a 2x2 pixel square drawn as an upper half block: the top pixel pair sets the
// foreground and the bottom pair the background.
func FromImage(img image.Image, width, height int) string {
	resized := resize.Resize(uint(width*2), uint(height*2), img, resize.Lanczos3)

	var sb strings.Builder
	for y := 0; y < height*2; y += 2 {
		for x := 0; x < width*2; x += 2 {
			top := average(colorAt(resized, x, y), colorAt(resized, x+1, y))
			bottom := average(colorAt(resized, x, y+1), colorAt(resized, x+1, y+1))

			tr, tg, tb := top.RGB255()
			br, bg, bb := bottom.RGB255()
			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀\x1b[0m", tr, tg, tb, br, bg, bb)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// colorAt returns the pixel at x, y, or opaque black outside the image.
func colorAt(img image.Image, x, y int) colorful.Color {
	p := image.Pt(x, y).Add(img.Bounds().Min)
	if !p.In(img.Bounds()) {
		return colorful.Color{}
	}
	c, ok := colorful.MakeColor(img.At(p.X, p.Y))
	if !ok {
		// Fully transparent.
		return colorful.Color{}
	}
	return c
}

func average(colors ...colorful.Color) colorful.Color {
	var r, g, b float64
	for _, c := range colors {
		r += c.R
		g += c.G
		b += c.B
	}
	n := float64(len(colors))
	return colorful.Color{R: r / n, G: g / n, B: b / n}.Clamped()
}

// Strip removes ANSI escape sequences from s.
func Strip(s string) string {
	var sb strings.Builder
	inEscape := false
	for _, c := range s {
		switch {
		case inEscape:
			if c == 'm' {
				inEscape = false
			}
		case c == '\033':
			inEscape = true
		default:
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// Width returns the number of visible characters of the widest line of art.
func Width(art string) int {
	w := 0
	for _, line := range strings.Split(art, "\n") {
		w = max(w, len([]rune(Strip(line))))
	}
	return w
}
