package chart

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// ErrNotDirectory is returned when the output path exists but is a file.
var ErrNotDirectory = errors.New("output path is not a directory")

// SavePNG draws p on a fresh canvas sized by s and writes it to path.
//
// The image is written to a temporary file in the destination directory and
// renamed into place, so a failed render never leaves a partial PNG. The
// destination directory must already exist.
func SavePNG(p *plot.Plot, s Style, path string) (err error) {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = render(p, s, tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync %s: %w", tmp.Name(), err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", tmp.Name(), err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move image into place: %w", err)
	}
	return nil
}

// render draws p onto a canvas that lives only for this call.
func render(p *plot.Plot, s Style, f *os.File) (err error) {
	defer func() {
		// gonum/plot panics on some degenerate inputs (e.g. NaN ranges).
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to draw chart: %v", r)
		}
	}()

	c := vgimg.NewWith(
		vgimg.UseWH(s.Width, s.Height),
		vgimg.UseDPI(s.DPI),
		vgimg.UseBackgroundColor(s.Background),
	)
	p.Draw(draw.New(c))

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// IsMissingDir reports whether err was caused by an absent output directory.
func IsMissingDir(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
