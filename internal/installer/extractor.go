package installer

import (
	"archive/tar"
	"archive/zip"
	"compress/bzip2"
	"compress/gzip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip" // For reading .7z archives
	"github.com/xi2/xz"          // For reading .xz compressed data

	apperrors "mgas/internal/errors"
	"mgas/internal/logger"
)

// ExtractArchive unpacks src into dest, choosing the format by file suffix.
func ExtractArchive(src, dest string) error {
	name := strings.ToLower(src)
	switch {
	case strings.HasSuffix(name, ".zip"):
		logger.Debug("[DEBUG] compression type is zip\n")
		return extractZip(src, dest)
	case strings.HasSuffix(name, ".7z"):
		logger.Debug("[DEBUG] compression type is 7z\n")
		return extract7z(src, dest)
	case strings.HasSuffix(name, ".tar"), strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"),
		strings.HasSuffix(name, ".tar.bz2"), strings.HasSuffix(name, ".tar.xz"):
		logger.Debug("[DEBUG] compression type is tar.*\n")
		return extractTarArchive(src, dest)
	default:
		return apperrors.Errorf("unsupported archive format: %s", src)
	}
}

// entryPath joins an archive entry name onto dest and rejects names that
// would land outside it.
func entryPath(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	rel, err := filepath.Rel(dest, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return "", apperrors.Errorf("archive entry %q escapes destination", name)
	}
	return target, nil
}

// writeEntry creates target with the content of r.
func writeEntry(target string, r io.Reader, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	if mode.Perm() == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode.Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// extractTarArchive handles tar and compressed tar variants.
func extractTarArchive(src, dest string) error {
	logger.Debug("[DEBUG] uncompressing %s to %s\n", src, dest)
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	name := strings.ToLower(src)
	var reader io.Reader = f
	switch {
	case strings.HasSuffix(name, ".tar.gz"), strings.HasSuffix(name, ".tgz"):
		gr, err := gzip.NewReader(f)
		if err != nil {
			return err
		}
		defer gr.Close()
		reader = gr
	case strings.HasSuffix(name, ".tar.bz2"):
		reader = bzip2.NewReader(f)
	case strings.HasSuffix(name, ".tar.xz"):
		xzr, err := xz.NewReader(f, 0)
		if err != nil {
			return err
		}
		reader = xzr
	}

	tr := tar.NewReader(reader)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		target, err := entryPath(dest, hdr.Name)
		if err != nil {
			return err
		}
		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
		case tar.TypeReg:
			if err := writeEntry(target, tr, fs.FileMode(hdr.Mode)); err != nil {
				return err
			}
		default:
			logger.Debug("[DEBUG] skipping tar entry %s (type %c)\n", hdr.Name, hdr.Typeflag)
		}
	}
}

// extractZip extracts a .zip archive.
func extractZip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := entryPath(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeEntry(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// extract7z handles .7z extraction using the sevenzip library.
func extract7z(src, dest string) error {
	r, err := sevenzip.OpenReader(src)
	if err != nil {
		return apperrors.Wrap(err, "failed to open 7z archive")
	}
	defer r.Close()

	for _, f := range r.File {
		target, err := entryPath(dest, f.Name)
		if err != nil {
			return err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return err
		}
		err = writeEntry(target, rc, f.Mode())
		rc.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// findExecutable returns the first regular file under root named exactly name.
func findExecutable(root, name string) (string, error) {
	logger.Debug("[DEBUG] Scanning %s for %s\n", root, name)
	var found string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != name {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		found = path
		return fs.SkipAll
	})
	if err != nil {
		return "", err
	}
	if found == "" {
		return "", apperrors.Errorf("no %s executable found in archive", name)
	}
	return found, nil
}
