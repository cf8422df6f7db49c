package codec

import (
	"bytes"
	"compress/flate"
	"io"

	"github.com/pkg/errors"
)

// Compress deflates data at the default compression level. This is the
// encoding every object-store blob and the commit graph blob is stored
// in on disk (§4.1, §4.8).
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.DefaultCompression)
	if err != nil {
		return nil, errors.Wrap(err, "codec: create deflate writer")
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, errors.Wrap(err, "codec: write deflate stream")
	}
	if err := w.Close(); err != nil {
		return nil, errors.Wrap(err, "codec: close deflate stream")
	}
	return buf.Bytes(), nil
}

// Decompress inflates a deflate-compressed buffer. The compressed form
// never records the original size, so the reader is drained with
// io.ReadAll, which grows its buffer until the stream is exhausted
// rather than requiring a known output length up front.
func Decompress(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer r.Close()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "codec: inflate deflate stream")
	}
	return out, nil
}
