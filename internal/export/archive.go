package export

import (
	"archive/zip"
	"bytes"
	"io"
	"time"
)

// IndexFile is the single file inside an export archive
const IndexFile = "index.html"

// Archive is a packaged static site
type Archive struct {
	Filename    string
	TemplateKey string
	Data        []byte
}

// Build renders the document and packages it as a zip archive holding only index.html
func Build(opts Options) (*Archive, error) {
	html, err := Document(opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:     IndexFile,
		Method:   zip.Deflate,
		Modified: now(),
	})
	if err != nil {
		return nil, &ExportError{Message: "failed to add index.html", Cause: err}
	}
	if _, err := io.WriteString(w, html); err != nil {
		return nil, &ExportError{Message: "failed to write index.html", Cause: err}
	}
	if err := zw.Close(); err != nil {
		return nil, &ExportError{Message: "failed to finalize archive", Cause: err}
	}

	return &Archive{
		Filename:    Filename(opts.Title, opts.TemplateKey),
		TemplateKey: opts.TemplateKey,
		Data:        buf.Bytes(),
	}, nil
}

// WriteTo writes the archive bytes to w
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(a.Data)
	return int64(n), err
}

// now is replaced in tests
var now = time.Now
