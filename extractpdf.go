package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"

	"balvis/extract"
	"balvis/httputil"
)

// maxUploadBytes caps PDF uploads at 10 MB.
const maxUploadBytes = 10 << 20

func (a *App) handleExtractPDF(w http.ResponseWriter, r *http.Request) {
	httputil.MaxBody(r, maxUploadBytes+(1<<20))

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httputil.WriteError(w, 400, "invalid multipart upload")
		return
	}
	file, hdr, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, 400, "file is required")
		return
	}
	defer file.Close()

	// Stage the upload in a temp file; it is removed before the response is
	// written so the success path never leaves files behind.
	tmp, err := os.CreateTemp("", "balvis-upload-*.pdf")
	if err != nil {
		httputil.WriteError(w, 500, "failed to process upload")
		return
	}
	tmpPath := tmp.Name()
	if _, err := io.Copy(tmp, io.LimitReader(file, maxUploadBytes)); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		httputil.WriteError(w, 500, "failed to process upload")
		return
	}
	tmp.Close()

	data, err := os.ReadFile(tmpPath)
	os.Remove(tmpPath)
	if err != nil {
		httputil.WriteError(w, 500, "failed to process upload")
		return
	}

	text, err := extract.Text(hdr.Filename, data)
	if err != nil {
		if errors.Is(err, extract.ErrUnsupported) {
			httputil.WriteError(w, 400, "only PDF and plain text files are supported")
			return
		}
		log.Printf("text extraction failed for %s: %v", hdr.Filename, err)
		httputil.WriteError(w, 500, "failed to extract text")
		return
	}

	httputil.WriteJSON(w, 200, map[string]string{"text": text})
}
