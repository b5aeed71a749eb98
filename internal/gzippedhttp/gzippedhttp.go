// Package gzippedhttp contains the middleware pair that handles
// gzip-compressed HTTP traffic: requests arriving with a gzip
// Content-Encoding are transparently decompressed, and responses are
// compressed when the client advertises gzip in Accept-Encoding.
package gzippedhttp

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"
)

var gzipWriterPool = sync.Pool{
	New: func() interface{} {
		w, _ := gzip.NewWriterLevel(nil, gzip.BestSpeed)
		return w
	},
}

type gzippedBody struct {
	original io.ReadCloser
	reader   *gzip.Reader
}

func newGzippedBody(requestBody io.ReadCloser) (*gzippedBody, error) {
	reader, err := gzip.NewReader(requestBody)
	if err != nil {
		return nil, err
	}

	return &gzippedBody{
		original: requestBody,
		reader:   reader,
	}, nil
}

func (b *gzippedBody) Read(p []byte) (int, error) {
	return b.reader.Read(p)
}

// Close closes both the gzip reader and the original request body.
func (b *gzippedBody) Close() error {
	if err := b.original.Close(); err != nil {
		return err
	}

	return b.reader.Close()
}

// gzippingResponseWriter compresses everything written through it, error
// bodies included. Content-Encoding is declared up front so the encoding
// always matches the bytes on the wire, whatever status the handler picks.
// Bodyless statuses (204, 304) drop the header and skip the gzip writer.
// The gzip writer comes from a shared pool and must be released via finish.
type gzippingResponseWriter struct {
	http.ResponseWriter
	gzipWriter *gzip.Writer
	bodyless   bool
}

func newGzippingResponseWriter(response http.ResponseWriter) *gzippingResponseWriter {
	gzipWriter := gzipWriterPool.Get().(*gzip.Writer)
	gzipWriter.Reset(response)
	response.Header().Set("Content-Encoding", "gzip")

	return &gzippingResponseWriter{
		ResponseWriter: response,
		gzipWriter:     gzipWriter,
	}
}

func (w *gzippingResponseWriter) WriteHeader(statusCode int) {
	if statusCode == http.StatusNoContent || statusCode == http.StatusNotModified {
		w.Header().Del("Content-Encoding")
		w.bodyless = true
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *gzippingResponseWriter) Write(p []byte) (int, error) {
	if w.bodyless {
		return w.ResponseWriter.Write(p)
	}

	return w.gzipWriter.Write(p)
}

func (w *gzippingResponseWriter) finish() error {
	defer gzipWriterPool.Put(w.gzipWriter)

	if w.bodyless {
		return nil
	}

	return w.gzipWriter.Close()
}

// GzipResponse compresses the response body when the client accepts gzip.
func GzipResponse(h http.Handler) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		if !strings.Contains(request.Header.Get("Accept-Encoding"), "gzip") {
			h.ServeHTTP(response, request)
			return
		}

		gzippingResponse := newGzippingResponseWriter(response)
		defer func() {
			_ = gzippingResponse.finish()
		}()

		h.ServeHTTP(gzippingResponse, request)
	})
}

// UngzipRequest replaces a gzip-encoded request body with a decompressing
// reader before passing the request down the chain.
func UngzipRequest(h http.Handler) http.Handler {
	return http.HandlerFunc(func(response http.ResponseWriter, request *http.Request) {
		if strings.Contains(request.Header.Get("Content-Encoding"), "gzip") {
			decompressedBody, err := newGzippedBody(request.Body)
			if err != nil {
				response.WriteHeader(http.StatusInternalServerError)
				return
			}
			request.Body = decompressedBody
			defer func() {
				_ = decompressedBody.Close()
			}()
		}

		h.ServeHTTP(response, request)
	})
}
