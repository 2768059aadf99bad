package network

import (
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); ua != "hql/1.0" {
			t.Errorf("User-Agent = %q", ua)
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte("<p>hi</p>"))
	}))
	defer srv.Close()

	c, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if string(resp.Body) != "<p>hi</p>" {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.ContentType != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", resp.ContentType)
	}
}

func TestGetGzip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte("<p>compressed</p>"))
		gz.Close()
	}))
	defer srv.Close()

	c, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	resp, err := c.Get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(resp.Body) != "<p>compressed</p>" {
		t.Errorf("body = %q", resp.Body)
	}
}

func TestFetchDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<body><div id="x">hello</div></body>`))
	}))
	defer srv.Close()

	c, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	doc, err := c.FetchDocument(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("FetchDocument: %v", err)
	}
	if doc.Root() == nil {
		t.Fatal("nil document root")
	}
}

func TestFetchDocumentRejectsNonHTML(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.FetchDocument(context.Background(), srv.URL); err == nil {
		t.Fatal("expected content-type error")
	}
}

func TestFetchDocumentRejectsErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c, err := NewClient()
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.FetchDocument(context.Background(), srv.URL); err == nil {
		t.Fatal("expected status error")
	}
}

func TestParseContentType(t *testing.T) {
	cases := []struct {
		in        string
		mediaType string
		charset   string
	}{
		{"", "application/octet-stream", ""},
		{"text/html", "text/html", ""},
		{"text/html; charset=UTF-8", "text/html", "utf-8"},
		{`text/html; charset="iso-8859-1"`, "text/html", "iso-8859-1"},
	}
	for _, tc := range cases {
		mt, cs := ParseContentType(tc.in)
		if mt != tc.mediaType || cs != tc.charset {
			t.Errorf("ParseContentType(%q) = (%q, %q), want (%q, %q)", tc.in, mt, cs, tc.mediaType, tc.charset)
		}
	}
}

func TestIsHTMLContentType(t *testing.T) {
	if !IsHTMLContentType("text/html; charset=utf-8") {
		t.Error("text/html not recognized")
	}
	if !IsHTMLContentType("application/xhtml+xml") {
		t.Error("xhtml not recognized")
	}
	if IsHTMLContentType("application/json") {
		t.Error("json recognized as HTML")
	}
}
