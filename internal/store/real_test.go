package store

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTTPClientGet(t *testing.T) {
	var gotMethod, gotContentType, gotAccept string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Date", "Fri, 12 Jan 2024 20:51:40 GMT")
		w.WriteHeader(200)
		w.Write([]byte(`{"db_name":"hvac"}`))
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL)
	resp, err := c.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotMethod != "GET" {
		t.Errorf("method: got %q", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type: got %q", gotContentType)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept: got %q", gotAccept)
	}
	if resp.Status != 200 {
		t.Errorf("status: got %d", resp.Status)
	}
	if resp.Date != "Fri, 12 Jan 2024 20:51:40 GMT" {
		t.Errorf("date: got %q", resp.Date)
	}
	if string(resp.Body) != `{"db_name":"hvac"}` {
		t.Errorf("body: got %q", resp.Body)
	}
}

func TestHTTPClientPost(t *testing.T) {
	var gotBody map[string]interface{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("method: got %q", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(201)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL)
	resp, err := c.Post(context.Background(), []byte(`{"_id":"2024-Jan-12T20:51:40","heat":true}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != 201 {
		t.Errorf("status: got %d", resp.Status)
	}
	if gotBody["_id"] != "2024-Jan-12T20:51:40" {
		t.Errorf("posted _id: got %v", gotBody["_id"])
	}
}

func TestHTTPClientNoDateHeader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Suppress the automatic Date header.
		w.Header()["Date"] = nil
		w.WriteHeader(200)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL)
	resp, err := c.Get(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Date != "" {
		t.Errorf("date: got %q, want empty", resp.Date)
	}
}

func TestHTTPClientTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := ts.URL
	ts.Close() // nothing listening anymore

	c := NewHTTPClient(url)
	_, err := c.Get(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Op != "get" {
		t.Errorf("op: got %q", te.Op)
	}

	_, err = c.Post(context.Background(), []byte("{}"))
	if !errors.As(err, &te) {
		t.Fatalf("expected TransportError, got %v", err)
	}
	if te.Op != "post" {
		t.Errorf("op: got %q", te.Op)
	}
}

func TestFakeClientScript(t *testing.T) {
	f := NewFakeClient(
		Response{Status: 200, Date: "Fri, 12 Jan 2024 20:51:40 GMT"},
		Response{Status: 201},
		Response{Status: 500, Body: []byte("boom")},
	)

	resp, err := f.Get(context.Background())
	if err != nil || resp.Status != 200 {
		t.Fatalf("get: %v %+v", err, resp)
	}
	if f.GetCalls != 1 {
		t.Errorf("get calls: got %d", f.GetCalls)
	}

	resp, _ = f.Post(context.Background(), []byte("a"))
	if resp.Status != 201 {
		t.Errorf("first post: got %d", resp.Status)
	}
	resp, _ = f.Post(context.Background(), []byte("b"))
	if resp.Status != 500 {
		t.Errorf("second post: got %d", resp.Status)
	}
	// Last response repeats.
	resp, _ = f.Post(context.Background(), []byte("c"))
	if resp.Status != 500 {
		t.Errorf("third post: got %d", resp.Status)
	}

	if len(f.PostBodies) != 3 || string(f.PostBodies[0]) != "a" {
		t.Errorf("recorded bodies: %q", f.PostBodies)
	}
}
