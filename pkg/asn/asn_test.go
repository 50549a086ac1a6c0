package asn

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/json/1.2.3.4" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("fields"); got != "as,asname" {
			t.Errorf("fields query = %q, want %q", got, "as,asname")
		}
		fmt.Fprint(w, `{"as":"AS13335 Cloudflare, Inc.","asname":"CLOUDFLARENET"}`)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	info, err := client.Lookup(context.Background(), "1.2.3.4")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if info.ASN != "AS13335 Cloudflare, Inc." {
		t.Errorf("ASN = %q", info.ASN)
	}
	if info.ASName != "CLOUDFLARENET" {
		t.Errorf("ASName = %q", info.ASName)
	}
}

func TestLookupNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	if _, err := client.Lookup(context.Background(), "1.2.3.4"); err == nil {
		t.Fatal("Lookup succeeded on 429 response, want error")
	}
}

func TestLookupBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer server.Close()

	client := NewClientWithBaseURL(server.URL)
	if _, err := client.Lookup(context.Background(), "1.2.3.4"); err == nil {
		t.Fatal("Lookup succeeded on malformed body, want error")
	}
}
