package hibp

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func sha1Hex(password string) string {
	sum := sha1.Sum([]byte(password))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}

func TestClientBreached(t *testing.T) {
	hash := sha1Hex("password123")
	prefix, suffix := hash[:5], hash[5:]

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/range/"+prefix {
			t.Errorf("Request path should be /range/%s, was %s", prefix, r.URL.Path)
		}
		// A malformed record and one with a bad count must not abort the scan.
		fmt.Fprintf(w, "garbage-without-colon\n")
		fmt.Fprintf(w, "%s:not-a-number\n", strings.Repeat("0", 35))
		fmt.Fprintf(w, "%s:17\n", suffix)
		fmt.Fprintf(w, "%s:2\n", strings.Repeat("F", 35))
	}))
	t.Cleanup(server.Close)

	result := NewClientWithBaseURL(server.URL).Check(context.Background(), "password123")
	if !result.Breached() {
		t.Errorf("Password should be reported as breached")
	}
	if result.Count != 17 {
		t.Errorf("Breach count should be 17, was %d", result.Count)
	}
}

func TestClientClean(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s:42\n", strings.Repeat("A", 35))
		fmt.Fprintf(w, "%s: 3 \n", strings.Repeat("B", 35))
	}))
	t.Cleanup(server.Close)

	result := NewClientWithBaseURL(server.URL).Check(context.Background(), "s0me-unlisted-Pas$word")
	if result.Status != StatusClean {
		t.Errorf("Password should be reported as clean, was %v", result.Status)
	}
	if result.Count != 0 {
		t.Errorf("Clean result should carry count 0, was %d", result.Count)
	}
}

func TestClientOnlyPrefixLeavesProcess(t *testing.T) {
	hash := sha1Hex("hunter2")

	var requested string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = r.URL.String()
	}))
	t.Cleanup(server.Close)

	NewClientWithBaseURL(server.URL).Check(context.Background(), "hunter2")

	if want := "/range/" + hash[:5]; requested != want {
		t.Errorf("Request should be %s, was %s", want, requested)
	}
	if strings.Contains(requested, hash) {
		t.Errorf("Full hash should never appear in the request, was %s", requested)
	}
	if strings.Contains(requested, hash[5:]) {
		t.Errorf("Hash suffix should never appear in the request, was %s", requested)
	}
}

func TestClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	result := NewClientWithBaseURL(server.URL).Check(context.Background(), "anything")
	if !result.Failed() {
		t.Errorf("A non-2xx response should yield a failed check, was %v", result.Status)
	}
	if result.Err == nil {
		t.Errorf("A failed check should carry its cause")
	}
}

func TestClientUnreachableService(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	result := NewClientWithBaseURL(server.URL).Check(context.Background(), "anything")
	if !result.Failed() {
		t.Errorf("An unreachable service should yield a failed check, was %v", result.Status)
	}
}

func TestClientTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
	}))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	result := NewClientWithBaseURL(server.URL).Check(ctx, "anything")
	if !result.Failed() {
		t.Errorf("A timed out lookup should yield a failed check, was %v", result.Status)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("Check should honor the deadline, took %v", elapsed)
	}
}

func TestClientRangeCache(t *testing.T) {
	hash := sha1Hex("qwerty")

	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		fmt.Fprintf(w, "%s:1061\n", hash[5:])
	}))

	client := NewClientWithBaseURL(server.URL)
	if result := client.Check(context.Background(), "qwerty"); !result.Breached() {
		t.Errorf("Password should be reported as breached")
	}

	// The cache admits asynchronously; settle before taking the service away.
	client.cache.Wait()
	server.Close()

	result := client.Check(context.Background(), "qwerty")
	if !result.Breached() {
		t.Errorf("Second check should be served from the range cache")
	}
	if result.Count != 1061 {
		t.Errorf("Cached breach count should be 1061, was %d", result.Count)
	}
	if hits != 1 {
		t.Errorf("Service should have been hit once, was %d", hits)
	}
}

func TestCheckHash(t *testing.T) {
	hash := sha1Hex("letmein")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "%s:236597\n", hash[5:])
	}))
	t.Cleanup(server.Close)

	result := NewClientWithBaseURL(server.URL).CheckHash(context.Background(), hash)
	if !result.Breached() {
		t.Errorf("Hash should be reported as breached")
	}
	if result.Count != 236597 {
		t.Errorf("Breach count should be 236597, was %d", result.Count)
	}
}
