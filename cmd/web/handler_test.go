package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/target-hunter/internal/game"
	"github.com/tomz197/target-hunter/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *storage.Memory) {
	t.Helper()
	store := storage.NewMemory()
	srv := httptest.NewServer(newHandler("play.example.com", store, log.New(io.Discard)))
	t.Cleanup(srv.Close)
	return srv, store
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestLandingPage(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, body := get(t, srv.URL+"/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d", resp.StatusCode)
	}
	if !strings.Contains(body, "ssh -t play.example.com") {
		t.Error("SSH host not substituted")
	}
	if strings.Contains(body, "{{.SSHHost}}") {
		t.Error("placeholder left in page")
	}
}

func TestGetRecord(t *testing.T) {
	srv, store := newTestServer(t)
	want := game.Record{Score: 350, TotalHits: 40, TotalMisses: 10, Level: 4, GameTime: 43}
	if err := store.Save(game.UserSaveKey("alice"), want); err != nil {
		t.Fatal(err)
	}

	resp, body := get(t, srv.URL+"/records/"+game.UserSaveKey("alice"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("got status %d", resp.StatusCode)
	}
	var got game.Record
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}

	resp, _ = get(t, srv.URL+"/records/nobody")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing record: got status %d, want 404", resp.StatusCode)
	}
}

func TestListRecords(t *testing.T) {
	srv, store := newTestServer(t)

	_, body := get(t, srv.URL+"/records")
	if strings.TrimSpace(body) != "[]" {
		t.Errorf("empty store: got %q", body)
	}

	_ = store.Save("b", game.Record{Level: 1})
	_ = store.Save("a", game.Record{Level: 1})

	_, body = get(t, srv.URL+"/records")
	var keys []string
	if err := json.Unmarshal([]byte(body), &keys); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	if len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("got keys %v, want [a b]", keys)
	}
}
