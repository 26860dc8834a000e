package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sphaso/treap/pkg/store"
	"github.com/sphaso/treap/pkg/treap"
	"github.com/sphaso/treap/pkg/treapio"
)

// newTestServer starts the API against an in-memory store.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := New(Config{
		Store:  store.NewMemoryStore(),
		Logger: log.NewWithOptions(io.Discard, log.Options{}),
	})
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(func() {
		ts.Close()
		srv.Close()
	})
	return ts
}

// createTree posts a key-list tree and fails the test on anything but 201.
func createTree(t *testing.T, ts *httptest.Server, name string, keys []string, seed uint64) treeSummary {
	t.Helper()

	body, _ := json.Marshal(createTreeRequest{Name: name, Keys: keys, Seed: seed})
	resp, err := http.Post(ts.URL+"/v1/trees", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /v1/trees failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		t.Fatalf("POST /v1/trees status = %d, want 201; body: %s", resp.StatusCode, raw)
	}

	var sum treeSummary
	if err := json.NewDecoder(resp.Body).Decode(&sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	return sum
}

// apiError decodes the error envelope from a response body.
func apiError(t *testing.T, resp *http.Response) errorResponse {
	t.Helper()
	var er errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return er
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if body["version"] == "" {
		t.Error("health response should report the build version")
	}
}

func TestCreateAndGetTree(t *testing.T) {
	ts := newTestServer(t)

	sum := createTree(t, ts, "animals", []string{"m", "f", "t"}, 7)
	if sum.Name != "animals" {
		t.Errorf("summary name = %q, want animals", sum.Name)
	}
	if sum.Nodes != 3 {
		t.Errorf("summary nodes = %d, want 3", sum.Nodes)
	}
	if sum.ID == "" {
		t.Error("summary should carry a record ID")
	}

	resp, err := http.Get(ts.URL + "/v1/trees/animals")
	if err != nil {
		t.Fatalf("GET tree failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET tree status = %d, want 200", resp.StatusCode)
	}

	doc, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	tr, err := treapio.Unmarshal(doc)
	if err != nil {
		t.Fatalf("returned document should parse: %v", err)
	}
	if tr.Len() != 3 {
		t.Errorf("returned tree has %d nodes, want 3", tr.Len())
	}
}

func TestCreateTreeFromDocument(t *testing.T) {
	ts := newTestServer(t)

	src := treap.New[string, string](treap.WithSeed(11))
	for _, k := range []string{"d", "b", "f", "a"} {
		src.Insert(k, k)
	}
	doc, err := treapio.Marshal(src)
	if err != nil {
		t.Fatal(err)
	}

	body, _ := json.Marshal(createTreeRequest{Name: "imported", Document: doc})
	resp, err := http.Post(ts.URL+"/v1/trees", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	// The stored tree must reproduce the document's exact shape.
	artResp, err := http.Get(ts.URL + "/v1/trees/imported/art")
	if err != nil {
		t.Fatal(err)
	}
	defer artResp.Body.Close()

	got, _ := io.ReadAll(artResp.Body)
	want := src.Art(nil) + "\n"
	if string(got) != want {
		t.Errorf("art mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestCreateTreeInvalidName(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(createTreeRequest{Name: "../evil", Keys: []string{"a"}})
	resp, err := http.Post(ts.URL+"/v1/trees", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if er := apiError(t, resp); er.Error.Code != "INVALID_NAME" {
		t.Errorf("error code = %q, want INVALID_NAME", er.Error.Code)
	}
}

func TestCreateTreeWithoutKeys(t *testing.T) {
	ts := newTestServer(t)

	body, _ := json.Marshal(createTreeRequest{Name: "empty"})
	resp, err := http.Post(ts.URL+"/v1/trees", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetTreeNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/trees/missing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
	if er := apiError(t, resp); er.Error.Code != "TREE_NOT_FOUND" {
		t.Errorf("error code = %q, want TREE_NOT_FOUND", er.Error.Code)
	}
}

func TestListTrees(t *testing.T) {
	ts := newTestServer(t)

	createTree(t, ts, "beech", []string{"b"}, 1)
	createTree(t, ts, "aspen", []string{"a"}, 1)

	resp, err := http.Get(ts.URL + "/v1/trees")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var list listTreesResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatal(err)
	}
	if len(list.Trees) != 2 {
		t.Fatalf("listed %d trees, want 2", len(list.Trees))
	}
	if list.Trees[0].Name != "aspen" || list.Trees[1].Name != "beech" {
		t.Errorf("trees not sorted by name: %q, %q", list.Trees[0].Name, list.Trees[1].Name)
	}
}

func TestDeleteTree(t *testing.T) {
	ts := newTestServer(t)
	createTree(t, ts, "gone", []string{"g"}, 1)

	del := func() int {
		req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/trees/gone", nil)
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	if status := del(); status != http.StatusNoContent {
		t.Errorf("first delete status = %d, want 204", status)
	}

	resp, err := http.Get(ts.URL + "/v1/trees/gone")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}

	// Deleting a missing tree is idempotent.
	if status := del(); status != http.StatusNoContent {
		t.Errorf("second delete status = %d, want 204", status)
	}
}

func TestGetArtStyles(t *testing.T) {
	ts := newTestServer(t)
	createTree(t, ts, "styled", []string{"m", "f", "t"}, 7)

	resp, err := http.Get(ts.URL + "/v1/trees/styled/art?style=verbose")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q, want text/plain", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "(k: ") {
		t.Errorf("verbose art should use verbose labels, got:\n%s", body)
	}
}

func TestGetArtInvalidStyle(t *testing.T) {
	ts := newTestServer(t)
	createTree(t, ts, "styled", []string{"m"}, 7)

	resp, err := http.Get(ts.URL + "/v1/trees/styled/art?style=fancy")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if er := apiError(t, resp); er.Error.Code != "INVALID_STYLE" {
		t.Errorf("error code = %q, want INVALID_STYLE", er.Error.Code)
	}
}

func TestGetDOT(t *testing.T) {
	ts := newTestServer(t)
	createTree(t, ts, "graphed", []string{"m", "f", "t"}, 7)

	resp, err := http.Get(ts.URL + "/v1/trees/graphed/dot")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	dot := string(body)
	if !strings.HasPrefix(dot, "digraph treap {") {
		t.Errorf("dot output should start with digraph header, got: %.40s", dot)
	}
	for _, key := range []string{"m", "f", "t"} {
		if !strings.Contains(dot, key+",") {
			t.Errorf("dot output missing label for key %q", key)
		}
	}
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("response should carry a generated X-Request-ID")
	}

	req, _ := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	req.Header.Set("X-Request-ID", "caller-id-1")
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "caller-id-1" {
		t.Errorf("X-Request-ID = %q, want caller-id-1 echoed back", got)
	}
}

func TestCreateTreeReplaceKeepsID(t *testing.T) {
	ts := newTestServer(t)

	first := createTree(t, ts, "stable", []string{"a"}, 1)
	second := createTree(t, ts, "stable", []string{"a", "b"}, 1)

	if first.ID != second.ID {
		t.Errorf("replacing a tree should keep its ID: %s vs %s", first.ID, second.ID)
	}
	if second.Nodes != 2 {
		t.Errorf("replacement nodes = %d, want 2", second.Nodes)
	}
}
