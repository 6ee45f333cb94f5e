package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flighttree/pkg/cache"
	"github.com/matzehuels/flighttree/pkg/dataset"
	"github.com/matzehuels/flighttree/pkg/errors"
	"github.com/matzehuels/flighttree/pkg/pipeline"
)

const scheduleCSV = "Kode,Maskapai\nGA305,Garuda\nGA010,Garuda\nGA100,Garuda\nGA201,Garuda\nGA039,Garuda\n"

func newTestServer(t *testing.T, opts Options) (*httptest.Server, *dataset.Store) {
	t.Helper()
	logger := log.New(io.Discard)
	store := dataset.NewStore(cache.NewMemoryCache(), nil, 0)
	runner := pipeline.NewRunner(logger, pipeline.DefaultLimits())
	ts := httptest.NewServer(New(store, runner, logger, opts).Handler())
	t.Cleanup(ts.Close)
	return ts, store
}

func upload(t *testing.T, ts *httptest.Server) dataset.Info {
	t.Helper()
	resp, err := http.Post(ts.URL+"/datasets?name=schedule.csv", "text/csv", strings.NewReader(scheduleCSV))
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload status = %d, want 201", resp.StatusCode)
	}
	var info dataset.Info
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	return info
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealthAndVersion(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	var health map[string]string
	if status := getJSON(t, ts.URL+"/healthz", &health); status != http.StatusOK || health["status"] != "ok" {
		t.Errorf("healthz = %d %v", status, health)
	}

	var version map[string]string
	if status := getJSON(t, ts.URL+"/version", &version); status != http.StatusOK || version["version"] == "" {
		t.Errorf("version = %d %v", status, version)
	}
}

func TestUploadListDelete(t *testing.T) {
	ts, _ := newTestServer(t, Options{})
	info := upload(t, ts)
	if info.Codes != 5 || info.Name != "schedule.csv" {
		t.Errorf("info = %+v", info)
	}

	var list []dataset.Info
	if status := getJSON(t, ts.URL+"/datasets", &list); status != http.StatusOK || len(list) != 1 || list[0].ID != info.ID {
		t.Fatalf("list = %d %+v", status, list)
	}

	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/datasets/"+info.ID, nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}

	var body errorBody
	if status := getJSON(t, ts.URL+"/datasets/"+info.ID+"/tree", &body); status != http.StatusNotFound || body.Code != "DATASET_NOT_FOUND" {
		t.Errorf("after delete = %d %+v", status, body)
	}
}

func TestUploadMultipart(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "Jadwal.csv")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = io.WriteString(fw, scheduleCSV)
	_ = mw.Close()

	resp, err := http.Post(ts.URL+"/datasets", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var info dataset.Info
	_ = json.NewDecoder(resp.Body).Decode(&info)
	if resp.StatusCode != http.StatusCreated || info.Name != "Jadwal.csv" || info.Codes != 5 {
		t.Errorf("multipart upload = %d %+v", resp.StatusCode, info)
	}
}

func TestUploadRejectsBadSchedules(t *testing.T) {
	ts, _ := newTestServer(t, Options{})

	tests := []struct {
		name string
		body string
		code string
	}{
		{"empty", "", "NO_INPUT"},
		{"no code column", "Flight,Asal\nGA100,Jakarta\n", "INVALID_DATASET"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/datasets", "text/csv", strings.NewReader(tt.body))
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			var body errorBody
			_ = json.NewDecoder(resp.Body).Decode(&body)
			if resp.StatusCode != http.StatusBadRequest || string(body.Code) != tt.code {
				t.Errorf("got %d %+v, want 400 %s", resp.StatusCode, body, tt.code)
			}
		})
	}
}

func TestUploadTooLarge(t *testing.T) {
	ts, _ := newTestServer(t, Options{MaxUploadBytes: 16})

	var form bytes.Buffer
	mw := multipart.NewWriter(&form)
	fw, err := mw.CreateFormFile("file", "Jadwal.csv")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = io.WriteString(fw, scheduleCSV)
	_ = mw.Close()

	tests := []struct {
		name        string
		contentType string
		body        io.Reader
	}{
		{"raw body", "text/csv", strings.NewReader(scheduleCSV)},
		{"multipart", mw.FormDataContentType(), &form},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/datasets", tt.contentType, tt.body)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			var body errorBody
			_ = json.NewDecoder(resp.Body).Decode(&body)
			if resp.StatusCode != http.StatusRequestEntityTooLarge || body.Code != errors.ErrCodeTooLarge {
				t.Errorf("got %d %+v, want 413 TOO_LARGE", resp.StatusCode, body)
			}
		})
	}
}

func TestTreeJSON(t *testing.T) {
	ts, _ := newTestServer(t, Options{})
	info := upload(t, ts)

	var got struct {
		Codes  []string `json:"codes"`
		Title  string   `json:"title"`
		Height int      `json:"height"`
		Scene  struct {
			Nodes []struct {
				ID string  `json:"id"`
				X  float64 `json:"x"`
				Y  float64 `json:"y"`
			} `json:"nodes"`
			Edges []json.RawMessage `json:"edges"`
		} `json:"scene"`
	}
	status := getJSON(t, ts.URL+"/datasets/"+info.ID+"/tree?count=5", &got)
	if status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got.Title != pipeline.TitleStructure || got.Height != 3 || len(got.Codes) != 5 {
		t.Errorf("result = %+v", got)
	}
	if len(got.Scene.Nodes) != 5 || len(got.Scene.Edges) != 4 {
		t.Errorf("scene has %d nodes / %d edges", len(got.Scene.Nodes), len(got.Scene.Edges))
	}
	for _, n := range got.Scene.Nodes {
		if n.ID == "GA100" && (n.X != 0 || n.Y != 0) {
			t.Errorf("root at (%v, %v), want origin", n.X, n.Y)
		}
	}
}

func TestSearch(t *testing.T) {
	ts, _ := newTestServer(t, Options{})
	info := upload(t, ts)
	base := ts.URL + "/datasets/" + info.ID + "/search?count=5&code="

	var hit pipeline.Result
	if status := getJSON(t, base+"GA010", &hit); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if !hit.Found || strings.Join(hit.Path, ",") != "GA100,GA039,GA010" {
		t.Errorf("hit = %+v", hit)
	}
	if hit.Title != "Search Path to 'GA010'" {
		t.Errorf("title = %q", hit.Title)
	}

	var miss pipeline.Result
	if status := getJSON(t, base+"GA999", &miss); status != http.StatusOK {
		t.Fatalf("miss status = %d, want 200", status)
	}
	if miss.Found || len(miss.Path) != 0 || miss.Message != "Code 'GA999' not found" {
		t.Errorf("miss = %+v", miss)
	}

	var body errorBody
	if status := getJSON(t, base+"%20%20", &body); status != http.StatusBadRequest || body.Code != "EMPTY_QUERY" {
		t.Errorf("blank query = %d %+v", status, body)
	}
}

func TestRenderFormats(t *testing.T) {
	ts, _ := newTestServer(t, Options{})
	info := upload(t, ts)

	tests := []struct {
		format      string
		contentType string
		contains    string
	}{
		{"svg", "image/svg+xml", "<svg"},
		{"dot", "text/vnd.graphviz; charset=utf-8", "digraph G {"},
		{"txt", "text/plain; charset=utf-8", "└─R GA305"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			resp, err := http.Get(ts.URL + "/datasets/" + info.ID + "/inorder?count=5&format=" + tt.format)
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d: %s", resp.StatusCode, body)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body missing %q:\n%s", tt.contains, body)
			}
			if p := resp.Header.Get(HeaderPath); p != "GA010,GA039,GA100,GA201,GA305" {
				t.Errorf("%s = %q", HeaderPath, p)
			}
		})
	}
}

func TestRenderRejectsBadParameters(t *testing.T) {
	ts, _ := newTestServer(t, Options{})
	info := upload(t, ts)
	base := ts.URL + "/datasets/" + info.ID + "/tree?"

	tests := []struct {
		query string
		code  string
	}{
		{"count=abc", "INVALID_COUNT"},
		{"count=2", "INVALID_COUNT"},
		{"count=51", "INVALID_COUNT"},
		{"count=0", "INVALID_COUNT"},
		{"count=-3", "INVALID_COUNT"},
		{"format=gif", "INVALID_FORMAT"},
		{"spread=-1", "INVALID_INPUT"},
		{"spread=0", "INVALID_INPUT"},
		{"spread=Inf", "INVALID_INPUT"},
		{"spread=-Inf", "INVALID_INPUT"},
		{"spread=NaN", "INVALID_INPUT"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var body errorBody
			status := getJSON(t, base+tt.query, &body)
			if status != http.StatusBadRequest || string(body.Code) != tt.code {
				t.Errorf("got %d %+v, want 400 %s", status, body, tt.code)
			}
		})
	}

	var body errorBody
	if status := getJSON(t, ts.URL+"/datasets/not-a-uuid/tree", &body); status != http.StatusBadRequest {
		t.Errorf("bad id = %d %+v", status, body)
	}
}

func TestCodes(t *testing.T) {
	ts, _ := newTestServer(t, Options{})
	info := upload(t, ts)

	var got struct {
		Total int      `json:"total"`
		Codes []string `json:"codes"`
	}
	if status := getJSON(t, ts.URL+"/datasets/"+info.ID+"/codes", &got); status != http.StatusOK {
		t.Fatalf("status = %d", status)
	}
	if got.Total != 5 || strings.Join(got.Codes, ",") != "GA010,GA039,GA100,GA201,GA305" {
		t.Errorf("codes = %+v", got)
	}

	for _, count := range []string{"0", "-1", "x"} {
		var body errorBody
		status := getJSON(t, ts.URL+"/datasets/"+info.ID+"/codes?count="+count, &body)
		if status != http.StatusBadRequest || body.Code != errors.ErrCodeInvalidCount {
			t.Errorf("count=%s: got %d %+v, want 400 INVALID_COUNT", count, status, body)
		}
	}
}

func TestSample(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.csv")
	if err := os.WriteFile(path, []byte(scheduleCSV), 0o644); err != nil {
		t.Fatal(err)
	}

	ts, _ := newTestServer(t, Options{SamplePath: path})
	resp, err := http.Get(ts.URL + "/sample")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != scheduleCSV {
		t.Errorf("sample = %d %q", resp.StatusCode, body)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	missing, _ := newTestServer(t, Options{SamplePath: filepath.Join(dir, "absent.csv")})
	var eb errorBody
	if status := getJSON(t, missing.URL+"/sample", &eb); status != http.StatusNotFound || !eb.Warning {
		t.Errorf("missing sample = %d %+v", status, eb)
	}
}

func TestUnknownRoute(t *testing.T) {
	ts, _ := newTestServer(t, Options{})
	var body errorBody
	if status := getJSON(t, ts.URL+"/nope", &body); status != http.StatusNotFound || body.Code != "NOT_FOUND" {
		t.Errorf("got %d %+v", status, body)
	}
}

func TestListenAndServeStopsOnCancel(t *testing.T) {
	logger := log.New(io.Discard)
	store := dataset.NewStore(cache.NewMemoryCache(), nil, 0)
	srv := New(store, pipeline.NewRunner(logger, pipeline.DefaultLimits()), logger, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	if err := <-done; err != nil {
		t.Errorf("ListenAndServe() = %v, want nil", err)
	}
}
