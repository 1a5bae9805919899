package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/apiverify/reportgen/internal/sample"
)

func TestRunRender_EmbeddedSample(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.pdf")
	var stdout bytes.Buffer

	err := runRender(renderParams{output: out, stdout: &stdout})
	if err != nil {
		t.Fatalf("runRender: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("output file is not a PDF")
	}

	if got := stdout.String(); !strings.Contains(got, "Test API") {
		t.Errorf("summary missing title: %q", got)
	}
	if got := stdout.String(); !strings.Contains(got, "7 matched") {
		t.Errorf("summary missing counts: %q", got)
	}
}

func TestRunRender_HTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"api_name":"Remote API","total_fields_compared":2,"matched_fields":2}`))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "remote.pdf")
	var stdout bytes.Buffer
	err := runRender(renderParams{source: srv.URL, output: out, stdout: &stdout})
	if err != nil {
		t.Fatalf("runRender: %v", err)
	}
	if !strings.Contains(stdout.String(), "Remote API") {
		t.Errorf("summary used the wrong payload: %q", stdout.String())
	}
}

func TestRunRender_UnreachableSourceFallsBack(t *testing.T) {
	out := filepath.Join(t.TempDir(), "fallback.pdf")
	var stdout bytes.Buffer

	err := runRender(renderParams{
		source: "http://127.0.0.1:1/nope",
		output: out,
		stdout: &stdout,
	})
	if err != nil {
		t.Fatalf("runRender: %v", err)
	}
	if !strings.Contains(stdout.String(), "Test API") {
		t.Errorf("fallback did not use the embedded sample: %q", stdout.String())
	}
}

func TestRunRender_UnknownProfile(t *testing.T) {
	err := runRender(renderParams{
		output:  filepath.Join(t.TempDir(), "x.pdf"),
		profile: "diagonal",
	})
	if err == nil || !strings.Contains(err.Error(), "diagonal") {
		t.Errorf("err = %v, want unknown-profile error", err)
	}
}

func TestRunRender_MissingConfigFile(t *testing.T) {
	err := runRender(renderParams{
		configPath: filepath.Join(t.TempDir(), "absent.yaml"),
	})
	if err == nil {
		t.Error("runRender succeeded with a missing config file")
	}
}

func TestFetchOrSample_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	rep := fetchOrSample(srv.URL)
	if rep.APIName != "Test API" {
		t.Errorf("non-200 source did not fall back to sample: %q", rep.APIName)
	}
}

func TestFetchReport_Decodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sample.JSON))
	}))
	defer srv.Close()

	rep, err := fetchReport(srv.URL)
	if err != nil {
		t.Fatalf("fetchReport: %v", err)
	}
	if rep.TotalFieldsCompared != 10 {
		t.Errorf("TotalFieldsCompared = %d", rep.TotalFieldsCompared)
	}
}

func TestSchemaCmd_PrintsValidJSON(t *testing.T) {
	cmd := newSchemaCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("schema command: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(out.Bytes(), &doc); err != nil {
		t.Fatalf("schema output is not JSON: %v", err)
	}
	if doc["title"] != "API Validation Report" {
		t.Errorf("schema title = %v", doc["title"])
	}
}

func TestWriteSummary_NilWriter(t *testing.T) {
	rep, err := sample.Report()
	if err != nil {
		t.Fatal(err)
	}
	// Must not panic.
	writeSummary(nil, rep, "out.pdf", 1)
}
