// Command smoke probes a running instance of the API and verifies that each
// endpoint answers with the expected status and shape. Useful after a deploy
// or a config change; exits non-zero when any check fails.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

type check struct {
	name       string
	method     string
	path       string
	wantStatus int
	wantCode   string // expected "code" field for error responses
}

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "base URL of the running service")
	timeout := flag.Duration("timeout", 5*time.Second, "per-request timeout")
	year := flag.Int("year", 2021, "a year known to be in the dataset")
	flag.Parse()

	checks := []check{
		{name: "index", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "docs", method: http.MethodGet, path: "/api/docs", wantStatus: http.StatusOK},
		{name: "lookup", method: http.MethodGet, path: fmt.Sprintf("/api/wimbledon?year=%d", *year), wantStatus: http.StatusOK},
		{name: "lookup-simple", method: http.MethodGet, path: fmt.Sprintf("/wimbledon?year=%d", *year), wantStatus: http.StatusOK},
		{name: "years", method: http.MethodGet, path: "/api/wimbledon/years", wantStatus: http.StatusOK},
		{name: "stats", method: http.MethodGet, path: "/api/wimbledon/stats", wantStatus: http.StatusOK},
		{name: "cache-stats", method: http.MethodGet, path: "/api/cache/stats", wantStatus: http.StatusOK},
		{name: "missing-year", method: http.MethodGet, path: "/api/wimbledon", wantStatus: http.StatusBadRequest, wantCode: "MISSING_YEAR_PARAMETER"},
		{name: "bad-year", method: http.MethodGet, path: "/api/wimbledon?year=abc", wantStatus: http.StatusBadRequest, wantCode: "INVALID_YEAR_FORMAT"},
		{name: "future-year", method: http.MethodGet, path: "/api/wimbledon?year=9999", wantStatus: http.StatusBadRequest, wantCode: "YEAR_IN_FUTURE"},
		{name: "unknown-route", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND"},
		{name: "cache-clear", method: http.MethodPost, path: "/api/cache/clear", wantStatus: http.StatusOK},
	}

	client := &http.Client{Timeout: *timeout}
	failed := 0
	for _, c := range checks {
		if err := run(client, *baseURL, c); err != nil {
			fmt.Fprintf(os.Stderr, "FAIL %-14s %v\n", c.name, err)
			failed++
			continue
		}
		fmt.Printf("ok   %s\n", c.name)
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d checks failed\n", failed, len(checks))
		os.Exit(1)
	}
	fmt.Printf("all %d checks passed\n", len(checks))
}

func run(client *http.Client, baseURL string, c check) error {
	req, err := http.NewRequest(c.method, baseURL+c.path, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if err != nil {
		return err
	}

	if resp.StatusCode != c.wantStatus {
		return fmt.Errorf("status %d, want %d", resp.StatusCode, c.wantStatus)
	}
	if c.wantCode != "" {
		var envelope struct {
			Code string `json:"code"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return fmt.Errorf("unparseable error body: %w", err)
		}
		if envelope.Code != c.wantCode {
			return fmt.Errorf("code %q, want %q", envelope.Code, c.wantCode)
		}
	}
	return nil
}
