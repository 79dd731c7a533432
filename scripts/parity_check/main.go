// Command parity_check replays read-only API calls against the legacy
// Node.js attendance service and this one, reporting response drift. Run it
// against seeded databases during the migration cutover.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"
)

type endpoint struct {
	Path     string
	Critical bool
}

var endpoints = []endpoint{
	{Path: "/api/v1/employees", Critical: true},
	{Path: "/api/v1/attendance", Critical: true},
	{Path: "/api/v1/attendance?page=1&pageSize=10", Critical: true},
	{Path: "/api/v1/reports/monthly?year=2026&month=1", Critical: true},
	{Path: "/api/v1/reports/holidays?year=2026&month=1", Critical: false},
	{Path: "/api/v1/dashboard", Critical: false},
}

type result struct {
	Endpoint       endpoint
	NewStatus      int
	LegacyStatus   int
	StatusMatch    bool
	BodyMatch      bool
	Err            error
	DurationNew    time.Duration
	DurationLegacy time.Duration
}

func main() {
	var (
		newBase    string
		legacyBase string
		timeout    time.Duration
	)

	flag.StringVar(&newBase, "new-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy API base URL")
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}

	var breaking, drift int
	fmt.Println("Attendance API Parity Report")
	fmt.Println("============================")
	for _, ep := range endpoints {
		res := compare(client, newBase, legacyBase, ep)
		status := "OK"
		switch {
		case res.Err != nil:
			status = "ERROR"
			if ep.Critical {
				breaking++
			}
		case !res.StatusMatch || !res.BodyMatch:
			status = "DIFF"
			if ep.Critical {
				breaking++
			} else {
				drift++
			}
		}
		fmt.Printf("[%s] GET %s\n", status, ep.Path)
		if res.Err != nil {
			fmt.Printf("  error: %v\n", res.Err)
			continue
		}
		fmt.Printf("  new: %d (%s) | legacy: %d (%s) | status match: %t | body match: %t\n",
			res.NewStatus, res.DurationNew, res.LegacyStatus, res.DurationLegacy, res.StatusMatch, res.BodyMatch)
	}

	fmt.Printf("Breaking diffs: %d, non-critical drift: %d\n", breaking, drift)
	if breaking > 0 {
		os.Exit(1)
	}
}

func compare(client *http.Client, newBase, legacyBase string, ep endpoint) result {
	res := result{Endpoint: ep}

	newBody, newStatus, newDur, err := fetch(client, newBase, ep.Path)
	if err != nil {
		res.Err = fmt.Errorf("new api: %w", err)
		return res
	}
	legacyBody, legacyStatus, legacyDur, err := fetch(client, legacyBase, ep.Path)
	if err != nil {
		res.Err = fmt.Errorf("legacy api: %w", err)
		return res
	}

	res.NewStatus = newStatus
	res.LegacyStatus = legacyStatus
	res.DurationNew = newDur
	res.DurationLegacy = legacyDur
	res.StatusMatch = newStatus == legacyStatus
	res.BodyMatch = bodiesEqual(newBody, legacyBody)
	return res
}

func fetch(client *http.Client, base, path string) ([]byte, int, time.Duration, error) {
	url := strings.TrimRight(base, "/") + path
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, 0, err
	}
	return body, resp.StatusCode, time.Since(start), nil
}

// bodiesEqual compares payloads structurally, dropping the meta block
// because timing fields differ every run.
func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj)
}

func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		delete(val, "meta")
		for k, v2 := range val {
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}
