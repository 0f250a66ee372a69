// Command shadow_compare replays read-only requests against both the legacy
// Next.js API and the Go service and reports response drift. Used during
// cutover; safe to run against production since it never sends mutations.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"
)

type target struct {
	Path     string
	Critical bool
}

// Mutating endpoints (booking, story submit) are deliberately absent.
var targets = []target{
	{Path: "/health", Critical: true},
	{Path: "/api/availability", Critical: true},
	{Path: "/api/episodes", Critical: true},
	{Path: "/api/places/autocomplete?input=lincoln", Critical: false},
	{Path: "/feed.xml", Critical: false},
}

// volatileKeys are stripped before comparison: they legitimately differ
// between the two stacks on every request.
var volatileKeys = map[string]bool{
	"created_at":         true,
	"invitees_remaining": true,
}

type comparison struct {
	Target         target
	LegacyStatus   int
	GoStatus       int
	StatusMatch    bool
	BodyMatch      bool
	Error          error
	DurationGo     time.Duration
	DurationLegacy time.Duration
}

func main() {
	var (
		goBase     string
		legacyBase string
		timeout    time.Duration
	)

	flag.StringVar(&goBase, "go-base", "http://localhost:8080", "Go API base URL")
	flag.StringVar(&legacyBase, "legacy-base", "http://localhost:3000", "Legacy site base URL")
	flag.DurationVar(&timeout, "timeout", 20*time.Second, "HTTP client timeout")
	flag.Parse()

	client := &http.Client{Timeout: timeout}
	var (
		comparisons []comparison
		breaking    int
		minorDiff   int
	)

	for _, t := range targets {
		comp := compareTarget(client, goBase, legacyBase, t)
		if comp.Error != nil || !comp.StatusMatch || !comp.BodyMatch {
			if t.Critical {
				breaking++
			} else {
				minorDiff++
			}
		}
		comparisons = append(comparisons, comp)
	}

	printReport(comparisons)

	fmt.Printf("Breaking diffs: %d, Minor diffs: %d\n", breaking, minorDiff)
	if breaking > 0 {
		os.Exit(1)
	}
}

func compareTarget(client *http.Client, goBase, legacyBase string, tgt target) comparison {
	comp := comparison{Target: tgt}

	goStatus, goBody, goDur, err := fetch(client, goBase, tgt.Path)
	if err != nil {
		comp.Error = fmt.Errorf("go request failed: %w", err)
		return comp
	}
	legacyStatus, legacyBody, legacyDur, err := fetch(client, legacyBase, tgt.Path)
	if err != nil {
		comp.Error = fmt.Errorf("legacy request failed: %w", err)
		return comp
	}

	comp.GoStatus = goStatus
	comp.LegacyStatus = legacyStatus
	comp.DurationGo = goDur
	comp.DurationLegacy = legacyDur
	comp.StatusMatch = goStatus == legacyStatus
	comp.BodyMatch = bodiesEqual(goBody, legacyBody)
	return comp
}

func fetch(client *http.Client, base, path string) (int, []byte, time.Duration, error) {
	url := strings.TrimRight(base, "/") + path
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, 0, err
	}
	return resp.StatusCode, body, time.Since(start), nil
}

// bodiesEqual compares bodies bytewise first, then as normalized JSON with
// volatile keys stripped. Non-JSON bodies (the feed proxy) only get the
// bytewise comparison.
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
	stripVolatile(&aj)
	stripVolatile(&bj)
	return reflect.DeepEqual(aj, bj)
}

func stripVolatile(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k := range val {
			if volatileKeys[k] {
				delete(val, k)
				continue
			}
			v2 := val[k]
			stripVolatile(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			stripVolatile(&v2)
			val[i] = v2
		}
	}
}

func printReport(comparisons []comparison) {
	for _, comp := range comparisons {
		label := "OK"
		switch {
		case comp.Error != nil:
			label = "ERROR"
		case !comp.StatusMatch:
			label = "STATUS DIFF"
		case !comp.BodyMatch:
			label = "BODY DIFF"
		}
		fmt.Printf("%-12s GET %-45s go=%d legacy=%d (go %s, legacy %s)\n",
			label, comp.Target.Path, comp.GoStatus, comp.LegacyStatus,
			comp.DurationGo.Round(time.Millisecond), comp.DurationLegacy.Round(time.Millisecond))
		if comp.Error != nil {
			log.Printf("  %v", comp.Error)
		}
	}
}
