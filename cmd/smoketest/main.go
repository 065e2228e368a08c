// Command smoketest exercises a running server end to end: it provisions an
// anonymous session, saves a profile, fetches the weekly plan and walks one
// day of progress. Intended to run against a deployed instance.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"os"
	"strings"
	"time"

	"github.com/tkoskela/fitplan/internal/logging"
	"github.com/tkoskela/fitplan/internal/testhelpers"
)

const requestTimeout = 10 * time.Second

type client struct {
	http    *http.Client
	baseURL string
}

func newClient(baseURL string) (*client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &client{
		http:    &http.Client{Jar: jar, Timeout: requestTimeout},
		baseURL: baseURL,
	}, nil
}

// do sends a request with an optional JSON body and decodes the JSON
// response into out when out is non-nil.
func (c *client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s %s: status %d: %s", method, path, resp.StatusCode, payload)
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func testHealthy(ctx context.Context, c *client) error {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/healthy", nil, &resp); err != nil {
		return err
	}
	if resp.Status != "ok" {
		return fmt.Errorf("unexpected health status %q", resp.Status)
	}
	return nil
}

func testProfileAndPlan(ctx context.Context, c *client) error {
	profile := map[string]any{
		"gender":           "male",
		"age_bracket":      "30-39",
		"height_cm":        180,
		"weight_kg":        82,
		"target_weight_kg": 78,
		"activity_level":   "moderate",
		"goal":             "weight_loss",
	}
	if err := c.do(ctx, http.MethodPut, "/profile", profile, nil); err != nil {
		return err
	}

	var week struct {
		Plans []struct {
			Date string `json:"date"`
		} `json:"plans"`
	}
	if err := c.do(ctx, http.MethodGet, "/plans/week", nil, &week); err != nil {
		return err
	}
	if len(week.Plans) != 7 {
		return fmt.Errorf("expected 7 daily plans, got %d", len(week.Plans))
	}
	return nil
}

func testProgress(ctx context.Context, c *client) error {
	date := time.Now().UTC().Format(time.DateOnly)

	var initialized struct {
		Progress struct {
			Exercises []struct {
				ExerciseID string `json:"exercise_id"`
			} `json:"exercises"`
		} `json:"progress"`
	}
	path := "/progress/" + date
	if err := c.do(ctx, http.MethodPost, path+"/initialize", nil, &initialized); err != nil {
		return err
	}

	if len(initialized.Progress.Exercises) > 0 {
		exerciseID := initialized.Progress.Exercises[0].ExerciseID
		if err := c.do(ctx, http.MethodPost, path+"/exercises/"+exerciseID+"/start", nil, nil); err != nil {
			return err
		}
		completion := map[string]int{"sets_done": 3, "reps_done": 10}
		if err := c.do(ctx, http.MethodPost, path+"/exercises/"+exerciseID+"/complete", completion, nil); err != nil {
			return err
		}
	}

	return c.do(ctx, http.MethodGet, "/stats/weekly", nil, nil)
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	var (
		hostname = os.Args[1]
		start    = time.Now()
	)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", hostname))
	url := "https://" + hostname
	if strings.HasPrefix(hostname, "localhost") {
		url = "http://" + hostname
	}

	c, err := newClient(url)
	if err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failed to create client", slog.Any("error", err))
		os.Exit(1)
	}

	tests := []struct {
		name string
		run  func(context.Context, *client) error
	}{
		{"healthy", testHealthy},
		{"profile and plan", testProfileAndPlan},
		{"progress", testProgress},
	}
	for _, test := range tests {
		if err = test.run(ctx, c); err != nil {
			logger.LogAttrs(ctx, slog.LevelError, "smoke test failed",
				slog.String("test", test.name), slog.Any("error", err))
			os.Exit(1)
		}
		logger.LogAttrs(ctx, slog.LevelInfo, "smoke test passed", slog.String("test", test.name))
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "smoke tests completed",
		slog.Duration("elapsed", time.Since(start)))
}
