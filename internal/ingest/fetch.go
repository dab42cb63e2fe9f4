package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/snelllabs/creativeboard/internal/utils"
)

// Published sheets sometimes refuse one export endpoint while serving
// another, so each fetch walks an ordered list of request shapes until one
// returns a plausible CSV payload.

const minPayloadBytes = 50

var nowMillis = func() int64 { return time.Now().UnixMilli() }

func candidateURLs(exportURL string) []string {
	ts := strconv.FormatInt(nowMillis(), 10)
	return []string{
		exportURL + "&timestamp=" + ts,
		strings.Replace(exportURL, "/export?format=csv", "/gviz/tq?tqx=out:csv", 1),
		exportURL + "&single=true&output=csv&timestamp=" + ts,
	}
}

// FetchCSV retrieves one project's sheet as CSV text, trying each candidate
// URL in turn with a bounded delay between attempts.
func FetchCSV(ctx context.Context, c HTTPClient, exportURL string) (string, error) {
	urls := candidateURLs(exportURL)
	var body string
	err := utils.NewBackoff(time.Second, len(urls)-1).Do(func(i int) error {
		var err error
		body, err = fetchOnce(ctx, c, urls[i])
		return err
	})
	if err != nil {
		return "", fmt.Errorf("all export URLs failed: %w", err)
	}
	return body, nil
}

func fetchOnce(ctx context.Context, c HTTPClient, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/csv,application/csv,text/plain")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := c.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("non-2xx: %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if len(strings.TrimSpace(string(b))) < minPayloadBytes {
		return "", fmt.Errorf("received empty or too short data (%d bytes)", len(b))
	}
	return string(b), nil
}
