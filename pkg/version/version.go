package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Preenchidos via -ldflags "-X github.com/diillson/roreports-go/pkg/version.Version=..." no build de release.
var (
	Version   = "0.0.0-dev"
	Commit    = ""
	BuildTime = ""
)

// ReleasesURL is the GitHub endpoint for the latest published release.
const ReleasesURL = "https://api.github.com/repos/diillson/roreports-go/releases/latest"

// FormatVersion devolve a versão com commit e data de build quando disponíveis.
func FormatVersion() string {
	ver := Version
	if ver == "" {
		ver = "0.0.0-dev"
	}
	switch {
	case Commit == "":
		return ver + " (development)"
	case BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", ver, Commit)
	default:
		return fmt.Sprintf("%s (commit: %s, built at: %s)", ver, Commit, BuildTime)
	}
}

// Release is the outcome of an update check.
type Release struct {
	Current string
	Latest  string
	Newer   bool
}

// Checker consulta o endpoint de releases.
type Checker struct {
	url    string
	client *http.Client
}

// NewChecker creates a checker for url. A nil client gets a 3s timeout.
func NewChecker(url string, client *http.Client) *Checker {
	if client == nil {
		client = &http.Client{Timeout: 3 * time.Second}
	}
	return &Checker{url: url, client: client}
}

// Check compares current against the latest release. Dev builds are never checked.
func (c *Checker) Check(ctx context.Context, current string) (Release, error) {
	rel := Release{Current: current}
	if strings.HasSuffix(current, "-dev") {
		return rel, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return rel, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return rel, fmt.Errorf("error checking latest release: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return rel, fmt.Errorf("error checking latest release: unexpected status %s", resp.Status)
	}

	var payload struct {
		TagName string `json:"tag_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return rel, fmt.Errorf("error decoding release payload: %w", err)
	}

	rel.Latest = strings.TrimPrefix(payload.TagName, "v")
	rel.Newer = newer(rel.Latest, strings.TrimPrefix(current, "v"))
	return rel, nil
}

// newer compares dotted numeric versions; non-numeric parts fall back to string order.
func newer(latest, current string) bool {
	l := strings.Split(latest, ".")
	c := strings.Split(current, ".")
	for i := 0; i < len(l) || i < len(c); i++ {
		var a, b string
		if i < len(l) {
			a = l[i]
		}
		if i < len(c) {
			b = c[i]
		}
		if a == b {
			continue
		}
		an, errA := strconv.Atoi(a)
		bn, errB := strconv.Atoi(b)
		if errA == nil && errB == nil {
			return an > bn
		}
		if a == "" || b == "" {
			return b == ""
		}
		return a > b
	}
	return false
}
