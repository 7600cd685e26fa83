package commands

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/hanoivibes/jobport/api"
	"github.com/hanoivibes/jobport/config"
	"github.com/hanoivibes/jobport/errors"
	"github.com/hanoivibes/jobport/session"
)

// newClient loads configuration, opens the session store, and builds the API
// client. The returned cleanup closes the store and must be deferred.
func newClient() (*api.Client, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to load config")
	}

	store, err := session.Open(cfg.Session.Path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open session store")
	}

	client, err := api.New(cfg, store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	return client, func() { store.Close() }, nil
}

// parseID parses a positional numeric identifier argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.Newf("invalid id %q", arg)
	}
	return id, nil
}

// readUpload loads a file into an in-memory upload part
func readUpload(path string) (api.Upload, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return api.Upload{}, errors.Wrapf(err, "failed to read %s", path)
	}
	return api.Upload{FileName: filepath.Base(path), Content: content}, nil
}

// promptPassword asks for a password without echoing it
func promptPassword(label string) (string, error) {
	return pterm.DefaultInteractiveTextInput.
		WithMask("*").
		Show(label)
}

// idRef renders a numeric identifier for list output
func idRef(id int64) string {
	return "#" + strconv.FormatInt(id, 10)
}

// orDash substitutes a placeholder for empty display values
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// formatCount renders a dashboard count
func formatCount(count int64) string {
	return strconv.FormatInt(count, 10)
}

// formatScore renders a 0..100 match score component
func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}

// salaryRange formats a nullable salary range for display
func salaryRange(min, max *int64) string {
	switch {
	case min != nil && max != nil:
		return strconv.FormatInt(*min, 10) + " - " + strconv.FormatInt(*max, 10)
	case min != nil:
		return "from " + strconv.FormatInt(*min, 10)
	case max != nil:
		return "up to " + strconv.FormatInt(*max, 10)
	default:
		return "negotiable"
	}
}
