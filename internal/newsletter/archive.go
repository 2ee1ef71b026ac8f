package newsletter

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jimdaga/morning-press/internal/models"
)

const (
	filenamePrefix = "newsletter_"
	htmlSuffix     = ".html"
	jsonSuffix     = ".json"
	dateLayout     = "2006_01_02"
)

// ErrNoNewsletters is returned when the archive holds no editions.
var ErrNoNewsletters = errors.New("no newsletters found")

// Edition is one archived newsletter file.
type Edition struct {
	Filename    string
	Date        time.Time
	DisplayDate string
}

// Archive persists rendered newsletters as date-named files. The filename
// format is load-bearing: the viewer parses dates back out of it.
type Archive struct {
	dir string
}

func NewArchive(dir string) *Archive {
	return &Archive{dir: dir}
}

// Filename returns the archive filename for an edition dated t, e.g.
// newsletter_2025_06_11.html.
func Filename(t time.Time) string {
	return filenamePrefix + t.Format(dateLayout) + htmlSuffix
}

// ParseFilename extracts the edition date from an archive filename.
func ParseFilename(name string) (time.Time, error) {
	if !strings.HasPrefix(name, filenamePrefix) || !strings.HasSuffix(name, htmlSuffix) {
		return time.Time{}, fmt.Errorf("not a newsletter filename: %s", name)
	}
	datePart := strings.TrimSuffix(strings.TrimPrefix(name, filenamePrefix), htmlSuffix)
	t, err := time.Parse(dateLayout, datePart)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid newsletter filename %s: %w", name, err)
	}
	return t, nil
}

// Save writes the rendered HTML for an edition, creating the output
// directory if absent and silently overwriting a same-day file.
func (a *Archive) Save(n models.Newsletter, html string) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(a.dir, Filename(n.Date))
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", fmt.Errorf("saving newsletter: %w", err)
	}
	return path, nil
}

// SaveJSON writes a structured sidecar next to the HTML file.
func (a *Archive) SaveJSON(n models.Newsletter) (string, error) {
	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	data, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding newsletter: %w", err)
	}

	path := filepath.Join(a.dir, filenamePrefix+n.Date.Format(dateLayout)+jsonSuffix)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("saving newsletter json: %w", err)
	}
	return path, nil
}

// List returns the archived editions, newest first. Files that do not
// match the naming pattern are skipped.
func (a *Archive) List() ([]Edition, error) {
	entries, err := os.ReadDir(a.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	var editions []Edition
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		date, err := ParseFilename(entry.Name())
		if err != nil {
			continue
		}
		editions = append(editions, Edition{
			Filename:    entry.Name(),
			Date:        date,
			DisplayDate: date.Format("January 2, 2006"),
		})
	}

	sort.Slice(editions, func(i, j int) bool {
		return editions[i].Date.After(editions[j].Date)
	})
	return editions, nil
}

// Latest returns the most recent archived edition.
func (a *Archive) Latest() (Edition, error) {
	editions, err := a.List()
	if err != nil {
		return Edition{}, err
	}
	if len(editions) == 0 {
		return Edition{}, ErrNoNewsletters
	}
	return editions[0], nil
}

// Read returns the stored HTML and edition date for a named edition.
// Only filenames of the newsletter_*.html shape are served.
func (a *Archive) Read(filename string) ([]byte, time.Time, error) {
	filename = filepath.Base(filename)
	date, err := ParseFilename(filename)
	if err != nil {
		return nil, time.Time{}, err
	}
	content, err := os.ReadFile(filepath.Join(a.dir, filename))
	if err != nil {
		return nil, time.Time{}, err
	}
	return content, date, nil
}
