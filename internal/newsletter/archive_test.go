package newsletter

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jimdaga/morning-press/internal/models"
)

func TestFilenameRoundTrip(t *testing.T) {
	date := time.Date(2025, 6, 11, 9, 30, 0, 0, time.UTC)
	name := Filename(date)

	if name != "newsletter_2025_06_11.html" {
		t.Errorf("Filename = %q", name)
	}

	parsed, err := ParseFilename(name)
	if err != nil {
		t.Fatalf("ParseFilename: %v", err)
	}
	if parsed.Year() != 2025 || parsed.Month() != time.June || parsed.Day() != 11 {
		t.Errorf("parsed date = %v", parsed)
	}
}

func TestParseFilenameRejectsJunk(t *testing.T) {
	for _, name := range []string{
		"digest_2025_06_11.html",
		"newsletter_2025_06_11.txt",
		"newsletter_not_a_date.html",
		"../../etc/passwd",
		"",
	} {
		if _, err := ParseFilename(name); err == nil {
			t.Errorf("ParseFilename(%q) accepted junk", name)
		}
	}
}

func TestSaveAndRead(t *testing.T) {
	a := NewArchive(t.TempDir())
	n := models.Newsletter{Date: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}

	path, err := a.Save(n, "<html>edition</html>")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if filepath.Base(path) != "newsletter_2025_03_01.html" {
		t.Errorf("saved path = %q", path)
	}

	content, date, err := a.Read("newsletter_2025_03_01.html")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(content) != "<html>edition</html>" {
		t.Errorf("content = %q", content)
	}
	if date.Day() != 1 || date.Month() != time.March {
		t.Errorf("date = %v", date)
	}
}

func TestSaveOverwritesSameDate(t *testing.T) {
	a := NewArchive(t.TempDir())
	n := models.Newsletter{Date: time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)}

	if _, err := a.Save(n, "first"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := a.Save(n, "second"); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	content, _, err := a.Read("newsletter_2025_03_01.html")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(content) != "second" {
		t.Errorf("content = %q, want silent overwrite", content)
	}
}

func TestListNewestFirst(t *testing.T) {
	dir := t.TempDir()
	a := NewArchive(dir)

	dates := []time.Time{
		time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC),
	}
	for _, d := range dates {
		if _, err := a.Save(models.Newsletter{Date: d}, "x"); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	// Non-matching files are ignored.
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	editions, err := a.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(editions) != 3 {
		t.Fatalf("List returned %d editions, want 3", len(editions))
	}
	if editions[0].Filename != "newsletter_2025_02_10.html" {
		t.Errorf("newest first violated: %q", editions[0].Filename)
	}
	if editions[2].Filename != "newsletter_2025_01_05.html" {
		t.Errorf("oldest last violated: %q", editions[2].Filename)
	}
	if editions[0].DisplayDate != "February 10, 2025" {
		t.Errorf("display date = %q", editions[0].DisplayDate)
	}
}

func TestListMissingDirectory(t *testing.T) {
	a := NewArchive(filepath.Join(t.TempDir(), "never-created"))
	editions, err := a.List()
	if err != nil {
		t.Fatalf("List on missing dir: %v", err)
	}
	if editions != nil {
		t.Errorf("expected no editions, got %d", len(editions))
	}
}

func TestLatest(t *testing.T) {
	a := NewArchive(t.TempDir())

	if _, err := a.Latest(); !errors.Is(err, ErrNoNewsletters) {
		t.Errorf("Latest on empty archive: %v, want ErrNoNewsletters", err)
	}

	for _, d := range []time.Time{
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 8, 0, 0, 0, 0, time.UTC),
	} {
		if _, err := a.Save(models.Newsletter{Date: d}, "x"); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	latest, err := a.Latest()
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest.Filename != "newsletter_2025_04_08.html" {
		t.Errorf("latest = %q", latest.Filename)
	}
}

func TestSaveJSON(t *testing.T) {
	a := NewArchive(t.TempDir())
	n := models.Newsletter{
		Date:     time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		Subject:  "Subject",
		Articles: sampleArticles(2),
	}

	path, err := a.SaveJSON(n)
	if err != nil {
		t.Fatalf("SaveJSON: %v", err)
	}
	if filepath.Base(path) != "newsletter_2025_05_02.json" {
		t.Errorf("json path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading json: %v", err)
	}
	if len(data) == 0 {
		t.Error("json file empty")
	}
}
