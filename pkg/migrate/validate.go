package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	upMarker   = "-- +goose Up"
	downMarker = "-- +goose Down"
)

var (
	sqlFileRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

	// The same files run on postgres and sqlite3, so postgres-only syntax is
	// rejected up front.
	nonPortableSQL = map[string]*regexp.Regexp{
		"SERIAL column":          regexp.MustCompile(`(?i)\b(big|small)?serial\b`),
		"JSONB column":           regexp.MustCompile(`(?i)\bjsonb\b`),
		"TIMESTAMPTZ column":     regexp.MustCompile(`(?i)\btimestamptz\b`),
		"gen_random_uuid()":      regexp.MustCompile(`(?i)\bgen_random_uuid\s*\(`),
		"postgres :: cast":       regexp.MustCompile(`::\s*[a-z]`),
		"CREATE EXTENSION":       regexp.MustCompile(`(?i)\bcreate\s+extension\b`),
		"ALTER TABLE ... ALTER":  regexp.MustCompile(`(?i)\balter\s+table\s+\S+\s+alter\b`),
		"DROP of catalog tables": regexp.MustCompile(`(?i)\bdrop\s+table\s+(if\s+exists\s+)?(products|categories|brands)\b`),
	}
)

// ValidateDir checks every migration in dir: the file name and version, the
// goose markers and their order, and that the statements run on both
// postgres and sqlite3 without touching the external catalog tables.
func ValidateDir(dir string) error {
	if dir == "" {
		return fmt.Errorf("dir is required")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read dir %q: %w", dir, err)
	}

	versions := map[string]string{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		name := e.Name()

		m := sqlFileRe.FindStringSubmatch(name)
		if m == nil {
			return fmt.Errorf("invalid migration filename %q (expected YYYYMMDDHHMMSS_name.sql)", name)
		}
		if prev, ok := versions[m[1]]; ok {
			return fmt.Errorf("duplicate migration version %s in %q and %q", m[1], prev, name)
		}
		versions[m[1]] = name

		body, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return fmt.Errorf("read file %q: %w", name, err)
		}
		if err := checkMigration(string(body)); err != nil {
			return fmt.Errorf("migration %q: %w", name, err)
		}
	}

	if len(versions) == 0 {
		return fmt.Errorf("no migrations found in %q", dir)
	}
	return nil
}

func checkMigration(body string) error {
	up := strings.Index(body, upMarker)
	if up < 0 {
		return fmt.Errorf("missing %q", upMarker)
	}
	down := strings.Index(body, downMarker)
	if down < 0 {
		return fmt.Errorf("missing %q", downMarker)
	}
	if down < up {
		return fmt.Errorf("%q must come before %q", upMarker, downMarker)
	}
	if !hasStatement(body[up+len(upMarker) : down]) {
		return fmt.Errorf("up section has no statements")
	}

	code := stripComments(body)
	for label, re := range nonPortableSQL {
		if re.MatchString(code) {
			return fmt.Errorf("uses %s, which does not run on both postgres and sqlite3", label)
		}
	}
	return nil
}

func hasStatement(section string) bool {
	return strings.TrimSpace(stripComments(section)) != ""
}

func stripComments(sql string) string {
	var b strings.Builder
	for _, line := range strings.Split(sql, "\n") {
		if i := strings.Index(line, "--"); i >= 0 {
			line = line[:i]
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}
