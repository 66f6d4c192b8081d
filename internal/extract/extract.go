package extract

import (
	"strings"

	"github.com/siddharthkul/voyager-gha/pkg/models"
)

const fence = "```"

// languageTags are the info-string tags the extractor recognizes, with or
// without a trailing ":path" portion.
var languageTags = []string{"typescript", "javascript", "ts", "tsx", "js", "jsx"}

// sourceExtensions mark a line as path-like when it ends with one of them.
var sourceExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".css", ".scss", ".json", ".md", ".html"}

// Extractor turns a model's markdown reply into candidate file changes. It is
// a best-effort classifier over unreliable output, not a markdown parser:
// blocks it cannot place are dropped, never reported as errors.
type Extractor struct {
	sourceRoot string
}

// New creates an extractor. sourceRoot is the conventional source prefix a
// bare line may start with to count as a path (e.g. "src/").
func New(sourceRoot string) *Extractor {
	return &Extractor{sourceRoot: sourceRoot}
}

// Extract scans markdown for fenced code blocks and emits one FileChange per
// block whose target path can be determined. Order follows block order in the
// document.
func (e *Extractor) Extract(markdown string) []models.FileChange {
	parts := strings.Split(markdown, fence)

	// Fences come in open/close pairs, so the interiors are the odd-index
	// parts and the even-index parts are surrounding prose.
	var changes []models.FileChange
	for i := 1; i < len(parts); i += 2 {
		if change, ok := e.extractBlock(parts[i]); ok {
			changes = append(changes, change)
		}
	}
	return changes
}

// extractBlock resolves a single fence interior into a FileChange. The path
// is taken from the info string when it carries one ("typescript:src/App.tsx"),
// otherwise from the first path-looking content line.
func (e *Extractor) extractBlock(block string) (models.FileChange, bool) {
	lines := strings.Split(block, "\n")
	if len(lines) < 2 {
		// No room for both a path indicator and content.
		return models.FileChange{}, false
	}

	if path, ok := pathFromInfoString(lines[0]); ok {
		content := trimBlankLines(strings.Join(lines[1:], "\n"))
		if content == "" {
			return models.FileChange{}, false
		}
		return models.FileChange{Path: path, Content: content}, true
	}

	return e.extractFromBody(lines)
}

// extractFromBody handles blocks whose info string is a bare language tag or
// absent: the first non-empty line that looks like a path becomes the target,
// every other non-empty, non-tag line becomes content.
func (e *Extractor) extractFromBody(lines []string) (models.FileChange, bool) {
	var path string
	var contentLines []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if path == "" && e.looksLikePath(trimmed) {
			path = trimmed
			continue
		}
		if isLanguageTag(trimmed) {
			continue
		}
		contentLines = append(contentLines, line)
	}

	if path == "" {
		return models.FileChange{}, false
	}
	content := trimBlankLines(strings.Join(contentLines, "\n"))
	if content == "" {
		return models.FileChange{}, false
	}
	return models.FileChange{Path: path, Content: content}, true
}

// trimBlankLines strips leading and trailing whitespace-only lines while
// preserving indentation on the lines that remain.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// pathFromInfoString returns the path portion of a "lang:path" info string.
// A bare language tag carries no path and falls through to the body scan.
func pathFromInfoString(info string) (string, bool) {
	info = strings.TrimSpace(info)
	for _, tag := range languageTags {
		if info == tag {
			return "", false
		}
		if rest, ok := strings.CutPrefix(info, tag+":"); ok {
			path := strings.TrimSpace(rest)
			if path != "" {
				return path, true
			}
		}
	}
	return "", false
}

// looksLikePath is the path heuristic for content lines: a path separator, a
// recognized source extension, or the conventional source-root prefix. It can
// misfire on lines that merely contain a slash; downstream validation is the
// backstop.
func (e *Extractor) looksLikePath(line string) bool {
	if isLanguageTag(line) {
		return false
	}
	if strings.Contains(line, "/") {
		return true
	}
	for _, ext := range sourceExtensions {
		if strings.HasSuffix(line, ext) {
			return true
		}
	}
	return e.sourceRoot != "" && strings.HasPrefix(line, e.sourceRoot)
}

// isLanguageTag matches bare recognized tags, with or without the dangling
// colon of an info string whose path portion is missing.
func isLanguageTag(line string) bool {
	for _, tag := range languageTags {
		if line == tag || line == tag+":" {
			return true
		}
	}
	return false
}
