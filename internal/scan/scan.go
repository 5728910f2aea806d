// Package scan walks a library tree and materializes typed records from
// document metadata.
package scan

import (
	"fmt"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/WallySa7/the-library-sub001/internal/config"
	"github.com/WallySa7/the-library-sub001/internal/dates"
	"github.com/WallySa7/the-library-sub001/internal/library"
	"github.com/WallySa7/the-library-sub001/internal/metadata"
	"github.com/WallySa7/the-library-sub001/internal/model"
	"github.com/WallySa7/the-library-sub001/internal/slugs"
)

// ItemMessage reports a per-document problem during a scan.
type ItemMessage struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result aggregates everything a scan produced. Per-document failures are
// isolated into Skipped and Failed; they never abort the batch.
type Result struct {
	Records []model.Record `json:"records"`
	Facets  model.Facets   `json:"facets"`
	Scanned int            `json:"scanned"`
	Skipped []ItemMessage  `json:"skipped,omitempty"`
	Failed  []ItemMessage  `json:"failed,omitempty"`
}

// Scanner reads documents through a Storage and classifies them into
// records according to the library settings.
type Scanner struct {
	Store    library.Storage
	Settings *config.Settings
}

// Scan walks every text document under root (any nesting depth) and
// returns the records plus the distinct-value facet sets. A missing root
// yields empty results: an uninitialized library is a valid state.
func (s *Scanner) Scan(root string) (*Result, error) {
	result := &Result{}
	facets := newFacetAccumulator()

	s.walk(root, result, facets)

	result.Facets = facets.sorted()
	return result, nil
}

func (s *Scanner) walk(dir string, result *Result, facets *facetAccumulator) {
	entries, err := s.Store.List(dir)
	if err != nil {
		// An unreadable directory is isolated like any other bad item;
		// the rest of the tree still gets scanned.
		result.Failed = append(result.Failed, ItemMessage{Path: dir, Message: fmt.Sprintf("list failed: %v", err)})
		return
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name, ".") {
			continue
		}
		child := entry.Name
		if dir != "" {
			child = dir + "/" + entry.Name
		}

		if entry.IsDir {
			s.walk(child, result, facets)
			continue
		}
		if !isDocument(entry.Name) {
			continue
		}

		result.Scanned++
		record, skip, err := s.readDocument(child, entry)
		if err != nil {
			result.Failed = append(result.Failed, ItemMessage{Path: child, Message: err.Error()})
			continue
		}
		if skip != "" {
			result.Skipped = append(result.Skipped, ItemMessage{Path: child, Message: skip})
			continue
		}

		result.Records = append(result.Records, *record)
		facets.add(record)
	}
}

// readDocument parses one document into a record. A non-empty skip reason
// means the document is not a library item; an error means it could not be
// read at all.
func (s *Scanner) readDocument(relPath string, entry library.Entry) (*model.Record, string, error) {
	content, err := s.Store.Read(relPath)
	if err != nil {
		return nil, "", fmt.Errorf("read failed: %v", err)
	}

	block, body, ok := metadata.Decode(content)
	if !ok {
		return nil, "no metadata block", nil
	}

	fields := block.Fields()
	keys := s.Settings.Keys

	kind := model.Kind(stringField(fields, keys.Kind))
	if !kind.IsKnown() {
		return nil, fmt.Sprintf("unknown kind %q", stringField(fields, keys.Kind)), nil
	}

	record := &model.Record{
		ID:       slugs.RecordID(relPath),
		Path:     relPath,
		Kind:     kind,
		Title:    stringField(fields, keys.Title),
		Language: stringField(fields, keys.Language),

		StartDate:      stringField(fields, keys.StartDate),
		CompletionDate: stringField(fields, keys.CompletionDate),

		Categories: normalizeListField(fields[keys.Categories]),
		Tags:       normalizeListField(fields[keys.Tags]),
	}

	if record.Title == "" {
		record.Title = firstHeading(body)
	}
	if record.Title == "" {
		record.Title = strings.TrimSuffix(path.Base(relPath), path.Ext(relPath))
	}

	if kind == model.KindBook {
		record.Author = stringField(fields, keys.Author)
	} else {
		record.Presenter = stringField(fields, keys.Presenter)
	}

	record.Status = stringField(fields, keys.Status)
	if record.Status == "" {
		if ks := s.Settings.Kind(string(kind)); ks != nil {
			record.Status = ks.DefaultStatus
		}
	}

	record.DateAdded = stringField(fields, keys.DateAdded)
	if record.DateAdded == "" && !entry.ModTime.IsZero() {
		record.DateAdded = dates.Format(entry.ModTime)
	}

	switch kind {
	case model.KindVideo:
		record.Duration = durationField(fields[keys.Duration])
		record.ExternalID = stringField(fields, keys.ExternalID)
	case model.KindSeries:
		record.ItemCount = intField(fields[keys.ItemCount])
		record.ExternalID = stringField(fields, keys.ExternalID)
	case model.KindBook:
		record.Pages = intField(fields[keys.Pages])
	}

	return record, "", nil
}

func isDocument(name string) bool {
	return strings.HasSuffix(name, ".md") || strings.HasSuffix(name, ".txt")
}

func stringField(fields map[string]metadata.Value, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	if s, isStr := v.AsString(); isStr {
		return s
	}
	return v.Text()
}

// normalizeListField canonicalizes a category/tag field that may appear as
// a list, a comma-separated scalar, or be absent, into an ordered list
// with duplicates removed.
func normalizeListField(v metadata.Value) []string {
	var raw []string
	if items, ok := v.AsList(); ok {
		for _, item := range items {
			raw = append(raw, item.Text())
		}
	} else if s, ok := v.AsString(); ok {
		raw = strings.Split(s, ",")
	}

	var out []string
	seen := make(map[string]bool)
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" || seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}

// durationField accepts a number of seconds or a "HH:MM:SS"/"MM:SS" string.
func durationField(v metadata.Value) int {
	if n, ok := v.AsNumber(); ok {
		return int(n)
	}
	s, ok := v.AsString()
	if !ok || s == "" {
		return 0
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return 0
	}
	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return 0
		}
		total = total*60 + n
	}
	return total
}

func intField(v metadata.Value) int {
	if n, ok := v.AsNumber(); ok {
		return int(n)
	}
	if s, ok := v.AsString(); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 0
}

type facetAccumulator struct {
	parties    map[string]bool
	categories map[string]bool
	tags       map[string]bool
}

func newFacetAccumulator() *facetAccumulator {
	return &facetAccumulator{
		parties:    make(map[string]bool),
		categories: make(map[string]bool),
		tags:       make(map[string]bool),
	}
}

func (f *facetAccumulator) add(r *model.Record) {
	if party := r.Party(); party != "" {
		f.parties[party] = true
	}
	for _, c := range r.Categories {
		f.categories[c] = true
	}
	for _, t := range r.Tags {
		f.tags[t] = true
	}
}

// sorted returns the facet sets sorted ascending for deterministic display.
func (f *facetAccumulator) sorted() model.Facets {
	return model.Facets{
		Parties:    sortedKeys(f.parties),
		Categories: sortedKeys(f.categories),
		Tags:       sortedKeys(f.tags),
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
