// Package model defines the materialized content records produced by a
// library scan.
package model

// Kind discriminates the record variants.
type Kind string

const (
	// KindVideo is a single video item.
	KindVideo Kind = "video"
	// KindSeries is a collection of videos (playlist).
	KindSeries Kind = "series"
	// KindBook is a book.
	KindBook Kind = "book"
)

// KnownKinds lists every kind in display order.
var KnownKinds = []Kind{KindVideo, KindSeries, KindBook}

// IsKnown reports whether k is one of the closed kind set.
func (k Kind) IsKnown() bool {
	switch k {
	case KindVideo, KindSeries, KindBook:
		return true
	}
	return false
}

// Record is a content entry materialized from one document during a scan.
// Records are created transiently and never mutated in place; a changed
// document is re-parsed into a new Record on the next scan.
type Record struct {
	// ID is a stable slugged identifier derived from the source path.
	ID string `json:"id"`
	// Path is the document's library-relative source path.
	Path string `json:"path"`
	// Kind discriminates the variant.
	Kind Kind `json:"kind"`

	Title string `json:"title"`
	// Presenter is the party name for videos and series.
	Presenter string `json:"presenter,omitempty"`
	// Author is the party name for books.
	Author string `json:"author,omitempty"`

	Status   string `json:"status"`
	Language string `json:"language,omitempty"`

	DateAdded      string `json:"date_added"`
	StartDate      string `json:"start_date,omitempty"`
	CompletionDate string `json:"completion_date,omitempty"`

	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`

	// Kind-specific fields.
	Duration   int    `json:"duration,omitempty"`    // video: seconds
	ItemCount  int    `json:"item_count,omitempty"`  // series
	Pages      int    `json:"pages,omitempty"`       // book
	ExternalID string `json:"external_id,omitempty"` // video/series source id
}

// Party returns the presenter or author, whichever the kind uses.
func (r *Record) Party() string {
	if r.Kind == KindBook {
		return r.Author
	}
	return r.Presenter
}

// Facets are the distinct values aggregated across all records of a scan,
// each sorted ascending for deterministic display.
type Facets struct {
	Parties    []string `json:"parties"`
	Categories []string `json:"categories"`
	Tags       []string `json:"tags"`
}
