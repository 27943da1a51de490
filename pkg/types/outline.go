// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Level classifies a line of a document. The set is closed: Title, the four
// heading levels, and Body_Text for everything else.
type Level string

const (
	LevelTitle Level = "Title"
	LevelH1    Level = "H1"
	LevelH2    Level = "H2"
	LevelH3    Level = "H3"
	LevelH4    Level = "H4"
	LevelBody  Level = "Body_Text"
)

// HeadingLevels lists the heading levels from most to least prominent.
var HeadingLevels = []Level{LevelH1, LevelH2, LevelH3, LevelH4}

// ParseLevel returns the Level named by s and whether s is a known label.
func ParseLevel(s string) (Level, bool) {
	switch l := Level(s); l {
	case LevelTitle, LevelH1, LevelH2, LevelH3, LevelH4, LevelBody:
		return l, true
	}
	return "", false
}

// IsHeading reports whether l is one of H1..H4. Title is not a heading level.
func (l Level) IsHeading() bool {
	return l.Depth() > 0
}

// Depth returns 1 for H1 through 4 for H4, and 0 for Title and Body_Text.
func (l Level) Depth() int {
	switch l {
	case LevelH1:
		return 1
	case LevelH2:
		return 2
	case LevelH3:
		return 3
	case LevelH4:
		return 4
	}
	return 0
}

// LevelForDepth returns the heading level for a 1-based depth, clamping
// anything deeper than 4 to H4.
func LevelForDepth(depth int) Level {
	switch {
	case depth <= 1:
		return LevelH1
	case depth == 2:
		return LevelH2
	case depth == 3:
		return LevelH3
	default:
		return LevelH4
	}
}

// Heading is one entry of a document outline.
type Heading struct {
	Level Level  `json:"level" yaml:"level"`
	Text  string `json:"text" yaml:"text"`

	// Page is the 1-based source page.
	Page int `json:"page" yaml:"page"`
}

// NoTitle is the title recorded for documents without any title candidate.
const NoTitle = "No Title Found"

// Outline is the title and ordered heading list of one document.
type Outline struct {
	// SourceFile identifies the source document (its base name).
	SourceFile string `json:"source_file" yaml:"source_file"`

	Title string `json:"title" yaml:"title"`

	// Headings excludes the title and keeps document order.
	Headings []Heading `json:"outline" yaml:"outline"`

	// Sections pairs each heading with its resolved body text. Not part of
	// the outline artifact; ranking consumes it.
	Sections []Section `json:"-" yaml:"-"`
}

// HasHeadings reports whether the outline contributes ranking candidates.
func (o Outline) HasHeadings() bool { return len(o.Headings) > 0 }

// Section is a heading together with the literal text that follows it up
// to the next heading.
type Section struct {
	Document string `json:"document" yaml:"document"`
	Page     int    `json:"page_number" yaml:"page_number"`
	Title    string `json:"section_title" yaml:"section_title"`
	Level    Level  `json:"level" yaml:"level"`
	Body     string `json:"body,omitempty" yaml:"body,omitempty"`
}

// Text returns the section's scoring text: the title followed by the body.
func (s Section) Text() string {
	if s.Body == "" {
		return s.Title
	}
	return s.Title + "\n" + s.Body
}
