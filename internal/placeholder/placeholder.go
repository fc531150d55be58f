package placeholder

import (
	"io"
	"strings"

	"github.com/valyala/fasttemplate"
)

const (
	startTag = "["
	endTag   = "]"
)

// Token names recognized in templates.
const (
	EpisodeTitle = "episodeTitle"
	VlogTitle    = "vlogTitle"
	Twitter      = "twitter"
	Instagram    = "instagram"
	Snapchat     = "snapchat"
	SeasonID     = "seasonId"
	EpisodeID    = "episodeId"
	Date         = "date"
	DayOfWeek    = "dayOfWeek"
)

// Names lists every recognized token in a stable order.
func Names() []string {
	return []string{EpisodeTitle, VlogTitle, Twitter, Instagram, Snapchat, SeasonID, EpisodeID, Date, DayOfWeek}
}

// Set maps token names to replacement values. A token missing from the set
// is left untouched in the output.
type Set map[string]string

// Token returns the bracketed form of name, e.g. "[date]".
func Token(name string) string {
	return startTag + name + endTag
}

// Apply replaces every [name] whose name is in the set, in a single pass.
// Replacement values are never rescanned, and brackets that do not form a
// known token are copied through unchanged.
func (s Set) Apply(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	_, _ = s.write(&b, text)
	return b.String()
}

func (s Set) write(w io.Writer, text string) (int64, error) {
	return fasttemplate.ExecuteFunc(text, startTag, endTag, w, func(w io.Writer, tag string) (int, error) {
		if value, ok := s[tag]; ok {
			return io.WriteString(w, value)
		}
		// Not a token: emit the opening bracket and rescan the rest, so a
		// later "[" inside tag can still start a token ("[[date]").
		n, err := io.WriteString(w, startTag)
		if err != nil {
			return n, err
		}
		rest, err := s.write(w, tag+endTag)
		return n + int(rest), err
	})
}
