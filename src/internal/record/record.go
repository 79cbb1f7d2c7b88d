// Package record flattens parsed MARCXML records into the simplified shape
// this tool emits: one fixed set of optional keys per record, with empty
// values pruned from the serialized output.
package record

import (
	"strings"

	"github.com/rs/zerolog"

	"undl/src/internal/marcxml"
)

// Projected is the flattened record. Every key is optional; omitempty (plus
// nil pointers for the grouped keys) keeps empty values out of the JSON.
type Projected struct {
	ID               string            `json:"id,omitempty"`
	Title            string            `json:"title,omitempty"`
	AltTitle         string            `json:"alt_title,omitempty"`
	Location         string            `json:"location,omitempty"`
	Symbol           string            `json:"symbol,omitempty"`
	PublicationDate  string            `json:"publication_date,omitempty"`
	Summary          string            `json:"summary,omitempty"`
	Authors          []string          `json:"authors,omitempty"`
	Description      string            `json:"description,omitempty"`
	Downloads        map[string]string `json:"downloads,omitempty"`
	Subjects         *Subjects         `json:"subjects,omitempty"`
	Agenda           string            `json:"agenda,omitempty"`
	Collections      *Collections      `json:"collections,omitempty"`
	RelatedDocuments []string          `json:"related_documents,omitempty"`
}

// Subjects buckets subject terms by the thesaurus named in subfield 2 of each
// 6xx field: the UNBIS thesaurus, UNBIS name authority, or anything else.
type Subjects struct {
	UNBIST []string `json:"unbist,omitempty"`
	UNBISN []string `json:"unbisn,omitempty"`
	Misc   []string `json:"misc,omitempty"`
}

func (s *Subjects) empty() bool {
	return len(s.UNBIST) == 0 && len(s.UNBISN) == 0 && len(s.Misc) == 0
}

// Collections groups the catalog's local collection facets: tag 989 carries
// the resource type, tag 981 the UN bodies.
type Collections struct {
	ResourceType []string `json:"resource_type,omitempty"`
	UNBodies     []string `json:"un_bodies,omitempty"`
}

func (c *Collections) empty() bool {
	return len(c.ResourceType) == 0 && len(c.UNBodies) == 0
}

// Projector flattens records. The zero value works; set Log to surface
// extraction misses at debug level.
type Projector struct {
	Log zerolog.Logger
}

// Extract returns the first value for tag (and subfield code, when given).
// Control fields (00x) yield their bare value; data fields yield the coded
// subfield or, with an empty code, the whole-field display text. Absent or
// malformed fields yield "" and a debug diagnostic, never an error.
func (p Projector) Extract(r *marcxml.Record, tag, code string) string {
	if strings.HasPrefix(tag, "00") {
		v := r.ControlValue(tag)
		if v == "" {
			p.miss(tag, code)
		}
		return v
	}
	fields := r.Fields(tag)
	if len(fields) == 0 {
		p.miss(tag, code)
		return ""
	}
	if code == "" {
		return fields[0].Format()
	}
	vals := fields[0].Subfield(code)
	if len(vals) == 0 {
		p.miss(tag, code)
		return ""
	}
	return vals[0]
}

// ExtractAll returns one value per matching field instance, in record order:
// the first subfield with the given code, or the whole-field display text
// when the code is empty. Instances without the subfield are skipped.
func (p Projector) ExtractAll(r *marcxml.Record, tag, code string) []string {
	var out []string
	for _, df := range r.Fields(tag) {
		if code == "" {
			if v := df.Format(); v != "" {
				out = append(out, v)
			}
			continue
		}
		if vals := df.Subfield(code); len(vals) > 0 {
			out = append(out, vals[0])
		}
	}
	if out == nil {
		p.miss(tag, code)
	}
	return out
}

func (p Projector) miss(tag, code string) {
	ev := p.Log.Debug().Str("tag", tag)
	if code != "" {
		ev = ev.Str("subfield", code)
	}
	ev.Msg("field not present on record")
}

// Project flattens one record per the fixed extraction table.
func (p Projector) Project(r *marcxml.Record) Projected {
	return Projected{
		ID:               p.Extract(r, "001", ""),
		Title:            p.Extract(r, "245", ""),
		AltTitle:         p.Extract(r, "239", ""),
		Location:         p.Extract(r, "260", "a"),
		Symbol:           p.symbol(r),
		PublicationDate:  p.Extract(r, "269", ""),
		Summary:          p.Extract(r, "520", ""),
		Authors:          p.ExtractAll(r, "710", "a"),
		Description:      p.Extract(r, "300", ""),
		Downloads:        p.downloads(r),
		Subjects:         p.subjects(r),
		Agenda:           p.Extract(r, "991", ""),
		Collections:      p.collections(r),
		RelatedDocuments: p.ExtractAll(r, "993", ""),
	}
}

// ProjectAll flattens every record of a collection.
func (p Projector) ProjectAll(c *marcxml.Collection) []Projected {
	out := make([]Projected, 0, len(c.Records))
	for i := range c.Records {
		out = append(out, p.Project(&c.Records[i]))
	}
	return out
}

// symbol reads the document symbol from 191$a, falling back to 791$a.
func (p Projector) symbol(r *marcxml.Record) string {
	if s := p.Extract(r, "191", "a"); s != "" {
		return s
	}
	return p.Extract(r, "791", "a")
}

// downloads maps language label ($y) to link ($u) for each 856 field. Labels
// and links are paired within the same field instance; an instance with
// mismatched counts truncates to the shorter side.
func (p Projector) downloads(r *marcxml.Record) map[string]string {
	var out map[string]string
	for _, df := range r.Fields("856") {
		links := df.Subfield("u")
		labels := df.Subfield("y")
		n := len(links)
		if len(labels) < n {
			n = len(labels)
		}
		for i := 0; i < n; i++ {
			if out == nil {
				out = map[string]string{}
			}
			out[labels[i]] = links[i]
		}
	}
	return out
}

// subjects buckets every 6xx field's $a terms by its $2 thesaurus code.
func (p Projector) subjects(r *marcxml.Record) *Subjects {
	s := &Subjects{}
	for _, df := range r.Subjects() {
		vocab := ""
		if v := df.Subfield("2"); len(v) > 0 {
			vocab = v[0]
		}
		terms := df.Subfield("a")
		switch vocab {
		case "unbist":
			s.UNBIST = append(s.UNBIST, terms...)
		case "unbisn":
			s.UNBISN = append(s.UNBISN, terms...)
		default:
			s.Misc = append(s.Misc, terms...)
		}
	}
	if s.empty() {
		return nil
	}
	return s
}

// collections takes the first value of each subfield code on the first 989
// and 981 field instances.
func (p Projector) collections(r *marcxml.Record) *Collections {
	c := &Collections{}
	if fields := r.Fields("989"); len(fields) > 0 {
		c.ResourceType = fields[0].FirstValues()
	}
	if fields := r.Fields("981"); len(fields) > 0 {
		c.UNBodies = fields[0].FirstValues()
	}
	if c.empty() {
		return nil
	}
	return c
}
