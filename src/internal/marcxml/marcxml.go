// Package marcxml models MARC21/slim XML records: a collection of records,
// each holding control fields (tag -> value) and data fields (tag -> repeated
// groups of coded subfields). Field access mirrors the repeatable semantics of
// MARC: the same tag may occur on any number of field instances.
package marcxml

import (
	"encoding/xml"
	"io"
	"strings"
)

// Collection is the top-level MARCXML element.
type Collection struct {
	XMLName xml.Name `xml:"collection"`
	Records []Record `xml:"record"`
}

// Record is a single bibliographic record.
type Record struct {
	Leader        string         `xml:"leader"`
	ControlFields []ControlField `xml:"controlfield"`
	DataFields    []DataField    `xml:"datafield"`
}

// ControlField is a 00x field carrying a bare value.
type ControlField struct {
	Tag   string `xml:"tag,attr"`
	Value string `xml:",chardata"`
}

// DataField is a tagged field holding an ordered list of coded subfields.
type DataField struct {
	Tag       string     `xml:"tag,attr"`
	Ind1      string     `xml:"ind1,attr"`
	Ind2      string     `xml:"ind2,attr"`
	SubFields []SubField `xml:"subfield"`
}

// SubField is a single code/value pair within a data field.
type SubField struct {
	Code  string `xml:"code,attr"`
	Value string `xml:",chardata"`
}

// ParseCollection decodes a MARCXML collection document. The decoder matches
// elements by local name, so the MARC21/slim default namespace needs no
// stripping.
func ParseCollection(r io.Reader) (*Collection, error) {
	var c Collection
	if err := xml.NewDecoder(r).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// ControlValue returns the trimmed value of the first control field with the
// given tag, or "" when the record has none.
func (r *Record) ControlValue(tag string) string {
	for _, cf := range r.ControlFields {
		if cf.Tag == tag {
			return strings.TrimSpace(cf.Value)
		}
	}
	return ""
}

// Fields returns every data field instance with the given tag, in record
// order.
func (r *Record) Fields(tag string) []DataField {
	var out []DataField
	for _, df := range r.DataFields {
		if df.Tag == tag {
			out = append(out, df)
		}
	}
	return out
}

// Subjects returns the record's subject access fields (the 6xx block), in
// record order.
func (r *Record) Subjects() []DataField {
	var out []DataField
	for _, df := range r.DataFields {
		if strings.HasPrefix(df.Tag, "6") {
			out = append(out, df)
		}
	}
	return out
}

// Subfield returns the values of every subfield with the given code, in field
// order.
func (d DataField) Subfield(code string) []string {
	var out []string
	for _, sf := range d.SubFields {
		if sf.Code == code {
			out = append(out, sf.Value)
		}
	}
	return out
}

// Format renders the whole field as display text: all subfield values joined
// by single spaces.
func (d DataField) Format() string {
	parts := make([]string, 0, len(d.SubFields))
	for _, sf := range d.SubFields {
		if v := strings.TrimSpace(sf.Value); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// FirstValues returns the first value of each subfield code present on the
// field, in order of each code's first appearance.
func (d DataField) FirstValues() []string {
	seen := map[string]bool{}
	var out []string
	for _, sf := range d.SubFields {
		if seen[sf.Code] {
			continue
		}
		seen[sf.Code] = true
		out = append(out, sf.Value)
	}
	return out
}
