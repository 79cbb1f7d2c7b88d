package marcxml

import (
	"reflect"
	"strings"
	"testing"
)

const sampleXML = `<?xml version="1.0" encoding="UTF-8"?>
<collection xmlns="http://www.loc.gov/MARC21/slim">
  <record>
    <controlfield tag="001">515307</controlfield>
    <datafield tag="245" ind1="1" ind2="0">
      <subfield code="a">Women in peacekeeping :</subfield>
      <subfield code="b">a report</subfield>
    </datafield>
    <datafield tag="650" ind1=" " ind2="7">
      <subfield code="a">PEACEKEEPING OPERATIONS</subfield>
      <subfield code="2">unbist</subfield>
    </datafield>
    <datafield tag="651" ind1=" " ind2="7">
      <subfield code="a">AFRICA</subfield>
      <subfield code="2">unbisn</subfield>
    </datafield>
    <datafield tag="710" ind1="2" ind2=" ">
      <subfield code="a">UN. Security Council</subfield>
    </datafield>
    <datafield tag="710" ind1="2" ind2=" ">
      <subfield code="a">UN. Secretariat</subfield>
    </datafield>
    <datafield tag="989" ind1=" " ind2=" ">
      <subfield code="a">Report</subfield>
      <subfield code="b">Other</subfield>
      <subfield code="a">Second A</subfield>
    </datafield>
  </record>
</collection>`

func TestParseCollection(t *testing.T) {
	c, err := ParseCollection(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(c.Records) != 1 {
		t.Fatalf("records: want 1, got %d", len(c.Records))
	}
	r := c.Records[0]
	if got := r.ControlValue("001"); got != "515307" {
		t.Fatalf("control 001: got %q", got)
	}
	if got := r.ControlValue("005"); got != "" {
		t.Fatalf("absent control field: want empty, got %q", got)
	}
}

func TestFieldsRepeatable(t *testing.T) {
	c, err := ParseCollection(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatal(err)
	}
	r := c.Records[0]
	fields := r.Fields("710")
	if len(fields) != 2 {
		t.Fatalf("710 instances: want 2, got %d", len(fields))
	}
	if got := fields[1].Subfield("a"); !reflect.DeepEqual(got, []string{"UN. Secretariat"}) {
		t.Fatalf("710$a second instance: got %v", got)
	}
	if got := r.Fields("999"); got != nil {
		t.Fatalf("absent tag: want nil, got %v", got)
	}
}

func TestSubjectsBlock(t *testing.T) {
	c, err := ParseCollection(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatal(err)
	}
	subs := c.Records[0].Subjects()
	if len(subs) != 2 {
		t.Fatalf("6xx fields: want 2, got %d", len(subs))
	}
	if subs[0].Tag != "650" || subs[1].Tag != "651" {
		t.Fatalf("6xx tags: got %s, %s", subs[0].Tag, subs[1].Tag)
	}
}

func TestFormatJoinsSubfields(t *testing.T) {
	c, err := ParseCollection(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatal(err)
	}
	f := c.Records[0].Fields("245")[0]
	if got := f.Format(); got != "Women in peacekeeping : a report" {
		t.Fatalf("format: got %q", got)
	}
}

func TestFirstValues(t *testing.T) {
	c, err := ParseCollection(strings.NewReader(sampleXML))
	if err != nil {
		t.Fatal(err)
	}
	f := c.Records[0].Fields("989")[0]
	// first value per code, in order of first appearance; repeated $a ignored
	if got := f.FirstValues(); !reflect.DeepEqual(got, []string{"Report", "Other"}) {
		t.Fatalf("first values: got %v", got)
	}
}
