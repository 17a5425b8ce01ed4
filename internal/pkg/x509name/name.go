package x509name

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"strings"
)

// MaxAttributeLength is the longest key or value accepted, in bytes.
const MaxAttributeLength = 255

// Attribute is a single Type=Value pair. Type is the short name as written
// in the parsed string.
type Attribute struct {
	Type  string
	Value string
}

// DistinguishedName is an ordered list of attributes.
type DistinguishedName struct {
	Attributes []Attribute
}

var attributeOIDs = map[string]asn1.ObjectIdentifier{
	"CN":           {2, 5, 4, 3},
	"SN":           {2, 5, 4, 4},
	"SERIALNUMBER": {2, 5, 4, 5},
	"C":            {2, 5, 4, 6},
	"L":            {2, 5, 4, 7},
	"ST":           {2, 5, 4, 8},
	"STREET":       {2, 5, 4, 9},
	"O":            {2, 5, 4, 10},
	"OU":           {2, 5, 4, 11},
	"title":        {2, 5, 4, 12},
	"postalCode":   {2, 5, 4, 17},
	"GN":           {2, 5, 4, 42},
	"emailAddress": {1, 2, 840, 113549, 1, 9, 1},
	"UID":          {0, 9, 2342, 19200300, 100, 1, 1},
	"DC":           {0, 9, 2342, 19200300, 100, 1, 25},
}

// IsRecognized reports whether key is an attribute short name Parse accepts.
func IsRecognized(key string) bool {
	_, ok := attributeOIDs[key]
	return ok
}

// Parse parses text into a DistinguishedName. It returns nil if any part of
// text is malformed; no partial result is ever returned.
func Parse(text string) *DistinguishedName {
	if text == "" || text[0] == ' ' || text[0] == '\t' {
		return nil
	}

	var attributes []Attribute
	i := 0
	for {
		start := i
		for i < len(text) && text[i] != '=' && text[i] != ',' {
			i++
		}
		if i == len(text) || text[i] != '=' {
			return nil
		}
		key := text[start:i]
		if key == "" || len(key) > MaxAttributeLength || !IsRecognized(key) {
			return nil
		}
		i++

		var value strings.Builder
		for i < len(text) && text[i] != ',' {
			if text[i] == '\\' && i+1 < len(text) && text[i+1] == ',' {
				value.WriteByte(',')
				i += 2
			} else {
				value.WriteByte(text[i])
				i++
			}
			if value.Len() > MaxAttributeLength {
				return nil
			}
		}
		attributes = append(attributes, Attribute{Type: key, Value: value.String()})

		if i == len(text) {
			break
		}

		// Skip the separator and any spaces before the next key.
		i++
		for i < len(text) && text[i] == ' ' {
			i++
		}
		if i == len(text) {
			return nil
		}
	}

	return &DistinguishedName{Attributes: attributes}
}

// Get returns the value of the first attribute of the given type.
func (d *DistinguishedName) Get(attributeType string) (string, bool) {
	if d == nil {
		return "", false
	}
	for _, a := range d.Attributes {
		if a.Type == attributeType {
			return a.Value, true
		}
	}
	return "", false
}

// String renders the name in the form Parse accepts, escaping commas.
// The grammar has no escape for a backslash, so a value ending in one is
// not representable: it escapes the following separator and the result
// parses back as a different name.
func (d *DistinguishedName) String() string {
	if d == nil {
		return ""
	}
	var b strings.Builder
	for i, a := range d.Attributes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(a.Type)
		b.WriteByte('=')
		b.WriteString(strings.ReplaceAll(a.Value, ",", `\,`))
	}
	return b.String()
}

// ToRDNSequence converts the name to one single-valued RDN per attribute,
// in order.
func (d *DistinguishedName) ToRDNSequence() pkix.RDNSequence {
	if d == nil {
		return nil
	}
	seq := make(pkix.RDNSequence, 0, len(d.Attributes))
	for _, a := range d.Attributes {
		seq = append(seq, pkix.RelativeDistinguishedNameSET{
			{Type: attributeOIDs[a.Type], Value: a.Value},
		})
	}
	return seq
}

// ToPKIXName converts the name for use in x509 certificate templates.
// ExtraNames carries every attribute so encoding keeps the parsed order and
// the attributes pkix.Name has no field for.
func (d *DistinguishedName) ToPKIXName() pkix.Name {
	var name pkix.Name
	seq := d.ToRDNSequence()
	name.FillFromRDNSequence(&seq)
	name.ExtraNames = append([]pkix.AttributeTypeAndValue(nil), name.Names...)
	return name
}
