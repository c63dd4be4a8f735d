package loader

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LinkRecord is one <link id="…"><url>…</url></link> entry.
type LinkRecord struct {
	ID  string
	URL string
}

// LinkSet is the parsed links document.
type LinkSet struct {
	Resource string
	Records  []LinkRecord
	byID     map[string]string
}

// URL returns the target for id, or *MissingElementError when the document
// has no usable entry for it.
func (s LinkSet) URL(id string) (string, error) {
	if u, ok := s.byID[id]; ok {
		return u, nil
	}
	return "", &MissingElementError{Resource: s.Resource, Element: fmt.Sprintf("link[id=%q] url", id)}
}

// VersionRecord is the parsed version document.
type VersionRecord struct {
	Version string
}

// Text renders the footer label, using N/A when the element was missing.
func (v VersionRecord) Text() string {
	if v.Version == "" {
		return "Version: N/A"
	}
	return "Version: " + v.Version
}

type linkElement struct {
	ID  string `xml:"id,attr"`
	URL string `xml:"url"`
}

// ParseLinks reads every <link> element anywhere in the document. Entries
// without an id or url are skipped; the first entry for an id wins.
func ParseLinks(resource string, body []byte) (LinkSet, error) {
	set := LinkSet{Resource: resource, byID: make(map[string]string)}
	err := walk(resource, body, func(d *xml.Decoder, start xml.StartElement) error {
		if start.Name.Local != "link" {
			return nil
		}
		var el linkElement
		if err := d.DecodeElement(&el, &start); err != nil {
			return err
		}
		id := strings.TrimSpace(el.ID)
		u := strings.TrimSpace(el.URL)
		if id == "" || u == "" {
			return nil
		}
		if _, dup := set.byID[id]; dup {
			return nil
		}
		set.byID[id] = u
		set.Records = append(set.Records, LinkRecord{ID: id, URL: u})
		return nil
	})
	if err != nil {
		return LinkSet{}, err
	}
	return set, nil
}

// ParseVersion returns the text of the first <version> element. A document
// without one yields an empty record, not an error.
func ParseVersion(resource string, body []byte) (VersionRecord, error) {
	var rec VersionRecord
	found := false
	err := walk(resource, body, func(d *xml.Decoder, start xml.StartElement) error {
		if found || start.Name.Local != "version" {
			return nil
		}
		var text string
		if err := d.DecodeElement(&text, &start); err != nil {
			return err
		}
		found = true
		rec.Version = strings.TrimSpace(text)
		return nil
	})
	if err != nil {
		return VersionRecord{}, err
	}
	return rec, nil
}

// walk tokenizes the whole body so that trailing garbage is still reported,
// calling visit for each start element.
func walk(resource string, body []byte, visit func(*xml.Decoder, xml.StartElement) error) error {
	d := xml.NewDecoder(bytes.NewReader(body))
	sawRoot := false
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return &ParseError{Resource: resource, Err: err}
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		if err := visit(d, start); err != nil {
			return &ParseError{Resource: resource, Err: err}
		}
	}
	if !sawRoot {
		return &ParseError{Resource: resource, Err: fmt.Errorf("no root element")}
	}
	return nil
}
