package synclog

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/hay-kot/synclog/internal/core/results"
)

// TagSyncLog is the element name of a serialized Log.
const TagSyncLog = "synclog"

type logXML struct {
	XMLName xml.Name         `xml:"synclog"`
	Name    string           `xml:"name,attr"`
	Results []results.Result `xml:"syncresults"`
}

// MarshalXML encodes the log as a synclog element. The last successful
// result is written ahead of the retained results only when it is not
// already covered by them.
func (l *Log) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	doc := logXML{Name: l.profile}
	if l.summaryNeeded() {
		doc.Results = append(doc.Results, *l.lastSuccessful)
	}
	doc.Results = append(doc.Results, l.results...)

	return e.Encode(doc)
}

// UnmarshalXML rebuilds the log from a synclog element. Every syncresults
// child is fed through Record in document order; other children are ignored.
func (l *Log) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var doc logXML
	if err := d.DecodeElement(&doc, &start); err != nil {
		return fmt.Errorf("decode %s: %w", TagSyncLog, err)
	}

	*l = Log{profile: doc.Name}
	for _, r := range doc.Results {
		l.Record(r)
	}
	return nil
}

// Decode reads a log document from r.
func Decode(r io.Reader) (*Log, error) {
	l := &Log{}
	if err := xml.NewDecoder(r).Decode(l); err != nil {
		return nil, err
	}
	return l, nil
}

// Encode writes l as an indented XML document to w.
func (l *Log) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(l); err != nil {
		return fmt.Errorf("encode %s: %w", TagSyncLog, err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	_, err := io.WriteString(w, "\n")
	return err
}
