package results

import (
	"encoding/xml"
	"fmt"
	"time"
)

// TagSyncResults is the element name of a serialized Result.
const TagSyncResults = "syncresults"

// TimeLayout is the layout of the time attribute.
const TimeLayout = time.RFC3339Nano

type countsXML struct {
	Added    int `xml:"added,attr"`
	Deleted  int `xml:"deleted,attr"`
	Modified int `xml:"modified,attr"`
}

type targetXML struct {
	Name   string    `xml:"name,attr"`
	Local  countsXML `xml:"local"`
	Remote countsXML `xml:"remote"`
}

type resultXML struct {
	Time      string      `xml:"time,attr,omitempty"`
	Major     int         `xml:"majorcode,attr"`
	Minor     int         `xml:"minorcode,attr"`
	Scheduled bool        `xml:"scheduled,attr,omitempty"`
	TargetID  string      `xml:"targetid,attr,omitempty"`
	Targets   []targetXML `xml:"target"`
}

// MarshalXML encodes r as a syncresults element.
func (r Result) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	doc := resultXML{
		Major:     int(r.Major),
		Minor:     int(r.Minor),
		Scheduled: r.Scheduled,
		TargetID:  r.TargetID,
	}
	if r.HasSyncTime() {
		doc.Time = r.SyncTime.Format(TimeLayout)
	}
	for _, t := range r.Targets {
		doc.Targets = append(doc.Targets, targetXML{
			Name:   t.Name,
			Local:  countsXML(t.Local),
			Remote: countsXML(t.Remote),
		})
	}

	return e.EncodeElement(doc, xml.StartElement{Name: xml.Name{Local: TagSyncResults}})
}

// UnmarshalXML decodes a syncresults element into r.
// A missing time attribute leaves the sync time unset.
func (r *Result) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var doc resultXML
	if err := d.DecodeElement(&doc, &start); err != nil {
		return fmt.Errorf("decode %s: %w", TagSyncResults, err)
	}

	var syncTime time.Time
	if doc.Time != "" {
		t, err := time.Parse(TimeLayout, doc.Time)
		if err != nil {
			return fmt.Errorf("parse %s time %q: %w", TagSyncResults, doc.Time, err)
		}
		syncTime = t
	}

	out := Result{
		SyncTime:  syncTime,
		Major:     MajorCode(doc.Major),
		Minor:     MinorCode(doc.Minor),
		Scheduled: doc.Scheduled,
		TargetID:  doc.TargetID,
	}
	for _, t := range doc.Targets {
		out.Targets = append(out.Targets, TargetResult{
			Name:   t.Name,
			Local:  ItemCounts(t.Local),
			Remote: ItemCounts(t.Remote),
		})
	}

	*r = out
	return nil
}
