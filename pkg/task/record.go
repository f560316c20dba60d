package task

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a task as it travels over the REST surface. Remote backends call
// the completion flag status and are free to use numeric ids.
type Record struct {
	ID      FlexID `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Status  bool   `json:"status"`
}

// Body is the request payload for creating or replacing a task. Status is
// omitted on create and on plain edits.
type Body struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Status  *bool  `json:"status,omitempty"`
}

// Envelope wraps list responses.
type Envelope struct {
	Data []Record `json:"data"`
}

// ToRecord converts a task into its wire form.
func ToRecord(t Task) Record {
	return Record{ID: FlexID(t.ID), Title: t.Title, Summary: t.Summary, Status: t.Done}
}

// Task converts the wire form back into a task.
func (r Record) Task() Task {
	return Task{ID: string(r.ID), Title: r.Title, Summary: r.Summary, Done: r.Status}
}

// FlexID decodes from either a JSON string or a JSON number and always
// encodes as a string.
type FlexID string

func (f *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("task: id must be a string or number: %w", err)
	}
	*f = FlexID(n.String())
	return nil
}
