package model

import (
	"encoding/json"
	"strings"
)

// Sentinel is the serialized marker for "no value found". It only exists at
// the JSON/XLSX boundary; in-memory records use empty slices instead.
const Sentinel = "-"

// Record is one restaurant's contact information.
type Record struct {
	Name    string
	Website string
	Emails  []string
	Phones  []string
}

// HasEmail reports whether at least one email is known.
func (r *Record) HasEmail() bool { return len(r.Emails) > 0 }

// HasPhone reports whether at least one phone is known.
func (r *Record) HasPhone() bool { return len(r.Phones) > 0 }

// Email renders the email list in serialized form.
func (r *Record) Email() string { return JoinValues(r.Emails) }

// Phone renders the phone list in serialized form.
func (r *Record) Phone() string { return JoinValues(r.Phones) }

// recordJSON is the on-disk shape of a Record.
type recordJSON struct {
	Name    string `json:"name"`
	Website string `json:"website"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(recordJSON{
		Name:    r.Name,
		Website: r.Website,
		Email:   JoinValues(r.Emails),
		Phone:   JoinValues(r.Phones),
	})
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw recordJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Name = raw.Name
	r.Website = raw.Website
	r.Emails = SplitValues(raw.Email)
	r.Phones = SplitValues(raw.Phone)
	return nil
}

// JoinValues renders a value list as a comma-joined string, or the sentinel
// when the list is empty.
func JoinValues(vals []string) string {
	if len(vals) == 0 {
		return Sentinel
	}
	return strings.Join(vals, ", ")
}

// SplitValues parses a comma-joined string back into a value list. The
// sentinel and the empty string both parse to nil.
func SplitValues(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" || s == Sentinel {
		return nil
	}
	parts := strings.Split(s, ", ")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" && p != Sentinel {
			out = append(out, p)
		}
	}
	return out
}
