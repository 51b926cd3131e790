package sefaria

import "fmt"

// Placeholders shown when a field is missing from a response.
const (
	NoReference   = "No reference available"
	NoTopic       = "No topic available"
	NoDescription = "No description available"
	NoURL         = "No URL available"
)

// FormatRandomText renders a random-by-topic result for display. It never
// fails: a fetch error or missing fields degrade to placeholder text.
func FormatRandomText(baseURL string, r *RandomText, err error) string {
	if err != nil {
		return fmt.Sprintf("Failed to fetch data from Sefaria API: %v", err)
	}
	if r == nil {
		r = &RandomText{}
	}

	ref := orDefault(r.Ref, NoReference)
	topic, description := NoTopic, NoDescription
	if r.Topic != nil {
		if r.Topic.PrimaryTitle != nil {
			topic = orDefault(r.Topic.PrimaryTitle.En, NoTopic)
		}
		if r.Topic.Description != nil {
			description = orDefault(r.Topic.Description.En, NoDescription)
		}
	}
	u := orDefault(r.URL, NoURL)

	return fmt.Sprintf("Reference: %s\nTopic: %s\nDescription: %s\nURL: %s/%s", ref, topic, description, baseURL, u)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
