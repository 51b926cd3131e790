package sefaria

// LocalizedText carries the English and Hebrew renderings of a string.
type LocalizedText struct {
	En string `json:"en"`
	He string `json:"he"`
}

// RandomText is the random-by-topic response.
type RandomText struct {
	Ref   string      `json:"ref"`
	URL   string      `json:"url"`
	Topic *TopicBrief `json:"topic"`
}

// TopicBrief is the topic summary embedded in RandomText.
type TopicBrief struct {
	Slug         string         `json:"slug"`
	PrimaryTitle *LocalizedText `json:"primaryTitle"`
	Description  *LocalizedText `json:"description"`
}

// Calendar is the calendars response.
type Calendar struct {
	Date          string         `json:"date"`
	Timezone      string         `json:"timezone"`
	CalendarItems []CalendarItem `json:"calendar_items"`
}

// CalendarItem is one scheduled learning entry.
type CalendarItem struct {
	Title        LocalizedText `json:"title"`
	DisplayValue LocalizedText `json:"displayValue"`
	URL          string        `json:"url"`
	Ref          string        `json:"ref"`
	Category     string        `json:"category"`
	Description  LocalizedText `json:"description"`
}

// Link is one cross reference from the links endpoint.
type Link struct {
	ID         string `json:"_id"`
	IndexTitle string `json:"index_title"`
	Category   string `json:"category"`
	Type       string `json:"type"`
	Ref        string `json:"ref"`
	AnchorRef  string `json:"anchorRef"`
	SourceRef  string `json:"sourceRef"`
}

// Topic is the v2 topics response.
type Topic struct {
	Slug         string         `json:"slug"`
	PrimaryTitle *LocalizedText `json:"primaryTitle"`
	Description  *LocalizedText `json:"description"`
	NumSources   int            `json:"numSources"`
}
