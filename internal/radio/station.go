package radio

import (
	"fmt"
	"strings"

	"lofigirl-terminal/internal/station"
)

// Station is a Radio Browser directory entry.
type Station struct {
	UUID        string `json:"stationuuid"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	CountryCode string `json:"countrycode"`
	Tags        string `json:"tags"`
	Codec       string `json:"codec"`
	Bitrate     int    `json:"bitrate"`
	URLResolved string `json:"url_resolved"`
	URL         string `json:"url"`
	Homepage    string `json:"homepage"`
	Favicon     string `json:"favicon"`
	ClickCount  int    `json:"clickcount"`
	LastCheckOK int    `json:"lastcheckok"`
}

// IDPrefix marks records discovered through Radio Browser.
const IDPrefix = "rb-"

// TagList splits the comma separated tag field.
func (s Station) TagList() []string {
	var tags []string
	for _, tag := range strings.Split(s.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// Record converts s into a playable station record.
func (s Station) Record() station.Record {
	id := strings.ToLower(strings.TrimSpace(s.UUID))
	if len(id) > 8 {
		id = id[:8]
	}

	streamURL, _ := resolvedURL(s)

	var details []string
	if s.Country != "" {
		details = append(details, s.Country)
	}
	if s.Codec != "" {
		details = append(details, s.Codec)
	}
	if s.Bitrate > 0 {
		details = append(details, fmt.Sprintf("%d kbps", s.Bitrate))
	}
	description := "Radio Browser"
	if len(details) > 0 {
		description += " (" + strings.Join(details, ", ") + ")"
	}

	genre := ""
	if tags := s.TagList(); len(tags) > 0 {
		genre = tags[0]
	}

	return station.New(IDPrefix+id, strings.TrimSpace(s.Name), streamURL, description, genre)
}
