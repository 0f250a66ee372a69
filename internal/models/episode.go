package models

// Episode is derived from the upstream podcast RSS feed on each fetch and
// never stored locally.
type Episode struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AudioURL    string `json:"audioUrl"`
	PubDate     string `json:"pubDate"`
	Duration    string `json:"duration,omitempty"`
	ImageURL    string `json:"imageUrl,omitempty"`
	Link        string `json:"link,omitempty"`
	GUID        string `json:"guid,omitempty"`
}
