package models

// TwitterSearchResponse is the body of GET /1.1/search/tweets.json.
type TwitterSearchResponse struct {
	Statuses       []TwitterStatus `json:"statuses"`
	SearchMetadata struct {
		Count       int     `json:"count"`
		Query       string  `json:"query"`
		CompletedIn float64 `json:"completed_in"`
	} `json:"search_metadata"`
}

// TwitterStatus is a single post as returned by the search API. FullText is
// only populated when the query asked for tweet_mode=extended.
type TwitterStatus struct {
	IDStr     string       `json:"id_str"`
	Text      string       `json:"text,omitempty"`
	FullText  string       `json:"full_text,omitempty"`
	CreatedAt string       `json:"created_at"`
	User      *TwitterUser `json:"user"`
}

type TwitterUser struct {
	ScreenName           string `json:"screen_name"`
	Name                 string `json:"name"`
	ProfileImageURL      string `json:"profile_image_url"`
	ProfileImageURLHTTPS string `json:"profile_image_url_https"`
}

type TwitterErrorResponse struct {
	Errors []struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"errors"`
}
