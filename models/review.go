package models

// Review is a single Google review normalized from the aggregator response.
type Review struct {
	ID         string `json:"id"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
	Reviewer   string `json:"reviewer"`
	ReviewerID string `json:"reviewer_id,omitempty"`
	Datetime   string `json:"datetime,omitempty"`
	URL        string `json:"url,omitempty"`
	Likes      int    `json:"likes"`
}

// PlaceDetails carries the place-level fields of an aggregator response,
// each defaulted independently when the upstream omits it.
type PlaceDetails struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"totalReviews"`
}

// ReviewPage is the envelope returned by GET /api/reviews/{placeId} and the
// payload stored in the cache.
type ReviewPage struct {
	Success       bool         `json:"success"`
	Reviews       []Review     `json:"reviews"`
	HasMore       bool         `json:"hasMore"`
	TotalReviews  int          `json:"totalReviews"`
	AverageRating float64      `json:"averageRating"`
	PlaceDetails  PlaceDetails `json:"placeDetails"`
	Offset        int          `json:"offset"`
}
