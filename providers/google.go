package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rezensionsheld/backend/models"
	"github.com/rezensionsheld/backend/utils"
)

const (
	defaultBaseURL = "https://api.reviewconnect.io/v2"

	// The aggregator always returns pages of this size; a full page is the
	// only signal that more reviews exist.
	upstreamPageSize = 10

	responseLanguage = "de"

	fallbackReviewer = "Anonym"
)

// GoogleReviewsProvider fetches Google reviews for a place through a
// third-party aggregator API.
type GoogleReviewsProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *utils.Logger
}

func NewGoogleReviewsProvider(apiKey, baseURL string) *GoogleReviewsProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &GoogleReviewsProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: utils.NewLogger("review-provider"),
	}
}

type upstreamReview struct {
	ReviewID interface{} `json:"review_id"`
	Rating   int         `json:"rating"`
	Text     string      `json:"text"`
	Author   string      `json:"author_name"`
	AuthorID string      `json:"author_id"`
	Datetime string      `json:"datetime"`
	Link     string      `json:"link"`
	Likes    int         `json:"likes"`
}

type upstreamPlace struct {
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	Rating       float64 `json:"rating"`
	TotalReviews int     `json:"total_reviews"`
}

type upstreamResponse struct {
	Reviews       []upstreamReview `json:"reviews"`
	Place         *upstreamPlace   `json:"place"`
	TotalReviews  int              `json:"total_reviews"`
	AverageRating float64          `json:"average_rating"`
}

func (p *GoogleReviewsProvider) FetchReviews(ctx context.Context, placeID string, offset int, sort string) (*models.ReviewPage, error) {
	reqURL := fmt.Sprintf("%s/google/reviews?%s", p.baseURL, url.Values{
		"place_id": {placeID},
		"api_key":  {p.apiKey},
		"offset":   {strconv.Itoa(offset)},
		"sort":     {sort},
		"language": {responseLanguage},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, utils.WrapError(err, "failed to build review request")
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Error(ctx, "review API request failed", map[string]interface{}{
			"place_id": placeID,
			"error":    err.Error(),
		})
		return nil, &utils.UpstreamError{
			Message: utils.MsgUpstreamGeneric,
			Detail:  err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		p.logger.Error(ctx, "review API returned error status", map[string]interface{}{
			"place_id": placeID,
			"status":   resp.StatusCode,
		})
		return nil, utils.ClassifyUpstreamStatus(resp.StatusCode, string(detail))
	}

	var upstream upstreamResponse
	if err := json.NewDecoder(resp.Body).Decode(&upstream); err != nil {
		return nil, &utils.UpstreamError{
			Message: utils.MsgUpstreamGeneric,
			Detail:  fmt.Sprintf("invalid response body: %v", err),
		}
	}

	page := p.normalize(&upstream, offset)

	p.logger.Info(ctx, "fetched reviews from upstream", map[string]interface{}{
		"place_id": placeID,
		"offset":   offset,
		"count":    len(page.Reviews),
	})

	return page, nil
}

func (p *GoogleReviewsProvider) normalize(upstream *upstreamResponse, offset int) *models.ReviewPage {
	reviews := make([]models.Review, 0, len(upstream.Reviews))
	for _, raw := range upstream.Reviews {
		review := models.Review{
			ID:         normalizeID(raw.ReviewID),
			Rating:     raw.Rating,
			Text:       raw.Text,
			Reviewer:   raw.Author,
			ReviewerID: raw.AuthorID,
			Datetime:   raw.Datetime,
			URL:        raw.Link,
			Likes:      raw.Likes,
		}
		if review.Reviewer == "" {
			review.Reviewer = fallbackReviewer
		}
		reviews = append(reviews, review)
	}

	details := models.PlaceDetails{}
	if upstream.Place != nil {
		details.Name = upstream.Place.Name
		details.Address = upstream.Place.Address
		details.Rating = upstream.Place.Rating
		details.TotalReviews = upstream.Place.TotalReviews
	}

	return &models.ReviewPage{
		Success:       true,
		Reviews:       reviews,
		HasMore:       len(reviews) == upstreamPageSize,
		TotalReviews:  upstream.TotalReviews,
		AverageRating: upstream.AverageRating,
		PlaceDetails:  details,
		Offset:        offset,
	}
}

// normalizeID renders the upstream review identifier, which arrives as
// either a string or a number, as a string.
func normalizeID(id interface{}) string {
	switch v := id.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatInt(int64(v), 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (p *GoogleReviewsProvider) IsAvailable(ctx context.Context) bool {
	return p.apiKey != ""
}
