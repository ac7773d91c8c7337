package provider

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/matchiq/predictions-api/internal/models"
)

type newsResponse struct {
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		PublishedAt time.Time `json:"publishedAt"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
	} `json:"articles"`
}

// TeamNews fetches recent articles mentioning the team.
func (c *Client) TeamNews(ctx context.Context, teamName string) ([]models.NewsArticle, error) {
	if c.cfg.NewsAPIKey == "" {
		return nil, fmt.Errorf("news: api key not configured")
	}

	params := url.Values{}
	params.Set("q", teamName)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", "5")
	params.Set("apiKey", c.cfg.NewsAPIKey)

	var resp newsResponse
	if err := c.getJSON(ctx, "team_news", c.cfg.NewsBaseURL+"/everything", params, nil, &resp); err != nil {
		return nil, err
	}

	articles := make([]models.NewsArticle, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		articles = append(articles, models.NewsArticle{
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
			Title:       a.Title,
			Description: a.Description,
		})
	}
	return articles, nil
}
