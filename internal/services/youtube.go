package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"google.golang.org/api/option"
	youtube "google.golang.org/api/youtube/v3"
)

// Video is one recommended video in a search response. EmbedURL is nil for
// mock results so the frontend links out instead of embedding.
type Video struct {
	VideoID      string  `json:"videoId"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Thumbnail    string  `json:"thumbnail"`
	ChannelTitle string  `json:"channelTitle"`
	PublishedAt  string  `json:"publishedAt"`
	URL          string  `json:"url"`
	EmbedURL     *string `json:"embedUrl"`
}

// YouTubeService searches the YouTube Data API for educational videos. It
// never fails the caller: a missing key or an API error degrades to mock
// results so topic pages always render.
type YouTubeService struct {
	apiKey string
}

func NewYouTubeService(apiKey string) *YouTubeService {
	return &YouTubeService{apiKey: apiKey}
}

func (s *YouTubeService) SearchVideos(ctx context.Context, query string, maxResults int64) []Video {
	if s.apiKey == "" {
		log.Printf("YouTube API key not configured, returning mock videos for: %s", query)
		return mockVideos(query)
	}

	svc, err := youtube.NewService(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		log.Printf("failed to create YouTube client: %v", err)
		return mockVideos(query)
	}

	// Educational keywords sharpen relevance for study material
	enhancedQuery := query + " tutorial explained learn course"

	resp, err := svc.Search.List([]string{"snippet"}).
		Q(enhancedQuery).
		Type("video").
		MaxResults(maxResults).
		Order("relevance").
		VideoEmbeddable("true").
		VideoDuration("medium").
		RelevanceLanguage("en").
		SafeSearch("strict").
		Context(ctx).
		Do()
	if err != nil {
		log.Printf("YouTube search failed: %v", err)
		return mockVideos(query)
	}

	videos := make([]Video, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		thumbnail := ""
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.Medium != nil {
			thumbnail = item.Snippet.Thumbnails.Medium.Url
		}
		embedURL := "https://www.youtube.com/embed/" + item.Id.VideoId
		videos = append(videos, Video{
			VideoID:      item.Id.VideoId,
			Title:        item.Snippet.Title,
			Description:  item.Snippet.Description,
			Thumbnail:    thumbnail,
			ChannelTitle: item.Snippet.ChannelTitle,
			PublishedAt:  item.Snippet.PublishedAt,
			URL:          "https://www.youtube.com/watch?v=" + item.Id.VideoId,
			EmbedURL:     &embedURL,
		})
	}
	return videos
}

func mockVideos(query string) []Video {
	searchURL := "https://www.youtube.com/results?search_query=" + url.QueryEscape(query)
	now := time.Now().UTC().Format(time.RFC3339)

	return []Video{
		{
			VideoID:      "dQw4w9WgXcQ",
			Title:        fmt.Sprintf("Learn %s - Complete Tutorial", query),
			Description:  fmt.Sprintf("A comprehensive tutorial covering all aspects of %s. Perfect for beginners and advanced learners.", query),
			Thumbnail:    "https://img.youtube.com/vi/dQw4w9WgXcQ/mqdefault.jpg",
			ChannelTitle: "Educational Channel",
			PublishedAt:  now,
			URL:          searchURL,
		},
		{
			VideoID:      "sample2",
			Title:        fmt.Sprintf("%s Explained Simply", query),
			Description:  fmt.Sprintf("Easy to understand explanation of %s with real-world examples.", query),
			Thumbnail:    "https://img.youtube.com/vi/dQw4w9WgXcQ/mqdefault.jpg",
			ChannelTitle: "Learn With Us",
			PublishedAt:  now,
			URL:          searchURL,
		},
	}
}
