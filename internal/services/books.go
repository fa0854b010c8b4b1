package services

import (
	"context"
	"fmt"
	"log"
	"net/url"

	books "google.golang.org/api/books/v1"
	"google.golang.org/api/option"
)

// Book is one search result enriched with format availability and catalogue
// links for readers who want the book outside Google Books.
type Book struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	Authors            []string          `json:"authors"`
	Publisher          string            `json:"publisher"`
	PublishedDate      string            `json:"publishedDate"`
	Description        string            `json:"description"`
	PageCount          int64             `json:"pageCount"`
	Categories         []string          `json:"categories"`
	AverageRating      float64           `json:"averageRating"`
	RatingsCount       int64             `json:"ratingsCount"`
	Thumbnail          string            `json:"thumbnail"`
	PreviewLink        string            `json:"previewLink"`
	InfoLink           string            `json:"infoLink"`
	BuyLink            string            `json:"buyLink"`
	IsEbook            bool              `json:"isEbook"`
	Price              string            `json:"price"`
	ISBN               string            `json:"isbn"`
	Formats            []string          `json:"formats"`
	DownloadLinks      map[string]string `json:"downloadLinks"`
	AlternativeSources map[string]string `json:"alternativeSources"`
	AccessViewStatus   string            `json:"accessViewStatus"`
	PublicDomain       bool              `json:"publicDomain"`
}

// BooksService searches the Google Books API. The API works without a key at
// a lower quota, so the key is optional. Failures and empty result sets both
// degrade to mock books.
type BooksService struct {
	apiKey string
}

func NewBooksService(apiKey string) *BooksService {
	return &BooksService{apiKey: apiKey}
}

func (s *BooksService) SearchBooks(ctx context.Context, query string, maxResults int64) []Book {
	opts := []option.ClientOption{option.WithoutAuthentication()}
	if s.apiKey != "" {
		opts = []option.ClientOption{option.WithAPIKey(s.apiKey)}
	}

	svc, err := books.NewService(ctx, opts...)
	if err != nil {
		log.Printf("failed to create Books client: %v", err)
		return mockBooks(query)
	}

	resp, err := svc.Volumes.List(query+" programming OR computer science OR tutorial OR guide").
		MaxResults(maxResults).
		OrderBy("relevance").
		PrintType("books").
		LangRestrict("en").
		Context(ctx).
		Do()
	if err != nil {
		log.Printf("Books search failed: %v", err)
		return mockBooks(query)
	}
	if len(resp.Items) == 0 {
		log.Printf("no books found for query: %s", query)
		return mockBooks(query)
	}

	results := make([]Book, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.VolumeInfo == nil {
			continue
		}
		results = append(results, mapVolume(item))
	}
	return results
}

func mapVolume(item *books.Volume) Book {
	info := item.VolumeInfo

	b := Book{
		ID:            item.Id,
		Title:         info.Title,
		Authors:       info.Authors,
		Publisher:     info.Publisher,
		PublishedDate: info.PublishedDate,
		Description:   info.Description,
		PageCount:     info.PageCount,
		Categories:    info.Categories,
		AverageRating: info.AverageRating,
		RatingsCount:  info.RatingsCount,
		PreviewLink:   info.PreviewLink,
		InfoLink:      info.InfoLink,
		Price:         "N/A",
		DownloadLinks: map[string]string{},
	}
	if b.Title == "" {
		b.Title = "Unknown Title"
	}
	if len(b.Authors) == 0 {
		b.Authors = []string{"Unknown Author"}
	}
	if b.Publisher == "" {
		b.Publisher = "Unknown Publisher"
	}
	if b.PublishedDate == "" {
		b.PublishedDate = "Unknown"
	}
	if b.Description == "" {
		b.Description = "No description available."
	}

	if info.ImageLinks != nil {
		b.Thumbnail = info.ImageLinks.Thumbnail
		if b.Thumbnail == "" {
			b.Thumbnail = info.ImageLinks.SmallThumbnail
		}
	}

	// Prefer ISBN-13 over ISBN-10 for catalogue lookups
	var isbn10 string
	for _, id := range info.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			b.ISBN = id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	if b.ISBN == "" {
		b.ISBN = isbn10
	}

	if item.SaleInfo != nil {
		b.BuyLink = item.SaleInfo.BuyLink
		b.IsEbook = item.SaleInfo.IsEbook
		if item.SaleInfo.ListPrice != nil {
			b.Price = fmt.Sprintf("%g %s", item.SaleInfo.ListPrice.Amount, item.SaleInfo.ListPrice.CurrencyCode)
		}
	}

	if access := item.AccessInfo; access != nil {
		b.AccessViewStatus = access.AccessViewStatus
		b.PublicDomain = access.PublicDomain
		if access.Pdf != nil && access.Pdf.IsAvailable {
			b.Formats = append(b.Formats, "PDF")
			if access.Pdf.AcsTokenLink != "" {
				b.DownloadLinks["pdf"] = access.Pdf.AcsTokenLink
			}
			if access.Pdf.DownloadLink != "" {
				b.DownloadLinks["pdfDownload"] = access.Pdf.DownloadLink
			}
		}
		if access.Epub != nil && access.Epub.IsAvailable {
			b.Formats = append(b.Formats, "EPUB")
			if access.Epub.AcsTokenLink != "" {
				b.DownloadLinks["epub"] = access.Epub.AcsTokenLink
			}
			if access.Epub.DownloadLink != "" {
				b.DownloadLinks["epubDownload"] = access.Epub.DownloadLink
			}
		}
	}
	if info.PrintType == "BOOK" {
		b.Formats = append(b.Formats, "Print")
	}

	b.AlternativeSources = alternativeSources(b.Title, b.ISBN, firstOr(b.Authors, ""))
	return b
}

func alternativeSources(title, isbn, author string) map[string]string {
	if isbn != "" {
		return map[string]string{
			"openLibrary": "https://openlibrary.org/isbn/" + isbn,
			"archive":     "https://archive.org/search.php?query=" + url.QueryEscape(title+" "+author),
			"worldcat":    "https://www.worldcat.org/search?q=" + url.QueryEscape(title),
		}
	}
	return map[string]string{
		"openLibrary": "https://openlibrary.org/search?q=" + url.QueryEscape(title),
		"archive":     "https://archive.org/search.php?query=" + url.QueryEscape(title),
		"worldcat":    "https://www.worldcat.org/search?q=" + url.QueryEscape(title),
	}
}

func firstOr(items []string, fallback string) string {
	if len(items) > 0 {
		return items[0]
	}
	return fallback
}

func mockBooks(query string) []Book {
	searchLink := "https://www.google.com/search?q=" + url.QueryEscape(query+" book")

	return []Book{
		{
			ID:            "mock1",
			Title:         fmt.Sprintf("Complete Guide to %s", query),
			Authors:       []string{"Expert Author"},
			Publisher:     "Educational Press",
			PublishedDate: "2024",
			Description:   fmt.Sprintf("A comprehensive guide covering all aspects of %s. Perfect for beginners and advanced learners alike.", query),
			PageCount:     450,
			Categories:    []string{"Education", "Technology"},
			AverageRating: 4.5,
			RatingsCount:  125,
			Thumbnail:     "https://via.placeholder.com/128x192/4A90E2/FFFFFF?text=Book",
			PreviewLink:   searchLink,
			InfoLink:      searchLink,
			IsEbook:       true,
			Price:         "N/A",
			Formats:       []string{"PDF", "EPUB"},
			DownloadLinks: map[string]string{},
			AlternativeSources: map[string]string{
				"openLibrary": "https://openlibrary.org/search?q=" + url.QueryEscape(query),
				"archive":     "https://archive.org/search.php?query=" + url.QueryEscape(query),
				"worldcat":    "https://www.worldcat.org/search?q=" + url.QueryEscape(query),
			},
			AccessViewStatus: "NONE",
		},
		{
			ID:            "mock2",
			Title:         fmt.Sprintf("%s: From Basics to Advanced", query),
			Authors:       []string{"John Doe", "Jane Smith"},
			Publisher:     "Tech Books",
			PublishedDate: "2023",
			Description:   fmt.Sprintf("Master %s with this step-by-step guide that takes you from foundational concepts to advanced techniques.", query),
			PageCount:     320,
			Categories:    []string{"Education"},
			AverageRating: 4.2,
			RatingsCount:  89,
			Thumbnail:     "https://via.placeholder.com/128x192/E24A90/FFFFFF?text=Book",
			PreviewLink:   searchLink,
			InfoLink:      searchLink,
			Price:         "N/A",
			Formats:       []string{"Print"},
			DownloadLinks: map[string]string{},
			AlternativeSources: map[string]string{
				"openLibrary": "https://openlibrary.org/search?q=" + url.QueryEscape(query),
				"archive":     "https://archive.org/search.php?query=" + url.QueryEscape(query),
				"worldcat":    "https://www.worldcat.org/search?q=" + url.QueryEscape(query),
			},
			AccessViewStatus: "NONE",
		},
	}
}
