package services

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

const (
	ttsMaxTextLen  = 5000
	ttsMaxChunkLen = 200
	ttsHost        = "https://translate.google.com"
)

// TTSResult carries the streamable audio URLs for one synthesized text.
type TTSResult struct {
	AudioURLs []string `json:"audioUrls"`
	Chunks    int      `json:"chunks"`
	Text      string   `json:"text"`
}

// TTSService builds Google Translate TTS URLs. The endpoint caps each request
// around 200 characters, so longer text is split at sentence boundaries.
type TTSService struct {
	host string
	lang string
}

func NewTTSService() *TTSService {
	return &TTSService{host: ttsHost, lang: "en"}
}

var sentenceRegex = regexp.MustCompile(`[^.!?]+[.!?]+`)

// Synthesize validates the text and returns one audio URL per chunk.
func (s *TTSService) Synthesize(text string) (*TTSResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, &ValidationError{Message: "Text is required"}
	}
	if len(text) > ttsMaxTextLen {
		return nil, &ValidationError{Message: "Text is too long. Maximum 5000 characters."}
	}

	chunks := chunkText(text, ttsMaxChunkLen)

	urls := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		urls = append(urls, s.audioURL(chunk))
	}

	return &TTSResult{
		AudioURLs: urls,
		Chunks:    len(chunks),
		Text:      text,
	}, nil
}

// chunkText packs whole sentences into chunks of at most maxLen characters.
// Text with no sentence terminators is returned as a single chunk.
func chunkText(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	sentences := sentenceRegex.FindAllString(text, -1)
	if len(sentences) == 0 {
		sentences = []string{text}
	}

	var chunks []string
	var current string
	for _, sentence := range sentences {
		if len(current)+len(sentence) <= maxLen {
			current += sentence
			continue
		}
		if current != "" {
			chunks = append(chunks, current)
		}
		current = sentence
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

func (s *TTSService) audioURL(chunk string) string {
	return fmt.Sprintf("%s/translate_tts?ie=UTF-8&q=%s&tl=%s&total=1&idx=0&textlen=%d&client=tw-ob&prefetch=1&ttsspeed=1",
		s.host, url.QueryEscape(chunk), s.lang, len(chunk))
}
