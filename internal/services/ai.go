package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode/utf8"

	openai "github.com/sashabaranov/go-openai"

	"mentora-backend/internal/models"
)

// AIService talks to an OpenAI-compatible chat-completion endpoint (Groq by
// default). Every operation is one request with a system/user message pair;
// JSON-bearing operations share the extractJSON cleanup before decoding.
type AIService struct {
	client   *openai.Client
	model    string
	rateChan chan struct{} // Token bucket
}

func NewAIService(apiKey, baseURL, model string, concurrentReqs int) *AIService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	// Token bucket for bounding concurrent provider calls
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &AIService{
		client:   openai.NewClientWithConfig(cfg),
		model:    model,
		rateChan: rateChan,
	}
}

// acquireRate blocks until a rate slot is available
func (s *AIService) acquireRate(ctx context.Context) error {
	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("timeout waiting for AI rate slot")
	}
}

func (s *AIService) releaseRate() {
	s.rateChan <- struct{}{}
}

// complete performs a single chat completion and returns the trimmed text.
func (s *AIService) complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	if err := s.acquireRate(ctx); err != nil {
		return "", err
	}
	defer s.releaseRate()

	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Temperature: temperature,
	}
	if maxTokens > 0 {
		req.MaxTokens = maxTokens
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("AI provider error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("AI provider returned no choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

const jsonSystemPrompt = "You are a helpful tutor. Always respond with valid JSON only, no additional text."

// GenerateLesson asks the provider for structured lesson content.
func (s *AIService) GenerateLesson(ctx context.Context, title, level string) (models.LessonContent, error) {
	prompt := fmt.Sprintf(`You are a friendly personal tutor. Create a comprehensive explanation for the topic: %q for a %s student.

Structure your response as a JSON object with the following format:
{
  "introduction": "A friendly introduction to the topic (2-3 sentences)",
  "steps": [
    {
      "title": "Step 1 title",
      "content": "Detailed explanation of this step"
    }
  ],
  "analogies": [
    "Real-life analogy 1",
    "Real-life analogy 2"
  ],
  "summary": [
    "Key point 1",
    "Key point 2",
    "Key point 3",
    "Key point 4",
    "Key point 5"
  ]
}

Guidelines:
- Use simple, clear language appropriate for the level
- Include 4-6 steps for the explanation
- Provide 2 real-world analogies
- Create exactly 5 bullet points for the summary
- Make it engaging and easy to understand
- Use concrete examples where possible

Output only valid JSON, no additional text.`, title, level)

	raw, err := s.complete(ctx, jsonSystemPrompt, prompt, 0.7, 0)
	if err != nil {
		log.Printf("lesson generation failed: %v", err)
		return models.LessonContent{}, &AIServiceError{Message: "Failed to generate lesson content"}
	}

	var content models.LessonContent
	if err := json.Unmarshal([]byte(extractJSON(raw)), &content); err != nil {
		log.Printf("lesson JSON parse failed: %v", err)
		return models.LessonContent{}, &AIServiceError{Message: "Failed to generate lesson content"}
	}
	return content, nil
}

// GenerateQuiz asks for 5 four-option multiple-choice questions grounded in
// the lesson content.
func (s *AIService) GenerateQuiz(ctx context.Context, title, level string, lesson models.LessonContent) ([]models.QuizQuestion, error) {
	lessonJSON, _ := json.Marshal(lesson)

	prompt := fmt.Sprintf(`Based on the topic %q for a %s student, create 5 multiple-choice questions.

Context from the lesson:
%s

Structure your response as a JSON object:
{
  "questions": [
    {
      "question": "Question text here?",
      "options": ["Option A", "Option B", "Option C", "Option D"],
      "correctIndex": 0,
      "explanation": "Why this answer is correct"
    }
  ]
}

Guidelines:
- Create exactly 5 questions
- Each question should have 4 options
- correctIndex should be 0-3 (array index of correct answer)
- Mix difficulty levels (easy, medium, hard)
- Include clear explanations
- Questions should test understanding, not just memory

Output only valid JSON, no additional text.`, title, level, lessonJSON)

	raw, err := s.complete(ctx, jsonSystemPrompt, prompt, 0.7, 0)
	if err != nil {
		log.Printf("quiz generation failed: %v", err)
		return nil, &AIServiceError{Message: "Failed to generate quiz questions"}
	}

	var payload struct {
		Questions []models.QuizQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		log.Printf("quiz JSON parse failed: %v", err)
		return nil, &AIServiceError{Message: "Failed to generate quiz questions"}
	}
	return payload.Questions, nil
}

// CardFace is a generated flashcard front/back pair before persistence.
type CardFace struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// GenerateFlashcards asks for 8 front/back pairs covering the lesson.
func (s *AIService) GenerateFlashcards(ctx context.Context, title, level string, lesson models.LessonContent) ([]CardFace, error) {
	lessonJSON, _ := json.Marshal(lesson)

	prompt := fmt.Sprintf(`Based on the topic %q for a %s student, create 8 flashcards.

Context from the lesson:
%s

Structure your response as a JSON object:
{
  "flashcards": [
    {
      "front": "Question, term, or concept",
      "back": "Answer, definition, or explanation"
    }
  ]
}

Guidelines:
- Create exactly 8 flashcards
- Include key terms, concepts, formulas, or definitions
- Front should be concise (1-2 lines)
- Back should be clear but comprehensive
- Mix different types: definitions, examples, applications
- Ensure they cover the main points of the lesson

Output only valid JSON, no additional text.`, title, level, lessonJSON)

	raw, err := s.complete(ctx, jsonSystemPrompt, prompt, 0.7, 0)
	if err != nil {
		log.Printf("flashcard generation failed: %v", err)
		return nil, &AIServiceError{Message: "Failed to generate flashcards"}
	}

	var payload struct {
		Flashcards []CardFace `json:"flashcards"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &payload); err != nil {
		log.Printf("flashcard JSON parse failed: %v", err)
		return nil, &AIServiceError{Message: "Failed to generate flashcards"}
	}
	return payload.Flashcards, nil
}

// AnswerDoubt answers a student question using the lesson as context. The
// reply is freeform markdown. Provider failures are classified into three
// user-facing cases.
func (s *AIService) AnswerDoubt(ctx context.Context, question, topicTitle string, lesson models.LessonContent) (string, error) {
	contextBlock := fmt.Sprintf("Topic: %s\nIntroduction: %s\nKey Points: %s",
		topicTitle, lesson.Introduction, strings.Join(lesson.Summary, ", "))

	prompt := fmt.Sprintf(`You are an expert AI tutor helping a student learn about %q.

LESSON CONTEXT:
%s

STUDENT'S QUESTION:
%q

YOUR TASK:
Provide a comprehensive, well-formatted answer that:

1. Directly answers their specific question
2. Uses simple, clear language - no jargon unless necessary
3. Provides step-by-step explanation if needed
4. Includes a real-world example or analogy to make it relatable
5. Connects to the lesson content when relevant
6. Is encouraging and supportive
7. Suggests next steps if applicable

FORMATTING GUIDELINES:
- Start with a brief introduction paragraph
- Use **bold text** for important terms and key concepts
- Break complex answers into clear paragraphs
- Use numbered points (1. 2. 3.) for step-by-step explanations
- Use bullet points for lists of related items
- End with a concluding sentence or encouragement

Write your response in markdown format with proper formatting.`, topicTitle, contextBlock, question)

	system := "You are a patient, knowledgeable AI tutor who explains concepts clearly with examples and encouragement. Always provide thoughtful, personalized answers."

	answer, err := s.complete(ctx, system, prompt, 0.7, 1000)
	if err != nil {
		log.Printf("doubt answering failed: %v", err)
		return "", classifyProviderError(err)
	}
	return answer, nil
}

// ExplainSimply rewrites text in the plainest possible terms.
func (s *AIService) ExplainSimply(ctx context.Context, text, topicTitle string) (string, error) {
	prompt := fmt.Sprintf(`Explain this in the SIMPLEST way possible for a student:

Topic: %s
Text: %q

Rules:
- Use everyday language (no jargon)
- Make it short (2-3 sentences max)
- Use simple words a 10-year-old would understand
- Be clear and direct

Simple Explanation:`, topicTitle, text)

	out, err := s.complete(ctx, "You simplify complex concepts into easy-to-understand language.", prompt, 0.7, 250)
	if err != nil {
		log.Printf("simple explanation failed: %v", err)
		return "", &AIServiceError{Message: "Unable to generate simple explanation."}
	}
	return out, nil
}

// ExplainWithExample produces one concrete real-world example for a concept.
func (s *AIService) ExplainWithExample(ctx context.Context, text, topicTitle string) (string, error) {
	prompt := fmt.Sprintf(`Provide a clear real-world EXAMPLE for this concept:

Topic: %s
Concept: %q

Rules:
- Give ONE relatable, practical example from everyday life
- Show HOW it connects to the concept
- Keep it brief (3-4 sentences)
- Make it memorable

Example:`, topicTitle, text)

	out, err := s.complete(ctx, "You teach through practical, relatable examples.", prompt, 0.8, 300)
	if err != nil {
		log.Printf("example explanation failed: %v", err)
		return "", &AIServiceError{Message: "Unable to generate example."}
	}
	return out, nil
}

// languageInstructions fixes the supported explain-language set. Unsupported
// languages fail with a ValidationError rather than producing an undefined
// prompt.
var languageInstructions = map[string]string{
	"hindi":    "Explain in HINDI (Devanagari script). Use simple Hindi words.",
	"hinglish": `Explain in HINGLISH (Hindi words with English script). Mix Hindi and English naturally like: "Yeh concept bahut simple hai..."`,
}

func (s *AIService) ExplainInLanguage(ctx context.Context, text, language, topicTitle string) (string, error) {
	instruction, ok := languageInstructions[language]
	if !ok {
		return "", &ValidationError{Message: "Unsupported language. Choose hindi or hinglish."}
	}

	prompt := fmt.Sprintf(`%s

Topic: %s
Text to explain: %q

Rules:
- Keep it conversational and easy to understand
- Use simple vocabulary
- 2-4 sentences
- Be natural and friendly

Explanation:`, instruction, topicTitle, text)

	system := fmt.Sprintf("You are a friendly tutor who explains concepts in %s.", language)

	out, err := s.complete(ctx, system, prompt, 0.7, 400)
	if err != nil {
		log.Printf("%s explanation failed: %v", language, err)
		return "", &AIServiceError{Message: fmt.Sprintf("Unable to generate %s explanation.", language)}
	}
	return out, nil
}

// GenerateKeyPoints extracts 5-7 revision bullet points from the lesson.
func (s *AIService) GenerateKeyPoints(ctx context.Context, lesson models.LessonContent, topicTitle string) (string, error) {
	var steps []string
	for _, step := range lesson.Steps {
		steps = append(steps, step.Content)
	}
	contentText := truncate(fmt.Sprintf("Introduction: %s\nSteps: %s\nSummary: %s",
		lesson.Introduction, strings.Join(steps, " "), strings.Join(lesson.Summary, " ")), 3000)

	prompt := fmt.Sprintf(`Extract the MOST IMPORTANT key points from this lesson on %q:

%s

Create 5-7 bullet points that:
- Highlight the core concepts
- Are exam-focused and memorable
- Use clear, concise language
- Include important keywords
- Can be quickly reviewed

Format as bullet points.`, topicTitle, contentText)

	out, err := s.complete(ctx, "You extract key learning points for effective revision.", prompt, 0.6, 500)
	if err != nil {
		log.Printf("key points generation failed: %v", err)
		return "", &AIServiceError{Message: "Unable to generate key points."}
	}
	return out, nil
}

// ExtractKeywords returns 8-12 exam terms parsed from a comma-separated reply.
func (s *AIService) ExtractKeywords(ctx context.Context, lesson models.LessonContent, topicTitle string) ([]string, error) {
	var steps []string
	for _, step := range lesson.Steps {
		steps = append(steps, step.Content)
	}
	contentText := truncate(fmt.Sprintf("Introduction: %s\nSteps: %s",
		lesson.Introduction, strings.Join(steps, " ")), 2500)

	prompt := fmt.Sprintf(`Identify the MOST IMPORTANT exam keywords and terms from this lesson on %q:

%s

Extract 8-12 keywords/terms that:
- Are essential for exams
- Should be memorized
- Are frequently tested
- Represent core concepts

Format: Return as comma-separated terms (e.g., "photosynthesis, chlorophyll, glucose")`, topicTitle, contentText)

	out, err := s.complete(ctx, "You identify critical exam-focused keywords.", prompt, 0.5, 200)
	if err != nil {
		log.Printf("keyword extraction failed: %v", err)
		return nil, &AIServiceError{Message: "Unable to extract keywords."}
	}
	return parseKeywords(out), nil
}

// AskAboutText answers a question grounded in a selected text passage.
func (s *AIService) AskAboutText(ctx context.Context, text, question, topicTitle string) (string, error) {
	prompt := fmt.Sprintf(`You are a helpful tutor. Answer the student's question about this text from a lesson on %q:

Selected Text: %q

Student's Question: %s

Instructions:
- Answer the question directly and helpfully
- Focus on the selected text
- Be educational and clear
- Use simple language
- If asking for meaning/definition, explain what it means
- Don't refuse or redirect unless the question is completely unrelated
- Keep answer to 2-4 sentences

Answer:`, topicTitle, text, question)

	system := "You are a friendly and helpful tutor. Answer questions about text selections clearly and concisely. Never refuse reasonable questions."

	out, err := s.complete(ctx, system, prompt, 0.7, 400)
	if err != nil {
		log.Printf("text question failed: %v", err)
		return "", &AIServiceError{Message: "Unable to answer question right now."}
	}
	return out, nil
}

// GenerateQA produces 5 question/answer pairs from flattened lesson text.
func (s *AIService) GenerateQA(ctx context.Context, lessonText, topicTitle string) ([]models.QAPair, error) {
	prompt := fmt.Sprintf(`Based on this lesson content about %q, generate 5 important questions and their detailed answers that will help students understand the topic better.

Lesson Content:
%s

Create questions that:
- Cover key concepts from the lesson
- Are educational and thought-provoking
- Have clear, detailed answers (2-3 sentences each)
- Help reinforce learning

Format your response as a JSON array:
[
  {
    "question": "Question text?",
    "answer": "Detailed answer explaining the concept"
  }
]

Output only valid JSON, no additional text.`, topicTitle, lessonText)

	system := "You are a helpful tutor creating educational Q&A. Always respond with valid JSON only."

	raw, err := s.complete(ctx, system, prompt, 0.7, 1000)
	if err != nil {
		log.Printf("Q&A generation failed: %v", err)
		return nil, &AIServiceError{Message: "Unable to generate Q&A right now."}
	}

	var pairs []models.QAPair
	if err := json.Unmarshal([]byte(extractJSON(raw)), &pairs); err != nil {
		log.Printf("Q&A JSON parse failed: %v", err)
		return nil, &AIServiceError{Message: "Unable to generate Q&A right now."}
	}
	return pairs, nil
}

// Helper functions

// extractJSON strips markdown code fences from model output and narrows the
// result to the outermost JSON value when one can be located. This is the one
// genuinely fragile contract in the gateway: the model is trusted to emit
// well-formed JSON somewhere in its reply.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		start := 3
		// Skip the language identifier line, e.g. "json"
		if idx := strings.Index(content[start:], "\n"); idx != -1 {
			start += idx + 1
		}
		if end := strings.Index(content[start:], "```"); end != -1 {
			content = content[start : start+end]
		} else {
			content = content[start:]
		}
		content = strings.TrimSpace(content)
	}

	open := strings.IndexAny(content, "{[")
	if open == -1 {
		return content
	}
	closer := byte('}')
	if content[open] == '[' {
		closer = ']'
	}
	if end := strings.LastIndexByte(content, closer); end > open {
		content = content[open : end+1]
	}
	return strings.TrimSpace(content)
}

// FlattenLesson joins lesson content into one text block for Q&A prompts.
func FlattenLesson(c models.LessonContent) string {
	var b strings.Builder
	b.WriteString(c.Introduction)
	b.WriteString("\n\n")
	for i, step := range c.Steps {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(step.Title)
		b.WriteString(": ")
		b.WriteString(step.Content)
	}
	b.WriteString("\n\nKey Points:\n")
	b.WriteString(strings.Join(c.Summary, "\n"))
	return strings.TrimSpace(b.String())
}

func parseKeywords(raw string) []string {
	var keywords []string
	for _, part := range strings.Split(raw, ",") {
		if k := strings.TrimSpace(part); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func classifyProviderError(err error) *AIServiceError {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "API key"):
		return &AIServiceError{Message: "AI service configuration error. Please contact support."}
	case strings.Contains(msg, "rate limit"):
		return &AIServiceError{Message: "Too many questions at once. Please wait a moment and try again."}
	default:
		return &AIServiceError{Message: "Unable to generate answer right now. Please try again in a moment."}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	// Back up to a rune boundary so a multibyte character is never cut in half.
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
