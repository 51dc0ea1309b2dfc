// Package assist produces AI-generated copy for events and media. Every
// failure path returns a usable fallback string; callers never see an error.
package assist

import (
	"context"
	"fmt"
	"log"

	"google.golang.org/genai"
)

const (
	textModel   = "gemini-2.0-flash"
	visionModel = "gemini-2.0-flash"

	genericWelcome = "Welcome! Please share your photos with us."
	genericVibe    = "Great shot!"
	vibeFallback   = "A beautiful moment captured."
)

type Service interface {
	GenerateWelcomeMessage(ctx context.Context, eventName, hostName, eventType string) string
	AnalyzeImage(ctx context.Context, image []byte, mimeType string) string
}

// generator narrows the GenAI client to the single call the service makes,
// so tests can substitute a fake.
type generator interface {
	generate(ctx context.Context, model string, contents []*genai.Content) (string, error)
}

type service struct {
	gen generator
}

// NewService accepts a nil client; the service then always answers with
// fallbacks.
func NewService(client *genai.Client) Service {
	if client == nil {
		return &service{}
	}
	return &service{gen: &genaiGenerator{client: client}}
}

func (s *service) GenerateWelcomeMessage(ctx context.Context, eventName, hostName, eventType string) string {
	fallback := fmt.Sprintf("Welcome to %s! We're so glad you're here.", eventName)
	if s.gen == nil {
		return fallback
	}

	prompt := fmt.Sprintf(`Write a short, warm, and fun welcome message for guests uploading photos to an event album.
Event Name: %s
Host: %s
Event Type: %s
Keep it under 50 words. Be inviting!`, eventName, hostName, eventType)

	text, err := s.gen.generate(ctx, textModel, genai.Text(prompt))
	if err != nil {
		log.Printf("AI generation error: %v", err)
		return fallback
	}
	if text == "" {
		return genericWelcome
	}
	return text
}

func (s *service) AnalyzeImage(ctx context.Context, image []byte, mimeType string) string {
	if s.gen == nil {
		return vibeFallback
	}
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	content := genai.NewContentFromParts([]*genai.Part{
		genai.NewPartFromBytes(image, mimeType),
		genai.NewPartFromText("Describe the vibe of this photo in 3 fun words or a very short sentence. E.g., 'Pure joy!', 'Dance floor madness'."),
	}, genai.RoleUser)

	text, err := s.gen.generate(ctx, visionModel, []*genai.Content{content})
	if err != nil {
		log.Printf("AI analysis error: %v", err)
		return vibeFallback
	}
	if text == "" {
		return genericVibe
	}
	return text
}

type genaiGenerator struct {
	client *genai.Client
}

func (g *genaiGenerator) generate(ctx context.Context, model string, contents []*genai.Content) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, model, contents, nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}
