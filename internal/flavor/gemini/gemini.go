// Package gemini provides a flavor provider backed by the Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/vovakirdan/nirbachon-chaos/internal/config"
	"github.com/vovakirdan/nirbachon-chaos/internal/flavor"
	"github.com/vovakirdan/nirbachon-chaos/internal/registry"
)

// Name is the registry name of this provider.
const Name = "gemini"

// ErrNoAPIKey is returned when the provider is created without credentials.
var ErrNoAPIKey = errors.New("gemini: no API key (set GEMINI_API_KEY or GOOGLE_API_KEY)")

func init() {
	registry.Register(Name, "Google Gemini text generation", func(env registry.Env) (flavor.Provider, error) {
		return New(context.Background(), env.APIKey, env.Config)
	})
}

// generator is the subset of the genai client used here.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Provider generates news and dialogue with a Gemini model.
type Provider struct {
	models              generator
	model               string
	newsPrompt          string
	dialoguePrompt      string
	newsTemperature     float32
	dialogueTemperature float32
}

// New creates a provider using the Gemini API backend.
func New(ctx context.Context, apiKey string, cfg config.FlavorConfig) (*Provider, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: cannot create client: %w", err)
	}

	return newProvider(client.Models, cfg), nil
}

func newProvider(models generator, cfg config.FlavorConfig) *Provider {
	return &Provider{
		models:              models,
		model:               cfg.Model,
		newsPrompt:          cfg.NewsPrompt,
		dialoguePrompt:      cfg.DialoguePrompt,
		newsTemperature:     cfg.NewsTemperature,
		dialogueTemperature: cfg.DialogueTemperature,
	}
}

// Name implements flavor.Provider.
func (p *Provider) Name() string { return Name }

// News implements flavor.Provider.
func (p *Provider) News(ctx context.Context, req flavor.NewsRequest) (string, error) {
	prompt := fmt.Sprintf(p.newsPrompt, req.Subject, req.EventID)
	return p.generate(ctx, prompt, p.newsTemperature)
}

// Dialogue implements flavor.Provider.
func (p *Provider) Dialogue(ctx context.Context, req flavor.DialogueRequest) (string, error) {
	prompt := fmt.Sprintf(p.dialoguePrompt, req.ActorDescription, req.ActionID)
	return p.generate(ctx, prompt, p.dialogueTemperature)
}

func (p *Provider) generate(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := p.models.GenerateContent(ctx, p.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini: generate with %s: %w", p.model, err)
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}
