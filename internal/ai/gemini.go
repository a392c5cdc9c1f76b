package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	genai "google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrMissingKey is returned by NewGemini when no API key is available.
var ErrMissingKey = errors.New("missing Gemini API key")

const repairPrompt = `Fix and normalize this Table of Contents to one entry per line as 'NUMBER TITLE PAGE'.
Keep the original order, keep the original wording of titles, drop dot leaders and running headers.
Indent nested entries by two spaces per level when they have no section number.
Return ONLY the lines, no commentary, no code fences.

`

// Generator is the slice of the genai client used here.
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type Gemini struct {
	models Generator
	model  string
	log    *zap.Logger
}

// NewGemini creates a Gemini backed repairer.
func NewGemini(ctx context.Context, apiKey, model string, log *zap.Logger) (*Gemini, error) {
	if apiKey == "" {
		return nil, ErrMissingKey
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey, Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, fmt.Errorf("unable to create gemini client: %w", err)
	}
	return newGemini(c.Models, model, log), nil
}

func newGemini(models Generator, model string, log *zap.Logger) *Gemini {
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Gemini{models: models, model: model, log: log.Named("gemini")}
}

func (g *Gemini) prompt(ctx context.Context, text string) (string, error) {
	res, err := g.models.GenerateContent(ctx, g.model, []*genai.Content{
		genai.NewContentFromText(text, genai.RoleUser),
	}, nil)
	if err != nil {
		return "", err
	}
	return res.Text(), nil
}

// RepairToC asks the model to normalize raw lines. Model failures are
// logged and the input is returned as is; only context cancellation is
// reported as an error.
func (g *Gemini) RepairToC(ctx context.Context, raw []string) ([]string, error) {
	if len(raw) == 0 {
		return raw, nil
	}
	out, err := g.prompt(ctx, repairPrompt+strings.Join(raw, "\n"))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return raw, ctxErr
		}
		g.log.Warn("ToC repair failed, using raw lines", zap.Int("lines", len(raw)), zap.Error(err))
		return raw, nil
	}
	lines := splitLines(stripCodeFences(out))
	if len(lines) == 0 {
		g.log.Warn("ToC repair returned nothing, using raw lines", zap.Int("lines", len(raw)))
		return raw, nil
	}
	g.log.Debug("ToC repaired", zap.Int("in", len(raw)), zap.Int("out", len(lines)))
	return lines, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if nl := strings.Index(s, "\n"); nl != -1 {
			s = s[nl+1:]
		} else {
			s = ""
		}
	}
	return strings.TrimSuffix(strings.TrimRight(s, " \t\r\n"), "```")
}

// splitLines keeps leading indentation, which carries nesting.
func splitLines(s string) []string {
	var lines []string
	for _, ln := range strings.Split(s, "\n") {
		ln = strings.TrimRight(ln, " \t\r")
		if strings.TrimSpace(ln) == "" {
			continue
		}
		lines = append(lines, ln)
	}
	return lines
}
