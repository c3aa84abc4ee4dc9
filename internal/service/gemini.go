package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/Ismailk12/ASK-AI/internal/domain"
)

const defaultGeminiURL = "https://generativelanguage.googleapis.com"

// GeminiClient calls the generateContent endpoint with google_search
// grounding enabled.
//
// Generate never returns an error: any transport or API failure is folded
// into the reply text as "Error: ...". The orchestration layer always gets
// a usable text field.
type GeminiClient struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	return &GeminiClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultGeminiURL,
		http:    &http.Client{},
	}
}

type generateRequest struct {
	Contents []geminiContent `json:"contents"`
	Tools    []geminiTool    `json:"tools,omitempty"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiTool struct {
	GoogleSearch struct{} `json:"google_search"`
}

type generateResponse struct {
	Candidates []struct {
		Content           geminiContent      `json:"content"`
		GroundingMetadata *groundingMetadata `json:"groundingMetadata"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type groundingMetadata struct {
	GroundingChunks []struct {
		Web *struct {
			Title string `json:"title"`
			URI   string `json:"uri"`
		} `json:"web"`
	} `json:"groundingChunks"`
}

func (c *GeminiClient) Generate(ctx context.Context, prompt string) domain.Reply {
	reqBody := generateRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		Tools:    []geminiTool{{}},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return errorReply(err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errorReply(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return errorReply(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errorReply(err)
	}

	var result generateResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return errorReply(fmt.Errorf("decode response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		if result.Error != nil && result.Error.Message != "" {
			return errorReply(fmt.Errorf("%s", result.Error.Message))
		}
		return errorReply(fmt.Errorf("gemini API returned %d", resp.StatusCode))
	}

	return domain.Reply{
		Text:      extractText(&result),
		Citations: extractCitations(&result),
	}
}

func errorReply(err error) domain.Reply {
	log.Printf("[ERROR] Gemini generate failed: %v", err)
	return domain.Reply{Text: "Error: " + err.Error()}
}

// extractText joins the text parts of the first candidate. An absent or
// empty candidate is not an error, just an empty answer.
func extractText(resp *generateResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return strings.TrimSpace(b.String())
}

// extractCitations walks grounding metadata, keeping only chunks that
// carry a web source. Missing metadata yields an empty list.
func extractCitations(resp *generateResponse) []domain.Citation {
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var citations []domain.Citation
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk.Web == nil {
			continue
		}
		citations = append(citations, domain.Citation{
			Title: chunk.Web.Title,
			URI:   chunk.Web.URI,
		})
	}
	return citations
}
