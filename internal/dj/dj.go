// Package dj is the AI collaborator. It asks a generative language
// model for playlist recommendations, homepage picks, lyrics, and
// radio-host chatter. Every call degrades to a harmless default on
// failure; the player never depends on the model being reachable.
package dj

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/codgamerofficial/sonicstream/internal/core"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel   = "gemini-2.5-flash"

	chatPersona = "You are Sonic, a cool, energetic radio DJ for a music streaming app. Keep answers short, punchy, and music-focused."

	chatFallback   = "Static on the line... try again?"
	lyricsFallback = "Could not load lyrics."
)

// Searcher resolves a free-text query into playable tracks. The search
// service satisfies this.
type Searcher interface {
	Search(ctx context.Context, query string) []core.Track
}

// Client talks to the generative language API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// New creates a DJ client. An empty model selects the default.
func New(apiKey, model string) *Client {
	if model == "" {
		model = defaultModel
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

// SetBaseURL overrides the API endpoint. Used by tests.
func (c *Client) SetBaseURL(u string) {
	c.baseURL = strings.TrimSuffix(u, "/")
}

// Recommend asks for a five-song playlist matching a mood and genre.
// Returns an empty slice on any failure.
func (c *Client) Recommend(ctx context.Context, mood, genre string) []core.Hint {
	prompt := fmt.Sprintf(
		`Generate a playlist of 5 popular songs for a mood: %q and genre: %q. Return the result in JSON format with songName, artist, and a short 5-word reason why it fits.`,
		mood, genre)

	text, err := c.generate(ctx, prompt, "", hintSchema(true))
	if err != nil {
		slog.Warn("recommendation request failed", "mood", mood, "genre", genre, "error", err)
		return nil
	}

	var hints []core.Hint
	if err := json.Unmarshal([]byte(text), &hints); err != nil {
		slog.Warn("unparseable recommendation payload", "error", err)
		return nil
	}
	return hints
}

// HomeHints asks for six trending or classic hits for the home surface.
func (c *Client) HomeHints(ctx context.Context) []core.Hint {
	prompt := `List 6 trending or classic hit songs that are perfect for a general music app homepage. Return JSON with songName and artist.`

	text, err := c.generate(ctx, prompt, "", hintSchema(false))
	if err != nil {
		slog.Warn("home picks request failed", "error", err)
		return nil
	}

	var hints []core.Hint
	if err := json.Unmarshal([]byte(text), &hints); err != nil {
		return nil
	}
	return hints
}

// Chat sends a message to the DJ persona and returns its reply.
func (c *Client) Chat(ctx context.Context, message string) string {
	text, err := c.generate(ctx, message, chatPersona, nil)
	if err != nil || text == "" {
		return chatFallback
	}
	return text
}

// Lyrics fetches the lyrics for a song. Instrumental or unknown songs
// come back as a placeholder from the model itself; transport failures
// come back as a local placeholder.
func (c *Client) Lyrics(ctx context.Context, title, artist string) string {
	prompt := fmt.Sprintf(
		`Provide the lyrics for the song %q by %q. Format them nicely with stanzas separated by newlines. If the song is instrumental or lyrics are unavailable, say "Lyrics not available for this track." Do not include any intro text like "Here are the lyrics", just the lyrics themselves.`,
		title, artist)

	text, err := c.generate(ctx, prompt, "", nil)
	if err != nil || text == "" {
		return lyricsFallback
	}
	return text
}

// ResolveHints turns recommendation hints into playable tracks by
// searching the catalog for each one. Hints that resolve to nothing
// are dropped.
func ResolveHints(ctx context.Context, hints []core.Hint, searcher Searcher) []core.Track {
	tracks := make([]core.Track, 0, len(hints))
	for _, h := range hints {
		found := searcher.Search(ctx, h.Query())
		if len(found) == 0 {
			continue
		}
		tracks = append(tracks, found[0])
	}
	return tracks
}

// Wire types for the generateContent endpoint.

type generateRequest struct {
	Contents          []content         `json:"contents"`
	SystemInstruction *content          `json:"systemInstruction,omitempty"`
	GenerationConfig  *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMIMEType string          `json:"responseMimeType,omitempty"`
	ResponseSchema   json.RawMessage `json:"responseSchema,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func hintSchema(withReason bool) json.RawMessage {
	required := `["songName","artist"]`
	props := `{"songName":{"type":"STRING"},"artist":{"type":"STRING"}`
	if withReason {
		required = `["songName","artist","reason"]`
		props += `,"reason":{"type":"STRING"}`
	}
	props += `}`
	return json.RawMessage(fmt.Sprintf(
		`{"type":"ARRAY","items":{"type":"OBJECT","properties":%s,"required":%s}}`,
		props, required))
}

func (c *Client) generate(ctx context.Context, prompt, system string, schema json.RawMessage) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("ai not configured")
	}

	body := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	if system != "" {
		body.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}
	if schema != nil {
		body.GenerationConfig = &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   schema,
		}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	reqURL := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai api status %d", resp.StatusCode)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", err
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("ai api returned no candidates")
	}

	return strings.TrimSpace(decoded.Candidates[0].Content.Parts[0].Text), nil
}
