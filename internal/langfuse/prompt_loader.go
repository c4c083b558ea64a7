package langfuse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// PromptSource says where a loaded prompt came from.
type PromptSource string

const (
	SourceLangfuse PromptSource = "langfuse"
	SourceFile     PromptSource = "file"
	SourceBuiltin  PromptSource = "builtin"
)

// promptFetchTimeout bounds a single prompt API call.
const promptFetchTimeout = 5 * time.Second

// PromptLoaderConfig describes where to look for the sleep estimator prompt.
// Lookup order is Langfuse, then the local copy at CachePath, then Fallback.
type PromptLoaderConfig struct {
	BaseURL   string
	PublicKey string
	SecretKey string

	PromptName  string
	PromptLabel string
	// CachePath receives a copy of every prompt fetched from Langfuse and is read
	// when Langfuse is unreachable.
	CachePath string
	// Fallback is used when neither Langfuse nor the local copy are available.
	Fallback string

	HTTPClient *http.Client
}

// Prompt is a system prompt together with its provenance.
type Prompt struct {
	Text    string
	Version int
	Source  PromptSource
}

// Label identifies the prompt in logs, e.g. "langfuse v3" or "file".
func (p Prompt) Label() string {
	if p.Version > 0 {
		return fmt.Sprintf("%s v%d", p.Source, p.Version)
	}
	return string(p.Source)
}

var (
	errLangfuseDisabled = errors.New("langfuse integration disabled")
	// ErrNoPrompt is returned when no source produced a prompt.
	ErrNoPrompt = errors.New("no prompt available")
)

// LoadPrompt resolves the prompt from the first source that has one.
func LoadPrompt(ctx context.Context, cfg PromptLoaderConfig) (Prompt, error) {
	if cfg.PromptName != "" {
		p, err := fetchPrompt(ctx, cfg)
		switch {
		case err == nil:
			if err := writeCache(cfg.CachePath, p.Text); err != nil {
				log.Printf("[langfuse] failed to cache prompt %s locally: %v", cfg.PromptName, err)
			}
			return p, nil
		case !errors.Is(err, errLangfuseDisabled):
			log.Printf("[langfuse] prompt %s fetch failed: %v", cfg.PromptName, err)
		}
	}

	if cfg.CachePath != "" {
		text, err := readCache(cfg.CachePath)
		if err == nil {
			return Prompt{Text: text, Source: SourceFile}, nil
		}
		log.Printf("[langfuse] local prompt unavailable: %v", err)
	}

	if strings.TrimSpace(cfg.Fallback) != "" {
		return Prompt{Text: cfg.Fallback, Source: SourceBuiltin}, nil
	}
	return Prompt{}, ErrNoPrompt
}

// promptResponse is the subset of GET /api/public/v2/prompts/{name} we use.
type promptResponse struct {
	Type    string          `json:"type"`
	Version int             `json:"version"`
	Prompt  json.RawMessage `json:"prompt"`
}

func promptURL(cfg PromptLoaderConfig) (string, error) {
	u, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid LANGFUSE_BASE_URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/api/public/v2/prompts/" + url.PathEscape(cfg.PromptName)
	if cfg.PromptLabel != "" {
		q := u.Query()
		q.Set("label", cfg.PromptLabel)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func fetchPrompt(ctx context.Context, cfg PromptLoaderConfig) (Prompt, error) {
	if cfg.BaseURL == "" || cfg.PublicKey == "" || cfg.SecretKey == "" {
		return Prompt{}, errLangfuseDisabled
	}

	endpoint, err := promptURL(cfg)
	if err != nil {
		return Prompt{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, promptFetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Prompt{}, fmt.Errorf("create prompt request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cfg.PublicKey, cfg.SecretKey)

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return Prompt{}, fmt.Errorf("call prompt API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Prompt{}, fmt.Errorf("prompt API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var pr promptResponse
	if err := json.NewDecoder(resp.Body).Decode(&pr); err != nil {
		return Prompt{}, fmt.Errorf("decode prompt response: %w", err)
	}

	text, err := pr.text()
	if err != nil {
		return Prompt{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Prompt{}, fmt.Errorf("prompt %s is empty", cfg.PromptName)
	}
	return Prompt{Text: text, Version: pr.Version, Source: SourceLangfuse}, nil
}

// text renders text prompts as-is and chat prompts as "ROLE: content" blocks.
func (pr promptResponse) text() (string, error) {
	switch pr.Type {
	case "", "text":
		var s string
		if err := json.Unmarshal(pr.Prompt, &s); err != nil {
			return "", fmt.Errorf("parse text prompt: %w", err)
		}
		return s, nil
	case "chat":
		var msgs []chatMessage
		if err := json.Unmarshal(pr.Prompt, &msgs); err != nil {
			return "", fmt.Errorf("parse chat prompt: %w", err)
		}
		parts := make([]string, 0, len(msgs))
		for _, m := range msgs {
			if block := m.render(); block != "" {
				parts = append(parts, block)
			}
		}
		return strings.Join(parts, "\n\n"), nil
	default:
		return "", fmt.Errorf("unsupported prompt type %q", pr.Type)
	}
}

type chatMessage struct {
	Type    string `json:"type"`
	Role    string `json:"role"`
	Content string `json:"content"`
	Name    string `json:"name"`
}

func (m chatMessage) render() string {
	content := m.Content
	if m.Type == "placeholder" {
		if m.Name == "" {
			return ""
		}
		content = "{{" + m.Name + "}}"
	}
	if content == "" {
		return ""
	}
	role := m.Role
	if role == "" {
		role = "message"
	}
	return strings.ToUpper(role) + ": " + content
}

func readCache(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", fmt.Errorf("%s is empty", path)
	}
	return string(data), nil
}

func writeCache(path, text string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(text), 0o600)
}
