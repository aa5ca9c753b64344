package ollama

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/ollama/ollama/envconfig"
)

// Client translates and rewrites question text through a local ollama
// model. The underlying API client is created on first use and cached
// for the process lifetime; initialization is idempotent.
type Client struct {
	host    string
	model   string
	timeout time.Duration

	once    sync.Once
	api     *api.Client
	initErr error
}

// Config configures the ollama translation adapter. An empty Host
// falls back to the OLLAMA_HOST environment.
type Config struct {
	Host    string
	Model   string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	model := cfg.Model
	if model == "" {
		model = "aya:8b"
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &Client{host: cfg.Host, model: model, timeout: timeout}
}

func (c *Client) client() (*api.Client, error) {
	c.once.Do(func() {
		hostURL := envconfig.Host()
		if c.host != "" {
			parsed, err := url.Parse(c.host)
			if err != nil {
				c.initErr = fmt.Errorf("parse ollama host: %w", err)
				return
			}
			hostURL = parsed
		}
		c.api = api.NewClient(hostURL, http.DefaultClient)
	})
	return c.api, c.initErr
}

// EnToUr translates an English question to Urdu.
func (c *Client) EnToUr(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	prompt := "Translate the following question from English to Urdu. Reply with the Urdu translation only, nothing else.\n\n" + text
	return c.generate(prompt)
}

// UrToEn translates an Urdu answer to English.
func (c *Client) UrToEn(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	prompt := "Translate the following text from Urdu to English. Reply with the English translation only, nothing else.\n\n" + text
	return c.generate(prompt)
}

// Rewrite reformats a question into formal Urdu phrasing while
// preserving its meaning.
func (c *Client) Rewrite(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return text, nil
	}
	prompt := "نیچے دیے گئے سوال کو بامعنی رکھ کر درست ہجے، درست نحوی ترتیب اور باوقار اردو میں لکھیں۔ صرف سوال لکھیں۔\n\nسوال: " + text
	return c.generate(prompt)
}

func (c *Client) generate(prompt string) (string, error) {
	client, err := c.client()
	if err != nil {
		return "", err
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	stream := false
	req := api.GenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: &stream,
		Options: map[string]any{
			"temperature": 0.1,
		},
	}
	var sb strings.Builder
	err = client.Generate(ctx, &req, func(resp api.GenerateResponse) error {
		_, err := sb.WriteString(resp.Response)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("ollama generate: %w", err)
	}
	out := strings.TrimSpace(sb.String())
	if out == "" {
		return "", fmt.Errorf("ollama generate: empty response")
	}
	return out, nil
}
