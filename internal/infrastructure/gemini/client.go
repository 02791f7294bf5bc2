package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"google.golang.org/api/option"
)

const (
	modelName        = "gemini-1.5-pro"
	maxIcebreakers   = 3
	breakerTimeout   = 30 * time.Second
	breakerThreshold = 3
)

var ErrNoAPIKey = errors.New("gemini api key is not set")

type GeminiClient struct {
	client *genai.Client
	model  *genai.GenerativeModel
	cb     *gobreaker.CircuitBreaker
	logger *logrus.Logger
}

func NewGeminiClient(apiKey string, logger *logrus.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)

	return &GeminiClient{
		client: client,
		model:  model,
		cb:     newCircuitBreaker("gemini", logger),
		logger: logger,
	}, nil
}

func newCircuitBreaker(name string, logger *logrus.Logger) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     breakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerThreshold
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.WithFields(logrus.Fields{
					"breaker": name,
					"from":    from.String(),
					"to":      to.String(),
				}).Warn("circuit breaker state changed")
			},
		},
	)
}

func (c *GeminiClient) Close() {
	c.client.Close()
}

// GenerateIcebreakers asks the model for opening lines user 1 could send to user 2.
func (c *GeminiClient) GenerateIcebreakers(ctx context.Context, user1Interests, user2Interests []string) ([]string, error) {
	prompt := fmt.Sprintf(`
		Generate %d creative icebreaker messages for a dating app match between two students.
		User 1 Interests: %v
		User 2 Interests: %v
		
		Task: Create %d distinct opening lines that User 1 could send to User 2.
		Focus on shared interests or interesting contrasts.
		Language: Russian.
		Output: JSON array of strings. Example: ["Hi...", "Hello..."]
	`, maxIcebreakers, user1Interests, user2Interests, maxIcebreakers)

	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.generate(ctx, prompt)
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}

	return parseIcebreakers(result.(string))
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no content generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}

// parseIcebreakers accepts a JSON array, optionally fenced as markdown, and
// falls back to one line per icebreaker.
func parseIcebreakers(text string) ([]string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var icebreakers []string
	if err := json.Unmarshal([]byte(text), &icebreakers); err != nil {
		for _, line := range strings.Split(text, "\n") {
			line = strings.TrimSpace(line)
			if line != "" && !strings.HasPrefix(line, "[") && !strings.HasSuffix(line, "]") {
				icebreakers = append(icebreakers, line)
			}
		}
		if len(icebreakers) == 0 {
			return nil, fmt.Errorf("failed to parse icebreakers: %w", err)
		}
	}

	if len(icebreakers) > maxIcebreakers {
		icebreakers = icebreakers[:maxIcebreakers]
	}
	return icebreakers, nil
}
