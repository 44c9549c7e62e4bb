package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// TriviaQuestion is one item from the external provider: a question, its
// correct answer and three incorrect answers.
type TriviaQuestion struct {
	Text             string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// QuestionProvider fetches trivia questions matching a category code and
// difficulty level. Implementations must return exactly count items or an
// error.
type QuestionProvider interface {
	Fetch(ctx context.Context, category, difficulty string, count int) ([]TriviaQuestion, error)
}

// OpenTDBClient talks to an opentdb.com-compatible trivia API.
type OpenTDBClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewOpenTDBClient(baseURL string) *OpenTDBClient {
	return &OpenTDBClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
	}
}

type openTDBResponse struct {
	ResponseCode int             `json:"response_code"`
	Results      []openTDBResult `json:"results"`
}

type openTDBResult struct {
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

func (c *OpenTDBClient) Fetch(ctx context.Context, category, difficulty string, count int) ([]TriviaQuestion, error) {
	params := url.Values{}
	params.Set("amount", strconv.Itoa(count))
	params.Set("category", category)
	params.Set("difficulty", difficulty)
	params.Set("type", "multiple")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trivia API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trivia API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed openTDBResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse trivia API response: %w", err)
	}

	// response_code 0 is success; anything else means the provider could not
	// satisfy the query (not enough questions, bad parameter, ...).
	if parsed.ResponseCode != 0 {
		return nil, fmt.Errorf("trivia API returned response_code %d", parsed.ResponseCode)
	}

	if len(parsed.Results) != count {
		return nil, fmt.Errorf("trivia API returned %d results, want %d", len(parsed.Results), count)
	}

	questions := make([]TriviaQuestion, 0, count)
	for _, r := range parsed.Results {
		if len(r.IncorrectAnswers) != 3 {
			return nil, fmt.Errorf("trivia API returned %d incorrect answers, want 3", len(r.IncorrectAnswers))
		}
		questions = append(questions, TriviaQuestion{
			Text:             r.Question,
			CorrectAnswer:    r.CorrectAnswer,
			IncorrectAnswers: r.IncorrectAnswers,
		})
	}
	return questions, nil
}
