// Package gemini calls the Gemini text-completion API to rank doctors by a
// symptom description and to answer free-form questions over clinic data.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"hospital-manager/internal/model"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	model   string
}

func NewClient(apiKey, modelName string) *Client {
	return &Client{
		http:    &http.Client{Timeout: 60 * time.Second},
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		model:   modelName,
	}
}

// NewClientWithBaseURL exists for tests.
func NewClientWithBaseURL(apiKey, modelName, baseURL string) *Client {
	c := NewClient(apiKey, modelName)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// Selection is the model's answer to a doctor-ranking prompt. A Nil doctor
// id means the model could not decide; callers treat that as "no doctor
// assigned", never as an error.
type Selection struct {
	SelectedDoctorID uuid.UUID `json:"selectedDoctorId"`
	Reason           string    `json:"reason"`
}

// Unresolved is the fallback when the model's reply cannot be parsed.
func Unresolved() *Selection {
	return &Selection{SelectedDoctorID: uuid.Nil, Reason: "the doctor could not be determined"}
}

// SelectDoctor asks the model to pick the most suitable doctor for the given
// symptoms. A malformed reply degrades to Unresolved; only transport-level
// failures are returned as errors.
func (c *Client) SelectDoctor(ctx context.Context, symptoms string, doctors []*model.Doctor) (*Selection, error) {
	if len(doctors) == 0 {
		return Unresolved(), nil
	}

	var list []string
	for _, d := range doctors {
		list = append(list, fmt.Sprintf("%s:%s-%s", d.ID, d.Name, d.Specialization))
	}

	prompt := fmt.Sprintf(`You have the following doctors: %s.
Based on the patient's symptoms: %q,
choose the most suitable doctor and respond ONLY in EXACT JSON format like this:
{
  "selectedDoctorId": "doctor_id_here",
  "reason": "brief explanation of why you selected this doctor"
}`, strings.Join(list, ", "), symptoms)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var sel Selection
	if err := json.Unmarshal([]byte(stripFences(text)), &sel); err != nil {
		return Unresolved(), nil
	}
	return &sel, nil
}

// AskClinicQuestion answers a free-form question given a snapshot of the
// cached clinic data.
func (c *Client) AskClinicQuestion(ctx context.Context, question string, snapshot any) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(`You are an assistant helping with a hospital. Here is the current data: %s

Answer the following question based on this data: %q`, data, question)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text = strings.TrimSpace(text); text == "" {
		return "Sorry, I couldn't answer that question.", nil
	}
	return text, nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: unexpected status %s: %s", resp.Status, raw)
	}

	var out generateResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}

// stripFences drops the markdown code fences models wrap JSON answers in.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
