package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// Prediction models served by the remote classifier.
const (
	ModelDamage       = "damage"
	ModelHumanitarian = "humanitarian"
	ModelText         = "text"
)

// Predictor labels report content.
type Predictor interface {
	PredictImage(ctx context.Context, model, filename string, image []byte) (string, error)
	PredictText(ctx context.Context, text string) (string, error)
}

// Prediction is the outcome of the three classifier calls for one report.
type Prediction struct {
	Severity      string
	Humanitarian  string
	DisasterOrNot string
}

// PredictionClient talks to the remote classifier over multipart/form-data.
type PredictionClient struct {
	URL     string
	Timeout time.Duration
	HTTP    *http.Client
}

func NewPredictionClient(url string, timeout time.Duration) *PredictionClient {
	return &PredictionClient{URL: url, Timeout: timeout, HTTP: &http.Client{}}
}

type predictionResponse struct {
	PredictedLabel *string `json:"predicted_label"`
}

func (p *PredictionClient) PredictImage(ctx context.Context, model, filename string, image []byte) (string, error) {
	return p.post(ctx, model, func(w *multipart.Writer) error {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return err
		}
		_, err = part.Write(image)
		return err
	})
}

func (p *PredictionClient) PredictText(ctx context.Context, text string) (string, error) {
	return p.post(ctx, ModelText, func(w *multipart.Writer) error {
		return w.WriteField("data", text)
	})
}

func (p *PredictionClient) post(ctx context.Context, model string, payload func(*multipart.Writer) error) (string, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if err := w.WriteField("model", model); err != nil {
		return "", err
	}
	if err := payload(w); err != nil {
		return "", fmt.Errorf("build %s prediction request: %w", model, err)
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	client := p.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s prediction: %w", model, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%s prediction: status %d: %s", model, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out predictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%s prediction: decode response: %w", model, err)
	}
	if out.PredictedLabel == nil || *out.PredictedLabel == "" {
		return "", fmt.Errorf("%s prediction: response has no predicted_label", model)
	}
	return *out.PredictedLabel, nil
}

// PredictAll runs the damage, humanitarian and text models in that order.
// The first failure aborts the rest.
func PredictAll(ctx context.Context, p Predictor, filename string, image []byte, description string) (Prediction, error) {
	var pred Prediction
	var err error
	if pred.Severity, err = p.PredictImage(ctx, ModelDamage, filename, image); err != nil {
		return Prediction{}, err
	}
	if pred.Humanitarian, err = p.PredictImage(ctx, ModelHumanitarian, filename, image); err != nil {
		return Prediction{}, err
	}
	if pred.DisasterOrNot, err = p.PredictText(ctx, description); err != nil {
		return Prediction{}, err
	}
	return pred, nil
}
