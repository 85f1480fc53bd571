package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strings"

	"disasterreport/model"
	"disasterreport/repository"
)

// ReportService submits, lists and updates disaster reports.
type ReportService struct {
	store         *repository.ReportStore
	predictor     Predictor
	mirror        ReportMirror
	notifier      Notifier
	urgentMinRank int
	logger        *slog.Logger
}

type ReportServiceOptions struct {
	// Predictor is required for the prediction variant.
	Predictor Predictor
	Mirror    ReportMirror
	Notifier  Notifier
	// UrgentMinRank is the lowest urgency rank that triggers the notifier.
	UrgentMinRank int
	Logger        *slog.Logger
}

func NewReportService(store *repository.ReportStore, opts ReportServiceOptions) (*ReportService, error) {
	if store.Variant() == model.VariantPrediction && opts.Predictor == nil {
		return nil, errors.New("prediction variant needs a predictor")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		store:         store,
		predictor:     opts.Predictor,
		mirror:        opts.Mirror,
		notifier:      opts.Notifier,
		urgentMinRank: opts.UrgentMinRank,
		logger:        logger,
	}, nil
}

func (s *ReportService) Variant() model.Variant { return s.store.Variant() }

// NewReport is a report as submitted, with its image already saved to ImagePath.
type NewReport struct {
	ImageFilename string
	ImagePath     string
	Latitude      float64
	Longitude     float64
	Location      string
	Description   string
}

// Submit classifies (prediction variant) and persists a report. When any prediction
// fails nothing is stored.
func (s *ReportService) Submit(ctx context.Context, in NewReport) (*model.Report, error) {
	if in.ImageFilename == "" {
		return nil, fmt.Errorf("%w: image is required", ErrValidation)
	}
	if !finite(in.Latitude) || !finite(in.Longitude) {
		return nil, fmt.Errorf("%w: coordinates must be finite", ErrValidation)
	}
	report := &model.Report{
		ImageFilename: in.ImageFilename,
		Latitude:      in.Latitude,
		Longitude:     in.Longitude,
		Location:      normalizeText(in.Location),
		Description:   normalizeText(in.Description),
	}

	switch s.store.Variant() {
	case model.VariantPrediction:
		image, err := os.ReadFile(in.ImagePath)
		if err != nil {
			return nil, fmt.Errorf("read uploaded image: %w", err)
		}
		pred, err := PredictAll(ctx, s.predictor, in.ImageFilename, image, report.Description)
		if err != nil {
			return nil, err
		}
		report.Severity = pred.Severity
		report.Humanitarian = pred.Humanitarian
		report.DisasterOrNot = pred.DisasterOrNot
		report.UrgencyLevel = ClassifyUrgency(pred.Humanitarian, pred.Severity).String()
	default:
		report.Status = model.StatusNotResolved
	}

	if err := s.store.Append(ctx, report); err != nil {
		return nil, err
	}
	s.logger.Info("report stored", "report_id", report.ID, "urgency_level", report.UrgencyLevel, "status", report.Status)

	if s.mirror != nil {
		if err := s.mirror.Put(ctx, *report); err != nil {
			s.logger.Warn("mirror report failed", "report_id", report.ID, "error", err)
		}
	}
	if s.notifier != nil && s.urgentMinRank > 0 && UrgencyRank(report.UrgencyLevel) >= s.urgentMinRank {
		if err := s.notifier.NotifyUrgent(ctx, *report); err != nil {
			s.logger.Warn("urgent report notification failed", "report_id", report.ID, "error", err)
		}
	}
	return report, nil
}

func (s *ReportService) List(ctx context.Context) ([]model.Report, error) {
	return s.store.ReadAll(ctx)
}

// UpdateStatus sets the status of a basic-variant report.
func (s *ReportService) UpdateStatus(ctx context.Context, id int64, status string) (*model.Report, error) {
	report, err := s.store.UpdateStatus(ctx, id, normalizeText(status))
	if err != nil {
		return nil, err
	}
	s.logger.Info("report status updated", "report_id", id, "status", report.Status)
	if s.mirror != nil {
		if err := s.mirror.SetStatus(ctx, id, report.Status); err != nil {
			s.logger.Warn("mirror status failed", "report_id", id, "error", err)
		}
	}
	return report, nil
}

type ReportSummary struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"by_status,omitempty"`
	ByUrgency map[string]int `json:"by_urgency,omitempty"`
}

func (s *ReportService) Summary(ctx context.Context) (ReportSummary, error) {
	reports, err := s.store.ReadAll(ctx)
	if err != nil {
		return ReportSummary{}, err
	}
	return SummarizeReports(s.store.Variant(), reports), nil
}

// SummarizeReports counts reports by status (basic) or urgency level (prediction).
func SummarizeReports(variant model.Variant, reports []model.Report) ReportSummary {
	sum := ReportSummary{Total: len(reports)}
	if variant == model.VariantPrediction {
		sum.ByUrgency = make(map[string]int)
		for _, r := range reports {
			sum.ByUrgency[r.UrgencyLevel]++
		}
		return sum
	}
	sum.ByStatus = make(map[string]int)
	for _, r := range reports {
		sum.ByStatus[r.Status]++
	}
	return sum
}

// normalizeText folds CRLF to LF until none is left, so "\r\r\n" ends up as "\n"
// just as the CSV reader would return it.
func normalizeText(s string) string {
	for strings.Contains(s, "\r\n") {
		s = strings.ReplaceAll(s, "\r\n", "\n")
	}
	return s
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
