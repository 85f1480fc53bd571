package services

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"disasterreport/model"
)

// ReportMirror keeps a copy of reports outside the flat-file store.
type ReportMirror interface {
	Put(ctx context.Context, report model.Report) error
	SetStatus(ctx context.Context, id int64, status string) error
}

// FirestoreMirror writes reports to Collection/report_<id>.
type FirestoreMirror struct {
	client     *firestore.Client
	collection string
}

func NewFirestoreMirror(client *firestore.Client, collection string) *FirestoreMirror {
	return &FirestoreMirror{client: client, collection: collection}
}

func reportDocID(id int64) string {
	return fmt.Sprintf("report_%d", id)
}

// reportDocument is the Firestore field set for a report.
func reportDocument(r model.Report) map[string]interface{} {
	doc := map[string]interface{}{
		"ReportID":      r.ID,
		"ImageFilename": r.ImageFilename,
		"Latitude":      r.Latitude,
		"Longitude":     r.Longitude,
		"Location":      r.Location,
		"Description":   r.Description,
		"CreateAt":      time.Now(),
	}
	if r.UrgencyLevel != "" {
		doc["Severity"] = r.Severity
		doc["Humanitarian"] = r.Humanitarian
		doc["DisasterOrNot"] = r.DisasterOrNot
		doc["UrgencyLevel"] = r.UrgencyLevel
	}
	if r.Status != "" {
		doc["Status"] = r.Status
	}
	return doc
}

func (m *FirestoreMirror) Put(ctx context.Context, r model.Report) error {
	_, err := m.client.Collection(m.collection).Doc(reportDocID(r.ID)).Set(ctx, reportDocument(r))
	return err
}

func (m *FirestoreMirror) SetStatus(ctx context.Context, id int64, status string) error {
	_, err := m.client.Collection(m.collection).Doc(reportDocID(id)).Set(ctx, map[string]interface{}{
		"Status":    status,
		"updatedAt": firestore.ServerTimestamp,
	}, firestore.MergeAll)
	return err
}
