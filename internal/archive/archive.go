// Package archive keeps a copy of every match run in Cloud Storage.
package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"cloud.google.com/go/storage"
	"github.com/shinyyama/crib-match-backend/internal/model"
)

type Archiver interface {
	Put(ctx context.Context, runID string, matches []model.Match) error
}

type Snapshot struct {
	RunID       string        `json:"run_id"`
	GeneratedAt time.Time     `json:"generated_at"`
	Count       int           `json:"count"`
	Matches     []model.Match `json:"matches"`
}

func ObjectPath(runID string) string {
	return fmt.Sprintf("matches/%s.json", runID)
}

// Encode writes snap as a single JSON document.
func Encode(w io.Writer, snap Snapshot) error {
	if snap.Matches == nil {
		snap.Matches = []model.Match{}
	}
	snap.Count = len(snap.Matches)
	return json.NewEncoder(w).Encode(snap)
}

type GCSArchiver struct {
	client *storage.Client
	bucket string
	now    func() time.Time
}

func NewGCSArchiver(ctx context.Context, bucket string) (*GCSArchiver, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &GCSArchiver{client: client, bucket: bucket, now: time.Now}, nil
}

func (a *GCSArchiver) Put(ctx context.Context, runID string, matches []model.Match) error {
	w := a.client.Bucket(a.bucket).Object(ObjectPath(runID)).NewWriter(ctx)
	w.ContentType = "application/json"
	w.Metadata = map[string]string{
		"run_id":      runID,
		"match_count": strconv.Itoa(len(matches)),
	}
	if err := Encode(w, Snapshot{RunID: runID, GeneratedAt: a.now().UTC(), Matches: matches}); err != nil {
		_ = w.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("upload %s: %w", ObjectPath(runID), err)
	}
	return nil
}

func (a *GCSArchiver) Close() error {
	return a.client.Close()
}
