package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"studyguide/internal/model"
)

// FileName is the name the progress export is saved under.
const FileName = "adv382j-study-progress.json"

// timeFormat matches what browsers produce for Date.toISOString.
const timeFormat = "2006-01-02T15:04:05.000Z07:00"

// Progress is the part of the progress store export needs.
type Progress interface {
	ReviewedIDs() []string
	FavoritedIDs() []string
}

// FileSaver hands a finished document to the host environment.
type FileSaver interface {
	Save(name string, data []byte) (string, error)
}

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

type Service struct {
	progress Progress
	saver    FileSaver
	clock    Clock
}

func NewService(progress Progress, saver FileSaver, clock Clock) *Service {
	if clock == nil {
		clock = SystemClock
	}
	return &Service{progress: progress, saver: saver, clock: clock}
}

// Snapshot collects the flagged ids and stamps the current time.
func (s *Service) Snapshot() model.ExportSnapshot {
	return model.ExportSnapshot{
		Reviewed:   s.progress.ReviewedIDs(),
		Favorites:  s.progress.FavoritedIDs(),
		ExportDate: s.clock.Now().UTC().Format(timeFormat),
	}
}

// Export writes the snapshot as indented JSON and returns where it went.
func (s *Service) Export() (string, error) {
	data, err := Marshal(s.Snapshot())
	if err != nil {
		return "", err
	}
	path, err := s.saver.Save(FileName, data)
	if err != nil {
		return "", fmt.Errorf("unable to save progress export: %w", err)
	}
	return path, nil
}

func Marshal(snap model.ExportSnapshot) ([]byte, error) {
	if snap.Reviewed == nil {
		snap.Reviewed = []string{}
	}
	if snap.Favorites == nil {
		snap.Favorites = []string{}
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error marshaling export data: %w", err)
	}
	return append(data, '\n'), nil
}

// DirSaver writes files into a directory, replacing existing ones.
type DirSaver struct {
	Dir string
}

func (d DirSaver) Save(name string, data []byte) (string, error) {
	if err := os.MkdirAll(d.Dir, 0755); err != nil {
		return "", fmt.Errorf("error creating export directory: %w", err)
	}
	path := filepath.Join(d.Dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("error writing %s: %w", path, err)
	}
	return path, nil
}
