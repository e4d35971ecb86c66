// Package runlog persists per-file outcomes across batch invocations.
// The log is a single JSON array at <output>/processing_log.json; each
// completed file appends an entry and rewrites the array, so an interrupted
// batch loses at most the file that was in flight.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"docpipe/internal/models"
)

const logFileName = "processing_log.json"

// Store is the append-oriented run log for one output directory.
type Store struct {
	path    string
	entries []models.Outcome
}

// Open loads the existing run log under outputDir, or starts an empty one. A
// missing or malformed log file is treated as empty so a corrupted log never
// blocks a batch; it only costs re-processing.
func Open(outputDir string) *Store {
	s := &Store{path: filepath.Join(outputDir, logFileName)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("run log %s unreadable, starting fresh: %v", s.path, err)
		}
		return s
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		log.Warnf("run log %s malformed, starting fresh: %v", s.path, err)
		s.entries = nil
	}
	return s
}

// Entries returns the loaded history plus anything appended this run.
func (s *Store) Entries() []models.Outcome {
	return s.entries
}

// Append records one outcome and rewrites the log on disk.
func (s *Store) Append(out models.Outcome) error {
	s.entries = append(s.entries, out)

	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode run log: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write run log: %w", err)
	}
	return nil
}

// Successes indexes the latest successful entry per input base name. The base
// name, not the full path, is the resume key: the same corpus may be mounted
// at a different prefix between runs.
func (s *Store) Successes() map[string]models.Outcome {
	done := make(map[string]models.Outcome)
	for _, e := range s.entries {
		if e.Success {
			done[filepath.Base(e.FilePath)] = e
		}
	}
	return done
}

// WriteReport persists a batch summary next to the run log as
// batch_report_<stamp>.json and returns its path.
func WriteReport(outputDir string, report models.BatchReport) (string, error) {
	stamp := report.Timestamp.Format("20060102_150405")
	path := filepath.Join(outputDir, fmt.Sprintf("batch_report_%s.json", stamp))

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode batch report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write batch report: %w", err)
	}
	return path, nil
}
