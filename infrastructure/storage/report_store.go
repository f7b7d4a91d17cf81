// Package storage persists scenario run reports as JSON files.
package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ui_automation/domain/entities"
	"ui_automation/domain/errs"
	"ui_automation/domain/interfaces"
)

type reportStore struct {
	dir string
}

var _ interfaces.ReportStore = (*reportStore)(nil)

// DefaultReportDir - returns ~/.ui_automation/reports
func DefaultReportDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	return filepath.Join(homeDir, ".ui_automation", "reports")
}

// NewReportStore - creates report storage rooted at dir
func NewReportStore(dir string) (interfaces.ReportStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	return &reportStore{dir: dir}, nil
}

func (s *reportStore) path(id string) (string, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return "", errs.InvalidArgumentf("report id", "%q", id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// SaveReport - saves a run report to <dir>/<id>.json
func (s *reportStore) SaveReport(report *entities.RunReport) error {
	path, err := s.path(report.ID)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return os.Rename(tmp, path)
}

// LoadReport - loads a run report by id
func (s *reportStore) LoadReport(id string) (*entities.RunReport, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.New(errs.NotFound, fmt.Sprintf("report %s not found", id))
		}
		return nil, err
	}

	var report entities.RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", id, err)
	}
	return &report, nil
}

// ListReports - returns report ids, most recently written first
func (s *reportStore) ListReports() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}

	type stored struct {
		id    string
		mtime int64
	}
	var reports []stored
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		reports = append(reports, stored{id: strings.TrimSuffix(name, ".json"), mtime: info.ModTime().UnixNano()})
	}
	sort.SliceStable(reports, func(i, j int) bool {
		if reports[i].mtime != reports[j].mtime {
			return reports[i].mtime > reports[j].mtime
		}
		return reports[i].id > reports[j].id
	})

	ids := make([]string, len(reports))
	for i, r := range reports {
		ids[i] = r.id
	}
	return ids, nil
}
