package interfaces

import "ui_automation/domain/entities"

// ReportStore persists scenario run reports
type ReportStore interface {
	// SaveReport saves a run report
	SaveReport(report *entities.RunReport) error

	// LoadReport loads a run report by id
	LoadReport(id string) (*entities.RunReport, error)

	// ListReports returns stored report ids, newest first
	ListReports() ([]string, error)
}
