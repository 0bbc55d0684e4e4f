package service

import (
	"bytes"
	"context"
	"html/template"
	"strings"
	"time"

	"github.com/Gaetk-hub/taxfree-rdc-desktop-sub003/internal/repository"
)

type ReportService struct {
	statsRepo *repository.StatsRepository
}

func NewReportService(statsRepo *repository.StatsRepository) *ReportService {
	return &ReportService{statsRepo: statsRepo}
}

type ReportData struct {
	GeneratedAt string
	Totals      repository.ActivityTotals
	ByStatus    []repository.StatusCount
	ByCategory  []repository.CategoryActivity
}

// GenerateReport assembles the operator activity report: overall totals,
// forms by status, and sale volume per product category.
func (s *ReportService) GenerateReport(ctx context.Context) (*ReportData, error) {
	totals, err := s.statsRepo.Totals(ctx)
	if err != nil {
		return nil, err
	}

	byStatus, err := s.statsRepo.FormCountsByStatus(ctx)
	if err != nil {
		return nil, err
	}

	byCategory, err := s.statsRepo.ActivityByCategory(ctx)
	if err != nil {
		return nil, err
	}

	return &ReportData{
		GeneratedAt: time.Now().Format("2006-01-02 15:04:05 MST"),
		Totals:      totals,
		ByStatus:    byStatus,
		ByCategory:  byCategory,
	}, nil
}

var ReportTemplate string // Set from main via embed

func (s *ReportService) RenderHTML(data *ReportData) (string, error) {
	funcMap := template.FuncMap{
		"toLower": strings.ToLower,
	}

	tmpl, err := template.New("report").Funcs(funcMap).Parse(ReportTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}
