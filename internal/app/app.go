package app

import (
	"context"
	"fmt"

	"insight-alpha/config"
	"insight-alpha/models"
)

// AnalyzerInterface defines the analysis operations needed by App
type AnalyzerInterface interface {
	Analyze(ctx context.Context, ticker string) (*models.Analysis, error)
}

// ReportInterface defines the report rendering operations needed by App
type ReportInterface interface {
	Build(analysis *models.Analysis) ([]byte, error)
}

// App struct holds application dependencies using interfaces for testability
type App struct {
	cfg         *config.Config
	analyzer    AnalyzerInterface
	reports     ReportInterface
	analysisSem chan struct{}
}

// New creates a new App application struct
func New(cfg *config.Config, analyzer AnalyzerInterface, reports ReportInterface) *App {
	return &App{
		cfg:         cfg,
		analyzer:    analyzer,
		reports:     reports,
		analysisSem: make(chan struct{}, cfg.Analysis.ConcurrencyLimit),
	}
}

// AnalyzeTicker runs the full analysis pipeline for a ticker
func (a *App) AnalyzeTicker(ctx context.Context, ticker string) (*models.Analysis, error) {
	if a.analyzer == nil {
		return nil, fmt.Errorf("analyzer not initialized")
	}

	select {
	case a.analysisSem <- struct{}{}:
		defer func() { <-a.analysisSem }()
	default:
		return nil, ErrBusy
	}

	return a.analyzer.Analyze(ctx, ticker)
}

// BuildReport runs an analysis and renders it as an xlsx workbook
func (a *App) BuildReport(ctx context.Context, ticker string) ([]byte, *models.Analysis, error) {
	if a.reports == nil {
		return nil, nil, fmt.Errorf("report generator not initialized")
	}

	analysis, err := a.AnalyzeTicker(ctx, ticker)
	if err != nil {
		return nil, nil, err
	}

	data, err := a.reports.Build(analysis)
	if err != nil {
		return nil, nil, fmt.Errorf("render report: %w", err)
	}
	return data, analysis, nil
}

// AnalysisSemCapacity returns the capacity of the analysis semaphore (for testing)
func (a *App) AnalysisSemCapacity() int {
	return cap(a.analysisSem)
}
