package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lmsforge/packlint/internal/domain"
)

// SQLiteScanRepo implements ScanRepo using a SQLite database.
type SQLiteScanRepo struct {
	db *sql.DB
}

// NewSQLiteScanRepo creates a new SQLiteScanRepo.
func NewSQLiteScanRepo(db *sql.DB) *SQLiteScanRepo {
	return &SQLiteScanRepo{db: db}
}

const reportColumns = `id, package_path, module_type, edition, identifier, title, description, launch_url, status, scanned_at`

func (r *SQLiteScanRepo) Save(ctx context.Context, report *domain.ScanReport) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	query := `INSERT INTO scan_reports (` + reportColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, query,
		report.ID,
		report.PackagePath,
		string(report.ModuleType),
		string(report.Edition),
		report.Metadata.Identifier,
		report.Metadata.Title,
		report.Metadata.Description,
		report.Metadata.LaunchURL,
		string(report.Status),
		report.ScannedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting scan report: %w", err)
	}

	issueQuery := `INSERT INTO scan_issues (report_id, position, code, severity, message, location, suggested_fix)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i, issue := range report.Result.Issues {
		_, err = tx.ExecContext(ctx, issueQuery,
			report.ID, i, issue.Code, string(issue.Severity), issue.Message, issue.Location, issue.SuggestedFix)
		if err != nil {
			return fmt.Errorf("inserting scan issue %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing scan report: %w", err)
	}
	committed = true
	return nil
}

func (r *SQLiteScanRepo) GetByID(ctx context.Context, id string) (*domain.ScanReport, error) {
	query := `SELECT ` + reportColumns + ` FROM scan_reports WHERE id = ?`
	report, err := r.scanReport(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadIssues(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *SQLiteScanRepo) List(ctx context.Context, limit int) ([]*domain.ScanReport, error) {
	query := `SELECT ` + reportColumns + ` FROM scan_reports ORDER BY scanned_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing scan reports: %w", err)
	}
	defer rows.Close()

	var reports []*domain.ScanReport
	for rows.Next() {
		report, err := r.scanReportFromRows(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating scan reports: %w", err)
	}
	for _, report := range reports {
		if err := r.loadIssues(ctx, report); err != nil {
			return nil, err
		}
	}
	return reports, nil
}

func (r *SQLiteScanRepo) LatestByPackage(ctx context.Context, packagePath string) (*domain.ScanReport, error) {
	query := `SELECT ` + reportColumns + ` FROM scan_reports
		WHERE package_path = ? ORDER BY scanned_at DESC, id LIMIT 1`
	report, err := r.scanReport(r.db.QueryRowContext(ctx, query, packagePath))
	if err != nil {
		return nil, err
	}
	if err := r.loadIssues(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (r *SQLiteScanRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM scan_reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting scan report: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting scan report: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("scan report %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteScanRepo) scanReport(row *sql.Row) (*domain.ScanReport, error) {
	report, err := scanReportRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return report, nil
}

func (r *SQLiteScanRepo) scanReportFromRows(rows *sql.Rows) (*domain.ScanReport, error) {
	return scanReportRow(rows)
}

func scanReportRow(row rowScanner) (*domain.ScanReport, error) {
	var report domain.ScanReport
	var moduleType, edition, status, scannedAt string

	err := row.Scan(
		&report.ID, &report.PackagePath, &moduleType, &edition,
		&report.Metadata.Identifier, &report.Metadata.Title,
		&report.Metadata.Description, &report.Metadata.LaunchURL,
		&status, &scannedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning scan report: %w", err)
	}

	report.ModuleType = domain.ModuleType(moduleType)
	report.Edition = domain.ModuleEditionType(edition)
	report.Metadata.ModuleType = report.ModuleType
	report.Metadata.Edition = report.Edition
	report.Status = domain.ScanStatus(status)
	report.ScannedAt, err = time.Parse(time.RFC3339, scannedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing scanned_at: %w", err)
	}
	return &report, nil
}

func (r *SQLiteScanRepo) loadIssues(ctx context.Context, report *domain.ScanReport) error {
	query := `SELECT code, severity, message, location, suggested_fix
		FROM scan_issues WHERE report_id = ? ORDER BY position`
	rows, err := r.db.QueryContext(ctx, query, report.ID)
	if err != nil {
		return fmt.Errorf("loading scan issues: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var issue domain.ValidationIssue
		var severity string
		if err := rows.Scan(&issue.Code, &severity, &issue.Message, &issue.Location, &issue.SuggestedFix); err != nil {
			return fmt.Errorf("scanning scan issue: %w", err)
		}
		issue.Severity = domain.Severity(severity)
		report.Result.Issues = append(report.Result.Issues, issue)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating scan issues: %w", err)
	}
	return nil
}
