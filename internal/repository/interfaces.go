package repository

import (
	"context"
	"errors"

	"github.com/lmsforge/packlint/internal/domain"
)

// ErrNotFound indicates no scan report matches the requested id or package.
var ErrNotFound = errors.New("scan report not found")

// ScanRepo persists scan reports and their issues. It is record-keeping
// only: reading a stored report never re-validates the package.
type ScanRepo interface {
	Save(ctx context.Context, report *domain.ScanReport) error
	GetByID(ctx context.Context, id string) (*domain.ScanReport, error)
	// List returns reports newest first, at most limit (0 = no limit).
	List(ctx context.Context, limit int) ([]*domain.ScanReport, error)
	// LatestByPackage returns the most recent report for a package path.
	LatestByPackage(ctx context.Context, packagePath string) (*domain.ScanReport, error)
	Delete(ctx context.Context, id string) error
}
