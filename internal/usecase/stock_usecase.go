package usecase

import (
	"context"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/service"
)

type StockUsecase interface {
	ResourceUsecase[entity.StockItem]
	Export(ctx context.Context, label func(key string) string) ([]byte, error)
}

type stockUsecase struct {
	ResourceUsecase[entity.StockItem]
	repo     repository.StockRepository
	exporter service.StockExportService
	log      *logrus.Logger
}

func NewStockUsecase(repo repository.StockRepository, exporter service.StockExportService, log *logrus.Logger) StockUsecase {
	return &stockUsecase{
		ResourceUsecase: NewResourceUsecase[entity.StockItem]("stock items", repo, StockCodec, log),
		repo:            repo,
		exporter:        exporter,
		log:             log,
	}
}

// Export walks every page of the inventory and renders it as a workbook.
func (u *stockUsecase) Export(ctx context.Context, label func(key string) string) ([]byte, error) {
	items, err := walkPages[entity.StockItem](ctx, u.repo, url.Values{"sortBy": {"name"}, "sortOrder": {"asc"}})
	if err != nil {
		u.log.Warnf("Failed to read stock for export: %+v", err)
		return nil, err
	}
	return u.exporter.Export(items, label)
}
