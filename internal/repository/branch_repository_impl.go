package repository

import (
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	domainRepo "github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/repository"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/infrastructure/backend"
)

type branchRepository struct {
	*backend.Collection[entity.Branch]
}

func NewBranchRepository(client *backend.Client) domainRepo.BranchRepository {
	return &branchRepository{
		Collection: backend.NewCollection[entity.Branch](client, "/branches", "branches"),
	}
}

type doctorRepository struct {
	*backend.Collection[entity.Doctor]
}

func NewDoctorRepository(client *backend.Client) domainRepo.DoctorRepository {
	return &doctorRepository{
		Collection: backend.NewCollection[entity.Doctor](client, "/doctors", "doctors"),
	}
}

type stockRepository struct {
	*backend.Collection[entity.StockItem]
}

func NewStockRepository(client *backend.Client) domainRepo.StockRepository {
	return &stockRepository{
		Collection: backend.NewCollection[entity.StockItem](client, "/stock-items", "stockItems"),
	}
}
