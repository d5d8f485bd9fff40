package repository

import "github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"

type BranchRepository interface {
	CRUDRepository[entity.Branch]
}

type DoctorRepository interface {
	CRUDRepository[entity.Doctor]
}

type StockRepository interface {
	CRUDRepository[entity.StockItem]
}
