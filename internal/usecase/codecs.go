package usecase

import (
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/converter"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
)

var RepresentativeCodec = Codec[entity.Representative]{
	Values: converter.RepresentativeToValues,
	Encode: func(v form.Values) (interface{}, error) { return converter.ValuesToRepresentativeRequest(v) },
}

var BranchCodec = Codec[entity.Branch]{
	Values: converter.BranchToValues,
	Encode: func(v form.Values) (interface{}, error) { return converter.ValuesToBranchRequest(v) },
}

var DoctorCodec = Codec[entity.Doctor]{
	Values: converter.DoctorToValues,
	Encode: func(v form.Values) (interface{}, error) { return converter.ValuesToDoctorRequest(v) },
}

var RadiologistCodec = Codec[entity.Radiologist]{
	Values: converter.RadiologistToValues,
	Encode: func(v form.Values) (interface{}, error) { return converter.ValuesToRadiologistRequest(v) },
}

var ScanCodec = Codec[entity.Scan]{
	Values: converter.ScanToValues,
	Encode: func(v form.Values) (interface{}, error) { return converter.ValuesToScanRequest(v) },
}

var StockCodec = Codec[entity.StockItem]{
	Values: converter.StockItemToValues,
	Encode: func(v form.Values) (interface{}, error) { return converter.ValuesToStockItemRequest(v) },
}
