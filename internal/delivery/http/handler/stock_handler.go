package handler

import (
	"net/http"
	"strconv"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/screen"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/response"
)

const (
	stockBase = "/stock"
	xlsxType  = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type StockHandler struct {
	*ResourceHandler[entity.StockItem]
	stockUsecase usecase.StockUsecase
}

func NewStockHandler(base *Base, stockUsecase usecase.StockUsecase) *StockHandler {
	const ns = "stock"
	h := &StockHandler{stockUsecase: stockUsecase}
	spec := ResourceSpec[entity.StockItem]{
		Name:   ns,
		Module: ns,
		Base:   stockBase,
		Nav:    ns,
		Schema: stockSchema(),
		Columns: []ColumnSpec[entity.StockItem]{
			{Key: "name", Label: label(ns, "name"), Sortable: true, Cell: func(_ Translator, s *entity.StockItem) view.Cell {
				return view.Cell{Text: s.Name}
			}},
			{Key: "category", Label: label(ns, "category"), Sortable: true, Cell: func(_ Translator, s *entity.StockItem) view.Cell {
				return view.Cell{Text: s.Category}
			}},
			{Key: "quantity", Label: label(ns, "quantity"), Sortable: true, Cell: func(_ Translator, s *entity.StockItem) view.Cell {
				return view.Cell{Text: strconv.Itoa(s.Quantity) + " " + s.Unit, Class: "num"}
			}},
			{Key: "minimumQuantity", Label: label(ns, "minimumQuantity"), Cell: func(_ Translator, s *entity.StockItem) view.Cell {
				return view.Cell{Text: strconv.Itoa(s.MinimumQuantity), Class: "num"}
			}},
			{Key: "price", Label: label(ns, "price"), Sortable: true, Cell: func(_ Translator, s *entity.StockItem) view.Cell {
				return view.Cell{Text: formatMoney(s.Price), Class: "num"}
			}},
			{Key: "expiryDate", Label: label(ns, "expiryDate"), Sortable: true, Cell: func(_ Translator, s *entity.StockItem) view.Cell {
				if s.ExpiryDate == nil {
					return view.Cell{}
				}
				return view.Cell{Text: formatDate(*s.ExpiryDate)}
			}},
			{Key: "status", Label: "stock.status", Cell: func(t Translator, s *entity.StockItem) view.Cell {
				switch {
				case s.Expired(h.now()):
					return view.Cell{Text: t("stock.expired"), Chip: "error"}
				case s.LowStock():
					return view.Cell{Text: t("stock.low"), Chip: "warning"}
				}
				return view.Cell{Text: t("stock.ok"), Chip: "active"}
			}},
		},
		DefaultSort: "name",
		Searchable:  true,
		ID:          func(s *entity.StockItem) string { return s.ObjectID },
		Label:       func(s *entity.StockItem) string { return s.Name },
		RowClass: func(s *entity.StockItem) string {
			if s.LowStock() {
				return "low-stock"
			}
			return ""
		},
	}
	spec.Toolbar = func(r *http.Request, _ screen.ListState) []view.Action {
		return []view.Action{{Label: h.t(r, "stock.export"), Href: stockBase + "/export"}}
	}
	h.ResourceHandler = NewResourceHandler[entity.StockItem](base, stockUsecase, spec)
	return h
}

// Export downloads the whole inventory as a workbook with translated headers.
func (h *StockHandler) Export(w http.ResponseWriter, r *http.Request) {
	data, err := h.stockUsecase.Export(h.backendCtx(r), h.translator(r))
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.failure(r, err)
		response.SeeOther(w, r, stockBase)
		return
	}
	h.audit.LogAction(r.Context(), h.principal(r), "export", h.spec.Name, "", nil)

	name := "stock-" + h.now().Format(dateLayout) + ".xlsx"
	w.Header().Set("Content-Type", xlsxType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
