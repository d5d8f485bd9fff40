package handler

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
)

type DashboardHandler struct {
	*Base
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(base *Base, dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{Base: base, dashboardUsecase: dashboardUsecase}
}

func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	d, err := h.dashboardUsecase.Load(h.backendCtx(r))
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.fallback(w, r, err, "")
		return
	}

	t := h.translator(r)
	a := d.Analytics
	dv := &view.DashboardView{
		Cards: []view.Card{
			{Label: t("dashboard.totalPatients"), Value: strconv.Itoa(a.TotalPatients)},
			{Label: t("dashboard.totalAppointments"), Value: strconv.Itoa(a.TotalAppointments)},
			{Label: t("dashboard.todayAppointments"), Value: strconv.Itoa(a.TodayAppointments)},
			{Label: t("dashboard.totalScans"), Value: strconv.Itoa(a.TotalScans)},
			{Label: t("dashboard.totalDoctors"), Value: strconv.Itoa(a.TotalDoctors)},
			{Label: t("dashboard.lowStock"), Value: strconv.Itoa(a.LowStockItems)},
			{Label: t("dashboard.revenue"), Value: formatMoney(decimal.NewFromFloat(a.Revenue))},
		},
		TopScans: a.TopScans,
		TopDocs:  a.TopDoctors,
		Partial:  d.RecentErr != nil,
	}

	statuses := make([]string, 0, len(a.AppointmentsByStatus))
	for s := range a.AppointmentsByStatus {
		statuses = append(statuses, s)
	}
	sort.Strings(statuses)
	for _, s := range statuses {
		dv.ByStatus = append(dv.ByStatus, view.Card{Label: t("appointments.status." + s), Value: strconv.Itoa(a.AppointmentsByStatus[s])})
	}

	columns := appointmentColumns()
	for _, c := range columns {
		dv.Columns = append(dv.Columns, view.Column{Key: c.Key, Label: t(c.Label)})
	}
	for i := range d.Recent {
		appt := &d.Recent[i]
		row := view.Row{ID: appt.ObjectID}
		for _, c := range columns {
			row.Cells = append(row.Cells, c.Cell(t, appt))
		}
		dv.Recent = append(dv.Recent, row)
	}

	h.render(w, r, http.StatusOK, view.PageDashboard, h.page(r, t("dashboard.title"), "dashboard", dv))
}
