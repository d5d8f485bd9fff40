package handler

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/delivery/http/view"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/domain/entity"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/feedback"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/usecase"
	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/response"
)

const (
	scansBase         = "/scans"
	removeImageAction = "remove-image:scans"
)

type ScanHandler struct {
	*ResourceHandler[entity.Scan]
	scanUsecase usecase.ScanUsecase
	imageSchema form.Schema
}

func NewScanHandler(base *Base, scanUsecase usecase.ScanUsecase) *ScanHandler {
	const ns = "scans"
	spec := ResourceSpec[entity.Scan]{
		Name:   ns,
		Module: ns,
		Base:   scansBase,
		Nav:    ns,
		Schema: scanSchema(),
		Columns: []ColumnSpec[entity.Scan]{
			{Key: "name", Label: label(ns, "name"), Sortable: true, Cell: func(_ Translator, s *entity.Scan) view.Cell {
				return view.Cell{Text: s.Name}
			}},
			{Key: "actualCost", Label: label(ns, "actualCost"), Sortable: true, Cell: func(_ Translator, s *entity.Scan) view.Cell {
				return view.Cell{Text: formatMoney(s.ActualCost), Class: "num"}
			}},
			{Key: "minPrice", Label: label(ns, "minPrice"), Sortable: true, Cell: func(_ Translator, s *entity.Scan) view.Cell {
				return view.Cell{Text: formatMoney(s.MinPrice), Class: "num"}
			}},
			{Key: "margin", Label: label(ns, "margin"), Cell: func(_ Translator, s *entity.Scan) view.Cell {
				c := view.Cell{Text: formatMoney(s.Margin()), Class: "num"}
				if s.Margin().IsNegative() {
					c.Chip = "warning"
				}
				return c
			}},
			{Key: "items", Label: label(ns, "items"), Cell: func(_ Translator, s *entity.Scan) view.Cell {
				return view.Cell{Text: strconv.Itoa(len(s.Items))}
			}},
			{Key: "isActive", Label: label(ns, "isActive"), Cell: func(t Translator, s *entity.Scan) view.Cell {
				return activeCell(t, s.IsActive)
			}},
		},
		DefaultSort:  "createdAt",
		Searchable:   true,
		StatusFilter: true,
		ID:           func(s *entity.Scan) string { return s.ObjectID },
		Label:        func(s *entity.Scan) string { return s.Name },
		DetailHref:   func(s *entity.Scan) string { return scanHref(s.ObjectID) },
	}
	return &ScanHandler{
		ResourceHandler: NewResourceHandler[entity.Scan](base, scanUsecase, spec),
		scanUsecase:     scanUsecase,
		imageSchema:     scanImageSchema(),
	}
}

func scanHref(id string) string {
	return scansBase + "/" + url.PathEscape(id)
}

func imageTarget(scanID, imageID string) string {
	return scanID + "/" + imageID
}

func (h *ScanHandler) detailView(r *http.Request, scan *entity.Scan, add *form.Handle) *view.DetailView {
	t := h.translator(r)
	id := scan.ObjectID
	items := make([]string, 0, len(scan.Items))
	for _, it := range scan.Items {
		items = append(items, it.Name+" × "+strconv.Itoa(it.Quantity))
	}
	status := t("common.inactive")
	if scan.IsActive {
		status = t("common.active")
	}

	dv := &view.DetailView{
		Heading:  scan.Name,
		BackHref: scansBase,
		Fields: []view.Card{
			{Label: t("scans.fields.actualCost"), Value: formatMoney(scan.ActualCost)},
			{Label: t("scans.fields.minPrice"), Value: formatMoney(scan.MinPrice)},
			{Label: t("scans.fields.margin"), Value: formatMoney(scan.Margin())},
			{Label: t("scans.fields.items"), Value: strings.Join(items, ", ")},
			{Label: t("scans.fields.description"), Value: scan.Description},
			{Label: t("scans.fields.isActive"), Value: status},
		},
		Gallery: true,
	}

	canUpdate := h.allowed(r, h.spec.Module, entity.OperationUpdate)
	for _, img := range scan.Images {
		iv := view.ImageView{
			URL:         img.URL,
			Type:        t("scans.imageTypes." + string(img.Type)),
			Description: img.Description,
			Uploaded:    formatDateTime(img.UploadedAt),
		}
		if canUpdate {
			iv.Remove = view.Action{
				Label: t("common.delete"),
				Href:  scanHref(id) + "?" + url.Values{"confirm": {"remove-image"}, "image": {img.ObjectID}}.Encode(),
				Class: "danger",
			}
		}
		dv.Images = append(dv.Images, iv)
	}

	if canUpdate {
		if add == nil {
			add = form.New(h.imageSchema, nil, h.formValidator(r))
		}
		dv.AddImage = &view.FormView{
			Title:       t("scans.addImage"),
			Action:      scanHref(id) + "/images",
			SubmitLabel: t("scans.addImage"),
			Fields:      view.NewFormView(add, nil, t),
			Submitting:  add.Submitting(),
		}
	}
	return dv
}

// Detail shows one scan with its images.
func (h *ScanHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	scan, err := h.scanUsecase.Get(h.backendCtx(r), id)
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.fallback(w, r, err, scansBase)
		return
	}

	dv := h.detailView(r, scan, nil)
	q := r.URL.Query()
	if q.Get("confirm") == "remove-image" && h.allowed(r, h.spec.Module, entity.OperationUpdate) {
		h.openRemoveImage(r, dv, scan, q.Get("image"))
	}
	h.render(w, r, http.StatusOK, view.PageDetail, h.page(r, scan.Name, h.spec.Nav, dv))
}

func (h *ScanHandler) openRemoveImage(r *http.Request, dv *view.DetailView, scan *entity.Scan, imageID string) {
	var image *entity.ScanImage
	for i := range scan.Images {
		if scan.Images[i].ObjectID == imageID {
			image = &scan.Images[i]
		}
	}
	if image == nil {
		return
	}
	labelText := image.Description
	if labelText == "" {
		labelText = image.URL
	}
	c, err := h.confirmer.Open(h.sessionID(r), removeImageAction, imageTarget(scan.ObjectID, imageID), labelText)
	if err != nil {
		h.log.Errorf("Failed to issue confirmation: %+v", err)
		return
	}
	dv.Confirm = &view.ConfirmView{
		Title:      h.t(r, "scans.removeImage"),
		Message:    h.tp(r, "scans.removeImageConfirm", map[string]interface{}{"Name": labelText}),
		Action:     scanHref(scan.ObjectID) + "/images/" + url.PathEscape(imageID) + "/delete",
		Token:      c.Token,
		CancelHref: scanHref(scan.ObjectID),
	}
}

// AddImage attaches an image reference to the scan.
func (h *ScanHandler) AddImage(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if !h.allowed(r, h.spec.Module, entity.OperationUpdate) {
		h.forbidden(w, r, scanHref(id))
		return
	}
	values := h.imageSchema.Parse(r)
	fh := form.New(h.imageSchema, values, h.formValidator(r))
	ctx := h.backendCtx(r)
	var scan *entity.Scan
	err := fh.HandleSubmit(ctx, func(ctx context.Context, v form.Values) error {
		var err error
		scan, err = h.scanUsecase.AddImage(ctx, id, v)
		return err
	})
	if err == nil {
		h.audit.LogUpdate(ctx, h.principal(r), "scan images", id)
		h.notifyKey(r, feedback.SeveritySuccess, "scans.imageAdded")
		response.SeeOther(w, r, scanHref(id))
		return
	}
	if h.expired(w, r, err) {
		return
	}

	status := h.applyErrors(r, fh, err)
	if scan == nil {
		if scan, err = h.scanUsecase.Get(ctx, id); err != nil {
			h.fallback(w, r, err, scansBase)
			return
		}
	}
	h.render(w, r, status, view.PageDetail, h.page(r, scan.Name, h.spec.Nav, h.detailView(r, scan, fh)))
}

// RemoveImage runs a confirmed image removal.
func (h *ScanHandler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, imageID := vars["id"], vars["imageId"]
	back := scanHref(id)
	if !h.allowed(r, h.spec.Module, entity.OperationUpdate) {
		h.forbidden(w, r, back)
		return
	}
	if err := h.confirmer.Confirm(h.sessionID(r), removeImageAction, imageTarget(id, imageID), r.PostFormValue("confirmToken")); err != nil {
		h.log.Warnf("Rejected image removal on scan %s: %v", id, err)
		h.notifyKey(r, feedback.SeverityError, "errors.confirmation")
		response.SeeOther(w, r, back)
		return
	}

	ctx := h.backendCtx(r)
	err := h.scanUsecase.RemoveImage(ctx, id, imageID)
	h.audit.LogAction(ctx, h.principal(r), "remove-image", h.spec.Name, id, err)
	if err != nil {
		if h.expired(w, r, err) {
			return
		}
		h.failure(r, err)
		response.SeeOther(w, r, back)
		return
	}
	h.notifyKey(r, feedback.SeveritySuccess, "scans.imageRemoved")
	response.SeeOther(w, r, back)
}
