package server

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/wave-console/customers"
	"github.com/jrsteele09/wave-console/estimates"
	"github.com/jrsteele09/wave-console/internal/utils"
	"github.com/jrsteele09/wave-console/items"
	"github.com/jrsteele09/wave-console/paging"
	"github.com/rs/zerolog/log"
)

const (
	actionPreview = "preview"
	actionAddLine = "add_line"
)

type estimatesListData struct {
	pageData
	UserID    string
	Estimates []estimates.Estimate
	Meta      paging.Meta
}

// EstimatesListHandler shows one page of estimates (GET /{userId}/estimates)
func (s *Server) EstimatesListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("userId")
		data := estimatesListData{pageData: s.page("Estimates"), UserID: userID}
		data.Error = bannerFromQuery(r)

		params := paging.FromQuery(r.URL.Query(), s.config.GetDefaultPageSize())
		page, err := s.api.ListEstimates(r.Context(), params)
		if err != nil {
			msg, status := failure(err)
			data.Error = msg
			data.Meta = paging.Meta{Page: params.Page, PerPage: params.PerPage}
			s.render(w, status, "estimates.html", data)
			return
		}

		data.Estimates = page.Estimates
		data.Meta = page.Meta
		s.render(w, http.StatusOK, "estimates.html", data)
	}
}

// lineRow is one editable line of the estimate form.
type lineRow struct {
	ItemID    int64
	Quantity  float64
	UnitPrice float64
}

func (l lineRow) LineQuantity() float64 { return l.Quantity }
func (l lineRow) LinePrice() float64    { return l.UnitPrice }

func (l lineRow) Total() float64 {
	return estimates.LineTotal(l)
}

type estimateFormData struct {
	pageData
	UserID     string
	Customers  []customers.Customer
	Items      []items.Item
	CustomerID int64
	IssueDate  string
	ExpiryDate string
	Notes      string
	FooterNote string
	Lines      []lineRow
}

func (d estimateFormData) Subtotal() float64 {
	return estimates.Subtotal(d.Lines)
}

// NewEstimate converts the form into the create request. Lines without an
// item are dropped.
func (d estimateFormData) NewEstimate() estimates.NewEstimate {
	e := estimates.NewEstimate{
		CustomerID: d.CustomerID,
		IssueDate:  utils.NonEmptyPtr(d.IssueDate),
		ExpiryDate: utils.NonEmptyPtr(d.ExpiryDate),
		Notes:      utils.NonEmptyPtr(d.Notes),
		FooterNote: utils.NonEmptyPtr(d.FooterNote),
	}
	for _, l := range d.Lines {
		if l.ItemID == 0 {
			continue
		}
		e.Items = append(e.Items, estimates.NewLineItem{ItemID: l.ItemID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return e
}

// loadPickers fetches the customers and items offered by the form.
func (s *Server) loadPickers(ctx context.Context, data *estimateFormData) error {
	params := paging.Params{Page: 1, PerPage: s.config.GetPickerPageSize()}

	custs, err := s.api.ListCustomers(ctx, params)
	if err != nil {
		return err
	}
	its, err := s.api.ListItems(ctx, params)
	if err != nil {
		return err
	}
	data.Customers = custs.Customers
	data.Items = its.Items
	return nil
}

// EstimateFormHandler renders an empty estimate form (GET /{userId}/estimates/add)
func (s *Server) EstimateFormHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.PathValue("userId")
		data := estimateFormData{
			pageData: s.page("New estimate"),
			UserID:   userID,
			Lines:    []lineRow{{Quantity: 1}},
		}
		if err := s.loadPickers(r.Context(), &data); err != nil {
			log.Warn().Err(err).Msg("Loading estimate pickers failed")
			redirectWithError(w, r, estimatesPath(userID), errCodePickers)
			return
		}
		s.render(w, http.StatusOK, "estimate_form.html", data)
	}
}

// EstimateSubmitHandler previews or creates an estimate (POST /{userId}/estimates)
func (s *Server) EstimateSubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		userID := r.PathValue("userId")
		data := estimateFormData{pageData: s.page("New estimate"), UserID: userID}
		if err := s.loadPickers(r.Context(), &data); err != nil {
			msg, status := failure(err)
			data.Error = msg
			s.render(w, status, "estimate_form.html", data)
			return
		}
		readEstimateForm(r.PostForm, &data)

		switch r.FormValue("action") {
		case actionAddLine:
			data.Lines = append(data.Lines, lineRow{Quantity: 1})
			s.render(w, http.StatusOK, "estimate_form.html", data)
			return
		case actionPreview:
			s.render(w, http.StatusOK, "estimate_form.html", data)
			return
		}

		newEstimate := data.NewEstimate()
		if err := estimates.Validate(newEstimate); err != nil {
			msg, status := failure(err)
			data.Error = msg
			s.render(w, status, "estimate_form.html", data)
			return
		}

		created, err := s.api.CreateEstimate(r.Context(), newEstimate)
		if err != nil {
			msg, status := failure(err)
			data.Error = msg
			s.render(w, status, "estimate_form.html", data)
			return
		}

		log.Info().
			Int64("estimate_id", created.Estimate.ID).
			Str("number", created.Estimate.EstimateNumber).
			Msg("Estimate created")
		redirectSuccess(w, r, estimatesPath(userID))
	}
}

// readEstimateForm fills data from the posted fields. Line fields arrive as
// parallel lists; a blank unit price takes the item's list price.
func readEstimateForm(form url.Values, data *estimateFormData) {
	data.CustomerID = parseID(form.Get("customer_id"))
	data.IssueDate = strings.TrimSpace(form.Get("issue_date"))
	data.ExpiryDate = strings.TrimSpace(form.Get("expiry_date"))
	data.Notes = strings.TrimSpace(form.Get("notes"))
	data.FooterNote = strings.TrimSpace(form.Get("footer_note"))

	prices := make(map[int64]float64, len(data.Items))
	for _, it := range data.Items {
		prices[it.ID] = it.Price
	}

	ids := form["item_id"]
	quantities := form["quantity"]
	unitPrices := form["unit_price"]

	data.Lines = data.Lines[:0]
	for i := range ids {
		line := lineRow{ItemID: parseID(ids[i]), Quantity: 1}
		if i < len(quantities) {
			line.Quantity = parseAmount(quantities[i])
		}
		if i < len(unitPrices) && strings.TrimSpace(unitPrices[i]) != "" {
			line.UnitPrice = parseAmount(unitPrices[i])
		} else {
			line.UnitPrice = prices[line.ItemID]
		}
		data.Lines = append(data.Lines, line)
	}
	if len(data.Lines) == 0 {
		data.Lines = append(data.Lines, lineRow{Quantity: 1})
	}
}

func parseID(v string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func parseAmount(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0
	}
	return f
}
