package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"boligbudsjett/models"
	"boligbudsjett/services"
	"boligbudsjett/session"
	"boligbudsjett/storage"
)

type stateView struct {
	ID         uuid.UUID                    `json:"id"`
	Property   *models.PropertyRecord       `json:"property,omitempty"`
	Selections []models.RenovationSelection `json:"selections"`
	Financing  *models.FinancingInputs      `json:"financing,omitempty"`
	UpdatedAt  time.Time                    `json:"updatedAt"`
}

type categoryView struct {
	Category string               `json:"category"`
	Items    []models.CatalogItem `json:"items"`
}

type fetchRequest struct {
	URL string `json:"url" validate:"required,http_url"`
}

type selectionBody struct {
	Tier    string   `json:"tier"`
	Percent *float64 `json:"percent,omitempty"`
	Count   *int     `json:"count,omitempty"`
}

type financingView struct {
	Inputs models.FinancingInputs `json:"inputs"`
	Result models.FinancingResult `json:"result"`
}

type compareRequest struct {
	TotalInvestment float64                  `json:"totalInvestment" validate:"gte=0"`
	Scenarios       []models.FinancingInputs `json:"scenarios" validate:"required,min=1,max=20,dive"`
}

func (s *Server) view(st *session.State) stateView {
	return stateView{
		ID:         st.ID,
		Property:   st.Property,
		Selections: st.Plan.Snapshot(s.catalog),
		Financing:  st.Financing,
		UpdatedAt:  st.UpdatedAt,
	}
}

func (s *Server) summary(st *session.State) models.BudgetSummary {
	var record models.PropertyRecord
	if st.Property != nil {
		record = *st.Property
	}
	return services.Summarize(record, st.Plan.Snapshot(s.catalog))
}

func (s *Server) financing(st *session.State) financingView {
	total := s.summary(st).TotalInvestment
	in := services.DefaultFinancingInputs(total)
	if st.Financing != nil {
		in = *st.Financing
	}
	return financingView{Inputs: in, Result: services.ComputeFinancing(total, in)}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.store.Len()})
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	out := make([]categoryView, 0, len(s.catalog.Categories()))
	for _, cat := range s.catalog.Categories() {
		out = append(out, categoryView{Category: cat, Items: s.catalog.Items(cat)})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	st := s.store.Create()
	s.logger.Info("session %s created", st.ID)
	s.writeJSON(w, http.StatusCreated, s.view(st))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	st, err := s.loadSession(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.view(st))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err == nil {
		err = s.store.Delete(id)
	}
	if err != nil {
		s.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleFetch scrapes outside the session lock; a failed scrape leaves the
// stored property untouched.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err == nil {
		_, err = s.store.Get(id)
	}
	if err != nil {
		s.writeErr(w, err)
		return
	}

	var req fetchRequest
	if err := s.decode(r, &req); err != nil {
		s.writeErr(w, err)
		return
	}

	res := s.scraper.Scrape(r.Context(), req.URL)
	if !res.Success {
		s.writeJSON(w, http.StatusBadGateway, res)
		return
	}

	if _, err := s.store.Update(id, s.setProperty(res.Record)); err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, res)
}

func (s *Server) handlePutProperty(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	var record models.PropertyRecord
	if err := s.decode(r, &record); err != nil {
		s.writeErr(w, err)
		return
	}

	st, err := s.store.Update(id, s.setProperty(record))
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.view(st))
}

// setProperty stores a record and reprices area items for its livable area.
func (s *Server) setProperty(record models.PropertyRecord) func(*session.State) error {
	return func(st *session.State) error {
		st.Property = &record
		st.Plan.Recompute(s.catalog, record.LivableArea())
		return nil
	}
}

func (s *Server) handlePutSelection(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	var body selectionBody
	if err := s.decode(r, &body); err != nil {
		s.writeErr(w, err)
		return
	}

	req := services.SelectionRequest{
		Item:    mux.Vars(r)["item"],
		Tier:    body.Tier,
		Percent: body.Percent,
		Count:   body.Count,
	}
	item, tier, input, err := req.Resolve(s.catalog, s.validator)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	var sel models.RenovationSelection
	_, err = s.store.Update(id, func(st *session.State) error {
		var area float64
		if st.Property != nil {
			area = st.Property.LivableArea()
		}
		sel, err = st.Plan.Select(s.catalog, item.Name, tier, input, area)
		return err
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sel)
}

func (s *Server) handleDeleteSelection(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	name := mux.Vars(r)["item"]

	_, err = s.store.Update(id, func(st *session.State) error {
		if !st.Plan.Unmark(name) {
			return fmt.Errorf("%w: %q is not selected", services.ErrUnknownItem, name)
		}
		return nil
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleBudget(w http.ResponseWriter, r *http.Request) {
	st, err := s.loadSession(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.summary(st))
}

func (s *Server) handlePutFinancing(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	var in models.FinancingInputs
	if err := s.decode(r, &in); err != nil {
		s.writeErr(w, err)
		return
	}

	st, err := s.store.Update(id, func(st *session.State) error {
		st.Financing = &in
		return nil
	})
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.financing(st))
}

func (s *Server) handleGetFinancing(w http.ResponseWriter, r *http.Request) {
	st, err := s.loadSession(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.financing(st))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	st, err := s.loadSession(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	address := ""
	if st.Property != nil {
		address = st.Property.AddressOr("")
	}
	fin := s.financing(st).Result
	report := services.BuildReport(s.summary(st), address, &fin)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="kostnadsrapport.txt"`)
	_, _ = w.Write([]byte(report))
}

func (s *Server) handleBreakdownCSV(w http.ResponseWriter, r *http.Request) {
	st, err := s.loadSession(r)
	if err != nil {
		s.writeErr(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="oppussing.csv"`)
	cw, err := storage.NewCSVStreamWriter(w)
	if err != nil {
		s.logger.Error("csv export: %v", err)
		return
	}
	if err := cw.WriteBreakdown(st.Plan.Snapshot(s.catalog)); err != nil {
		s.logger.Error("csv export: %v", err)
	}
	_ = cw.Close()
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := s.decode(r, &req); err != nil {
		s.writeErr(w, err)
		return
	}

	results, err := services.CompareScenarios(r.Context(), req.TotalInvestment, req.Scenarios, s.cfg.CompareConcurrency)
	if err != nil {
		s.writeErr(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, results)
}

func (s *Server) loadSession(r *http.Request) (*session.State, error) {
	id, err := sessionID(r)
	if err != nil {
		return nil, err
	}
	return s.store.Get(id)
}
