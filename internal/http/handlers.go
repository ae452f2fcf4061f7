package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"divvy/internal/explain"
	"divvy/internal/export"
	"divvy/internal/models"
)

type addPersonRequest struct {
	Name string `json:"name"`
}

type importPeopleRequest struct {
	Names []string `json:"names"`
}

type addExpenseRequest struct {
	Description  string       `json:"description"`
	Amount       models.Money `json:"amount"`
	Payer        string       `json:"payer"`
	Participants []string     `json:"participants"`
}

type updateParticipantsRequest struct {
	Participants []string `json:"participants"`
}

func (s *Server) handleListPeople(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.GetPeople())
}

func (s *Server) handleAddPerson(w http.ResponseWriter, r *http.Request) {
	var req addPersonRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.ledger.AddPerson(req.Name); err != nil {
		slog.Warn("AddPerson failed", "error", err)
		writeLedgerError(w, err)
		return
	}
	s.persist(r.Context())
	writeJSON(w, http.StatusCreated, s.ledger.GetPeople())
}

func (s *Server) handleImportPeople(w http.ResponseWriter, r *http.Request) {
	var req importPeopleRequest
	if !readJSON(w, r, &req) {
		return
	}
	if err := s.ledger.ImportPeople(req.Names); err != nil {
		slog.Warn("ImportPeople failed", "error", err)
		writeLedgerError(w, err)
		return
	}
	s.persist(r.Context())
	writeJSON(w, http.StatusOK, s.ledger.GetPeople())
}

func (s *Server) handleRemovePerson(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !s.ledger.RemovePerson(name) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("person %q not found", name))
		return
	}
	slog.Info("Person removed with cascading expenses", "name", name)
	s.persist(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.GetExpenses())
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req addExpenseRequest
	if !readJSON(w, r, &req) {
		return
	}
	exp, err := s.ledger.AddExpense(req.Description, req.Amount, req.Payer, req.Participants)
	if err != nil {
		slog.Warn("AddExpense failed", "error", err)
		writeLedgerError(w, err)
		return
	}
	slog.Info("Expense added", "id", exp.ID, "amount", exp.Amount, "payer", exp.Payer)
	s.persist(r.Context())
	writeJSON(w, http.StatusCreated, exp)
}

func (s *Server) handleRemoveExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !s.ledger.RemoveExpense(id) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("expense %q not found", id))
		return
	}
	s.persist(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateParticipants(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req updateParticipantsRequest
	if !readJSON(w, r, &req) {
		return
	}
	found, err := s.ledger.UpdateExpenseParticipants(id, req.Participants)
	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("expense %q not found", id))
		return
	}
	if err != nil {
		slog.Warn("UpdateExpenseParticipants failed", "id", id, "error", err)
		writeLedgerError(w, err)
		return
	}
	s.persist(r.Context())
	writeJSON(w, http.StatusOK, s.ledger.GetExpenses())
}

func (s *Server) handleBalances(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.GetNetBalances())
}

func (s *Server) handleTotals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.GetTotalsSpent())
}

func (s *Server) handleSettlement(w http.ResponseWriter, r *http.Request) {
	transfers := s.ledger.SettleUp()
	if transfers == nil {
		transfers = []models.Transfer{}
	}
	writeJSON(w, http.StatusOK, transfers)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.ledger.Clear()
	slog.Info("Ledger cleared")
	s.persist(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	people := s.ledger.GetPeople()
	expenses := s.ledger.GetExpenses()
	transfers := s.ledger.SettleUp()

	f, err := export.BuildWorkbook(people, expenses, transfers)
	if err != nil {
		slog.Error("Workbook build failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to build workbook")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q",
		"divvy_"+time.Now().Format("20060102")+".xlsx"))
	if err := f.Write(w); err != nil {
		slog.Error("Workbook write failed", "error", err)
	}
}

type explainResponse struct {
	Summary     string `json:"summary"`
	Explanation string `json:"explanation"`
}

func (s *Server) handleExplain(w http.ResponseWriter, r *http.Request) {
	people := s.ledger.GetPeople()
	totals := s.ledger.GetTotalsSpent()
	balances := s.ledger.GetNetBalances()
	expenses := s.ledger.GetExpenses()
	transfers := s.ledger.SettleUp()

	summary := explain.Summarize(people, totals, balances, expenses, transfers)
	explanation := s.explainer.Explain(r.Context(), summary, balances, transfers)

	writeJSON(w, http.StatusOK, explainResponse{Summary: summary, Explanation: explanation})
}
