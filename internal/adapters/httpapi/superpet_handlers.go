package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/petorang/superpet-api/internal/app/gems"
	"github.com/petorang/superpet-api/internal/domain"
)

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	balance, err := s.Gems.Balance(r.Context(), id.MemberID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"balance": balance})
}

func (s *Server) handleIssueGems(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var body struct {
		Amount         int64   `json:"amount"`
		Source         string  `json:"source"`
		Memo           *string `json:"memo"`
		TargetMemberID *int64  `json:"targetMemberId"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	in := gems.IssueInput{Amount: body.Amount, Source: body.Source, Memo: body.Memo}
	if body.TargetMemberID != nil {
		target := domain.MemberID(*body.TargetMemberID)
		in.TargetMemberID = &target
	}

	res, err := s.Gems.Issue(r.Context(), id.MemberID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"issued":  res.Issued,
		"balance": res.Balance,
	})
}

func (s *Server) handleUseGems(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var body struct {
		Amount int64   `json:"amount"`
		Source string  `json:"source"`
		Memo   *string `json:"memo"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	res, err := s.Gems.Spend(r.Context(), id.MemberID, gems.SpendInput{
		Amount: body.Amount,
		Source: body.Source,
		Memo:   body.Memo,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"used":    res.Used,
		"balance": res.Balance,
	})
}

func (s *Server) handleRotateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	sessionID, err := s.Game.RotateSession(r.Context(), id.MemberID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"gameSessionId": sessionID})
}

func (s *Server) handleGetSave(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	data, err := s.Game.LoadSave(r.Context(), id.MemberID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if data == nil {
		// Explicit null so clients can distinguish "no save" without a 404.
		writeJSON(w, http.StatusOK, map[string]any{"data": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": json.RawMessage(data)})
}

func (s *Server) handleStoreSave(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var body struct {
		Data json.RawMessage `json:"data"`
	}
	if !decodeJSON(w, r, &body) {
		return
	}

	if err := s.Game.StoreSave(r.Context(), id.MemberID, body.Data); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
