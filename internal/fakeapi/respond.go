package fakeapi

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type detailBody struct {
	Detail any `json:"detail"`
}

// validationIssue mirrors one entry of a FastAPI 422 detail list.
type validationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, detailBody{Detail: msg})
}

func writeValidation(w http.ResponseWriter, issues []validationIssue) {
	writeJSON(w, http.StatusUnprocessableEntity, detailBody{Detail: issues})
}

func issue(where, field, msg, typ string) validationIssue {
	return validationIssue{Loc: []string{where, field}, Msg: msg, Type: typ}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeValidation(w, []validationIssue{{Loc: []string{"body"}, Msg: "invalid JSON body", Type: "value_error.jsondecode"}})
		return false
	}
	return true
}

// queryInt reads an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string, def int) (int, *validationIssue) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		iss := issue("query", name, "value is not a valid non-negative integer", "type_error.integer")
		return 0, &iss
	}
	return n, nil
}
