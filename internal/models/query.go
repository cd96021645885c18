package models

import (
	"encoding/json"
)

// AskRequest is the body of POST /ask
type AskRequest struct {
	Question string `json:"question" binding:"required"`
}

// AskResponse is the successful answer to POST /ask
type AskResponse struct {
	SQL     string      `json:"sql"`
	Results QueryResult `json:"results"`
	Summary string      `json:"summary"`
}

// Row is one result row keyed by column name
type Row map[string]interface{}

// QueryResult holds either the rows of an executed query or the
// textual error that replaced them. It encodes as a JSON array of
// rows, or as a JSON string when Error is set.
type QueryResult struct {
	Rows  []Row
	Error string
}

// Failed reports whether the query produced an error string instead of rows
func (r QueryResult) Failed() bool {
	return r.Error != ""
}

// MarshalJSON implements json.Marshaler
func (r QueryResult) MarshalJSON() ([]byte, error) {
	if r.Failed() {
		return json.Marshal(r.Error)
	}
	if r.Rows == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.Rows)
}

// UnmarshalJSON implements json.Unmarshaler
func (r *QueryResult) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = QueryResult{Error: s}
		return nil
	}
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}
	*r = QueryResult{Rows: rows}
	return nil
}

// String renders the result the way it is quoted back to the model
func (r QueryResult) String() string {
	if r.Failed() {
		return r.Error
	}
	data, err := r.MarshalJSON()
	if err != nil {
		return "[]"
	}
	return string(data)
}
