package models

// ManualMarkRequest body ของ POST /attendance/manual
type ManualMarkRequest struct {
	PersonID string           `json:"personId" validate:"required"`
	Date     string           `json:"date" validate:"required,datetime=2006-01-02"`
	Status   AttendanceStatus `json:"status" validate:"required,oneof=present absent late leave"`
}

// ScanRequest body ของ POST /attendance/scan; date ว่าง = วันนี้
type ScanRequest struct {
	Payload   string     `json:"payload" validate:"required"`
	Date      string     `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Kind      PersonKind `json:"kind" validate:"required,oneof=student teacher"`
	ClassName string     `json:"className"`
	Section   string     `json:"section"`
	SessionID string     `json:"sessionId"`
}

func (r ScanRequest) Scope() RosterScope {
	return RosterScope{Kind: r.Kind, ClassName: r.ClassName, Section: r.Section}
}

type StartSessionRequest struct {
	Kind      PersonKind `json:"kind" validate:"required,oneof=student teacher"`
	ClassName string     `json:"className"`
	Section   string     `json:"section"`
}

func (r StartSessionRequest) Scope() RosterScope {
	return RosterScope{Kind: r.Kind, ClassName: r.ClassName, Section: r.Section}
}

type ConfirmScanRequest struct {
	PersonID string `json:"personId" validate:"required"`
}

// LedgerQuery query ของ GET /fees/ledger
type LedgerQuery struct {
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
	PersonID  string `query:"personId"`
	ClassName string `query:"className"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// Pagination normalizes page/limit; over-large limits are capped.
func (q LedgerQuery) Pagination() PaginationParams {
	return NewPagination(q.Page, q.Limit)
}
