// file: internals/features/payroll/worklogs/dto/worklog_dto.go
package dto

import (
	"github.com/google/uuid"

	model "educenter_backend/internals/features/payroll/worklogs/model"
)

/* =============== REQUEST =============== */

type AppendWorkLogRequest struct {
	PayeeID  uuid.UUID  `json:"payee_id" validate:"required"`
	GroupID  *uuid.UUID `json:"group_id"`
	WorkDate string     `json:"work_date" validate:"required"` // YYYY-MM-DD
	Hours    string     `json:"hours" validate:"required"`
	Note     string     `json:"note"`
}

type WorkLogPeriodQuery struct {
	PayeeID uuid.UUID `query:"payee_id" validate:"required"`
	Month   int16     `query:"month" validate:"required,min=1,max=12"`
	Year    int16     `query:"year" validate:"required,min=2000"`
}

/* =============== RESPONSE =============== */

type WorkLogResponse struct {
	WorkLogID uuid.UUID  `json:"work_log_id"`
	PayeeID   uuid.UUID  `json:"payee_id"`
	GroupID   *uuid.UUID `json:"group_id,omitempty"`
	WorkDate  string     `json:"work_date"`
	Hours     string     `json:"hours"`
	Note      string     `json:"note,omitempty"`
	Month     int16      `json:"month"`
	Year      int16      `json:"year"`
}

func FromWorkLogModel(m *model.WorkLogModel) WorkLogResponse {
	return WorkLogResponse{
		WorkLogID: m.WorkLogID,
		PayeeID:   m.WorkLogPayeeID,
		GroupID:   m.WorkLogGroupID,
		WorkDate:  m.WorkLogWorkDate.Format("2006-01-02"),
		Hours:     m.WorkLogHours.String(),
		Note:      m.WorkLogNote,
		Month:     m.WorkLogMonth,
		Year:      m.WorkLogYear,
	}
}

func FromWorkLogModels(rows []model.WorkLogModel) []WorkLogResponse {
	out := make([]WorkLogResponse, 0, len(rows))
	for i := range rows {
		out = append(out, FromWorkLogModel(&rows[i]))
	}
	return out
}
