package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Request модели

// CreateRuleRequest запрос на создание правила рабочих часов
// Обе границы периода пустые - бессрочное правило
type CreateRuleRequest struct {
	Weekday       *int    `json:"weekday" validate:"required,min=0,max=6"`
	StartTime     string  `json:"startTime" validate:"required"`
	EndTime       string  `json:"endTime" validate:"required"`
	EffectiveFrom *string `json:"effectiveFrom,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EffectiveTo   *string `json:"effectiveTo,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// CreateTimeOffRequest запрос на создание блокировки времени
type CreateTimeOffRequest struct {
	Start  time.Time `json:"start" validate:"required"`
	End    time.Time `json:"end" validate:"required,gtfield=Start"`
	Reason string    `json:"reason,omitempty" validate:"max=500"`
}

// ListTimeOffRequest фильтр блокировок по периоду (опционально)
type ListTimeOffRequest struct {
	From *time.Time
	To   *time.Time
}

// Response модели

// RuleResponse ответ с данными правила рабочих часов
type RuleResponse struct {
	ID            int64   `json:"id"`
	Weekday       int     `json:"weekday"`
	WeekdayName   string  `json:"weekdayName"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Standing      bool    `json:"standing"`
	EffectiveFrom *string `json:"effectiveFrom,omitempty"`
	EffectiveTo   *string `json:"effectiveTo,omitempty"`
}

// RuleListResponse ответ со списком правил
type RuleListResponse struct {
	Rules []RuleResponse `json:"rules"`
}

// TimeOffResponse ответ с данными блокировки времени
type TimeOffResponse struct {
	ID        int64     `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// TimeOffListResponse ответ со списком блокировок
type TimeOffListResponse struct {
	TimeOff []TimeOffResponse `json:"timeOff"`
}

// Методы конвертации

// FromDomainRule конвертирует domain модель в DTO
func FromDomainRule(r *domain.WorkingHoursRule) *RuleResponse {
	if r == nil {
		return nil
	}

	from, to := domain.EffectiveBounds(r.Effective)

	return &RuleResponse{
		ID:            r.ID,
		Weekday:       int(r.Weekday),
		WeekdayName:   r.Weekday.String(),
		StartTime:     r.StartTime.String(),
		EndTime:       r.EndTime.String(),
		Standing:      r.IsStanding(),
		EffectiveFrom: formatDate(from),
		EffectiveTo:   formatDate(to),
	}
}

// FromDomainRuleList конвертирует список правил в DTO
func FromDomainRuleList(rules []*domain.WorkingHoursRule) *RuleListResponse {
	resp := &RuleListResponse{Rules: make([]RuleResponse, 0, len(rules))}
	for _, r := range rules {
		if item := FromDomainRule(r); item != nil {
			resp.Rules = append(resp.Rules, *item)
		}
	}
	return resp
}

// FromDomainTimeOff конвертирует domain модель в DTO
func FromDomainTimeOff(t *domain.TimeOff) *TimeOffResponse {
	if t == nil {
		return nil
	}
	return &TimeOffResponse{
		ID:        t.ID,
		Start:     t.Start,
		End:       t.End,
		Reason:    t.Reason,
		CreatedAt: t.CreatedAt,
	}
}

// FromDomainTimeOffList конвертирует список блокировок в DTO
func FromDomainTimeOffList(items []*domain.TimeOff) *TimeOffListResponse {
	resp := &TimeOffListResponse{TimeOff: make([]TimeOffResponse, 0, len(items))}
	for _, t := range items {
		if item := FromDomainTimeOff(t); item != nil {
			resp.TimeOff = append(resp.TimeOff, *item)
		}
	}
	return resp
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateFormat)
	return &s
}
