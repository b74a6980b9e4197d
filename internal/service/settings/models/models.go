package models

import (
	"time"

	"github.com/m04kA/SMC-ClinicScheduler/internal/domain"
)

// Источник действующей политики
const (
	SourceStored  = "stored"
	SourceDefault = "default"
)

// UpdatePolicyRequest запрос на обновление политики расписания
// Все поля опциональны - обновляются только переданные значения
type UpdatePolicyRequest struct {
	SlotLengthMinutes   *int  `json:"slotLengthMinutes,omitempty"`
	BufferMinutes       *int  `json:"bufferMinutes,omitempty"`
	BlockPublicHolidays *bool `json:"blockPublicHolidays,omitempty"`
}

// PolicyResponse действующая политика расписания
type PolicyResponse struct {
	SlotLengthMinutes   int        `json:"slotLengthMinutes"`
	BufferMinutes       int        `json:"bufferMinutes"`
	BlockPublicHolidays bool       `json:"blockPublicHolidays"`
	Source              string     `json:"source"`
	UpdatedAt           *time.Time `json:"updatedAt,omitempty"`
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p domain.SchedulingPolicy, source string) *PolicyResponse {
	resp := &PolicyResponse{
		SlotLengthMinutes:   p.SlotLengthMinutes,
		BufferMinutes:       p.BufferMinutes,
		BlockPublicHolidays: p.BlockPublicHolidays,
		Source:              source,
	}
	if !p.UpdatedAt.IsZero() {
		updatedAt := p.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// ApplyToPolicy применяет обновления к существующей политике
func (r *UpdatePolicyRequest) ApplyToPolicy(policy *domain.SchedulingPolicy) {
	if r.SlotLengthMinutes != nil {
		policy.SlotLengthMinutes = *r.SlotLengthMinutes
	}
	if r.BufferMinutes != nil {
		policy.BufferMinutes = *r.BufferMinutes
	}
	if r.BlockPublicHolidays != nil {
		policy.BlockPublicHolidays = *r.BlockPublicHolidays
	}
}
