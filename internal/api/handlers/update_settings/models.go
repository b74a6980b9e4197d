package update_settings

import (
	"github.com/m04kA/SMC-ClinicScheduler/internal/service/settings/models"
)

// UpdateSettingsRequest HTTP request model
type UpdateSettingsRequest struct {
	SlotLengthMinutes   *int  `json:"slotLengthMinutes,omitempty"`
	BufferMinutes       *int  `json:"bufferMinutes,omitempty"`
	BlockPublicHolidays *bool `json:"blockPublicHolidays,omitempty"`
}

// IsEmpty возвращает true, если не передано ни одного поля
func (r *UpdateSettingsRequest) IsEmpty() bool {
	return r.SlotLengthMinutes == nil && r.BufferMinutes == nil && r.BlockPublicHolidays == nil
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateSettingsRequest) ToServiceRequest() *models.UpdatePolicyRequest {
	return &models.UpdatePolicyRequest{
		SlotLengthMinutes:   r.SlotLengthMinutes,
		BufferMinutes:       r.BufferMinutes,
		BlockPublicHolidays: r.BlockPublicHolidays,
	}
}
