package models

import "time"

type GlobalSetting struct {
	ID               string     `json:"Id"`
	Key              string     `json:"Key"`
	Value            *string    `json:"Value"`
	CreatedDate      time.Time  `json:"CreatedDate"`
	LastModifiedDate time.Time  `json:"LastModifiedDate"`
	DeletedAt        *time.Time `json:"DeletedAt"`
}

type CreateGlobalSettingRequest struct {
	Key   string  `json:"Key" validate:"required,min=1"`
	Value *string `json:"Value"`
}

type UpdateGlobalSettingRequest struct {
	Value *string `json:"Value" validate:"required"`
}

func (r *UpdateGlobalSettingRequest) Empty() bool {
	return r.Value == nil
}
