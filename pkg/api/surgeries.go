package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SurgeryTypeKind помечает, в каком виде backend прислал тип операции
type SurgeryTypeKind int

const (
	// SurgeryTypeNamed - современная форма: объект {id, name}
	SurgeryTypeNamed SurgeryTypeKind = iota
	// SurgeryTypeLegacyID - устаревшая форма: числовой идентификатор
	SurgeryTypeLegacyID
	// SurgeryTypeLegacyLabel - устаревшая форма: строковая метка
	SurgeryTypeLegacyLabel
)

// SurgeryType - тип операции. Backend исторически присылает это поле в трёх
// видах: объект, число или строка. Разбор происходит один раз на границе API,
// дальше по коду используется только нормализованная структура.
type SurgeryType struct {
	Kind SurgeryTypeKind `json:"-"`
	ID   int64           `json:"id,omitempty"`
	Name string          `json:"name,omitempty"`
}

// UnmarshalJSON принимает объект {id, name}, число или строку
func (t *SurgeryType) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*t = SurgeryType{}
		return nil
	}

	switch data[0] {
	case '{':
		var named struct {
			ID   int64  `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(data, &named); err != nil {
			return fmt.Errorf("failed to decode surgery type object: %w", err)
		}
		*t = SurgeryType{Kind: SurgeryTypeNamed, ID: named.ID, Name: named.Name}
	case '"':
		var label string
		if err := json.Unmarshal(data, &label); err != nil {
			return fmt.Errorf("failed to decode surgery type label: %w", err)
		}
		*t = SurgeryType{Kind: SurgeryTypeLegacyLabel, Name: label}
	default:
		var id int64
		if err := json.Unmarshal(data, &id); err != nil {
			return fmt.Errorf("failed to decode surgery type id: %w", err)
		}
		*t = SurgeryType{Kind: SurgeryTypeLegacyID, ID: id}
	}

	return nil
}

// MarshalJSON сериализует тип в той же форме, в которой он был получен,
// чтобы update-запросы не меняли контракт для старых версий сервера
func (t SurgeryType) MarshalJSON() ([]byte, error) {
	switch t.Kind {
	case SurgeryTypeLegacyID:
		return json.Marshal(t.ID)
	case SurgeryTypeLegacyLabel:
		return json.Marshal(t.Name)
	default:
		return json.Marshal(struct {
			ID   int64  `json:"id,omitempty"`
			Name string `json:"name,omitempty"`
		}{ID: t.ID, Name: t.Name})
	}
}

// Label возвращает отображаемое имя типа операции независимо от формы
func (t SurgeryType) Label() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Kind == SurgeryTypeLegacyID || t.ID != 0 {
		return "type #" + strconv.FormatInt(t.ID, 10)
	}
	return "unknown"
}

// Surgery представляет запланированную или проведённую операцию
type Surgery struct {
	ID          string      `json:"id"`
	PatientID   string      `json:"patient_id"`
	Type        SurgeryType `json:"type"`
	Surgeon     string      `json:"surgeon,omitempty"`
	Theater     string      `json:"theater,omitempty"`
	ScheduledAt time.Time   `json:"scheduled_at"`
	Status      string      `json:"status,omitempty"` // scheduled, in_progress, completed, cancelled
	Notes       string      `json:"notes,omitempty"`
}

// SurgeryRequest представляет тело create/update запроса операции
type SurgeryRequest struct {
	PatientID   string      `json:"patient_id"`
	Type        SurgeryType `json:"type"`
	Surgeon     string      `json:"surgeon,omitempty"`
	Theater     string      `json:"theater,omitempty"`
	ScheduledAt time.Time   `json:"scheduled_at"`
	Notes       string      `json:"notes,omitempty"`
}
