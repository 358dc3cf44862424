package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// Contract template applicability.
const (
	ContractBuy  = "buy"
	ContractRent = "rent"
	ContractBoth = "both"
)

// ContractVariable documents one placeholder a contract template expects.
type ContractVariable struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DefaultValue string `json:"defaultValue,omitempty"`
}

// ContractVariables stores the variable list as a JSON column.
type ContractVariables []ContractVariable

func (v ContractVariables) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	data, err := json.Marshal(v)
	return string(data), err
}

func (v *ContractVariables) Scan(src interface{}) error {
	switch s := src.(type) {
	case nil:
		*v = nil
		return nil
	case []byte:
		return json.Unmarshal(s, v)
	case string:
		return json.Unmarshal([]byte(s), v)
	default:
		return fmt.Errorf("models: cannot scan %T into ContractVariables", src)
	}
}

// ContractTemplate holds the legal text rendered into order contracts.
type ContractTemplate struct {
	gorm.Model
	Name        string            `gorm:"size:255;not null" json:"name"`
	Type        string            `gorm:"size:10;not null;index" json:"type"` // buy | rent | both
	Content     string            `gorm:"type:text;not null" json:"content"`
	Variables   ContractVariables `gorm:"type:text" json:"variables"`
	IsActive    bool              `gorm:"not null;default:true" json:"isActive"`
	CreatedByID uint              `gorm:"not null;index" json:"createdById"`
	CreatedBy   *User             `json:"createdBy,omitempty"`
	PDFURL      string            `gorm:"size:512" json:"pdfUrl,omitempty"`
	PDFFilename string            `gorm:"size:255" json:"pdfFilename,omitempty"`
}

// ValidContractType reports whether t is buy, rent or both.
func ValidContractType(t string) bool {
	return t == ContractBuy || t == ContractRent || t == ContractBoth
}
