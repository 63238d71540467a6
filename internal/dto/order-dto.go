package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"field-service/internal/entities"
)

// FlexInt accepts a JSON number, a numeric string or null.
type FlexInt struct {
	Value int64
	Valid bool
}

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = FlexInt{}
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*f = FlexInt{}
			return nil
		}
	}
	return f.parse(raw)
}

// UnmarshalYAML lets order snapshots be written as YAML fixtures.
func (f *FlexInt) UnmarshalYAML(value *yaml.Node) error {
	raw := strings.TrimSpace(value.Value)
	if value.Tag == "!!null" || raw == "" {
		*f = FlexInt{}
		return nil
	}
	return f.parse(raw)
}

// parse accepts integers and whole floats such as "2.0"; fractions and values
// outside the int64 range are errors.
func (f *FlexInt) parse(raw string) error {
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		fl, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return fmt.Errorf("flexint: %q is not a number", raw)
		}
		if fl != math.Trunc(fl) {
			return fmt.Errorf("flexint: %q is not a whole number", raw)
		}
		// 2^63 is exact in float64; every float below it fits in int64.
		if fl < math.MinInt64 || fl >= -math.MinInt64 {
			return fmt.Errorf("flexint: %q is out of range", raw)
		}
		n = int64(fl)
	}
	*f = FlexInt{Value: n, Valid: true}
	return nil
}

func (f FlexInt) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatInt(f.Value, 10)), nil
}

// FlexString accepts a JSON string, a number or null.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	*f = FlexString(data)
	return nil
}

func (f *FlexString) UnmarshalYAML(value *yaml.Node) error {
	if value.Tag == "!!null" {
		*f = ""
		return nil
	}
	*f = FlexString(value.Value)
	return nil
}

type TechnicianWireDTO struct {
	ID                  FlexInt `json:"id" yaml:"id"`
	Nome                string  `json:"nome,omitempty" yaml:"nome"`
	TecnicoProprio      bool    `json:"tecnico_proprio,omitempty" yaml:"tecnico_proprio"`
	TecnicoTerceirizado bool    `json:"tecnico_terceirizado,omitempty" yaml:"tecnico_terceirizado"`
}

type FatWireDTO struct {
	IDFat             FlexInt            `json:"id_fat" yaml:"id_fat"`
	Tecnico           *TechnicianWireDTO `json:"tecnico" yaml:"tecnico"`
	StatusFat         FlexString         `json:"statusFat" yaml:"statusFat"`
	DescricaoProblema string             `json:"descricaoProblema" yaml:"descricaoProblema"`
	SolucaoEncontrada string             `json:"solucaoEncontrada" yaml:"solucaoEncontrada"`
	Observacoes       string             `json:"observacoes" yaml:"observacoes"`
	NumeroCiclos      FlexInt            `json:"numeroCiclos" yaml:"numeroCiclos"`
}

type FinancialReleaseWireDTO struct {
	Released           bool    `json:"released" yaml:"released"`
	ReleasedByUserID   FlexInt `json:"releasedByUserId" yaml:"releasedByUserId"`
	ReleasedByUserName *string `json:"releasedByUserName,omitempty" yaml:"releasedByUserName"`
	ReleasedAt         *string `json:"releasedAt,omitempty" yaml:"releasedAt"`
}

type CustomerWireDTO struct {
	ID   FlexInt `json:"id" yaml:"id"`
	Nome string  `json:"nome" yaml:"nome"`
}

type MachineWireDTO struct {
	ID          FlexInt `json:"id" yaml:"id"`
	Modelo      string  `json:"modelo" yaml:"modelo"`
	NumeroSerie string  `json:"numero_serie" yaml:"numero_serie"`
}

type ContactWireDTO struct {
	Nome     string `json:"nome" yaml:"nome"`
	Telefone string `json:"telefone" yaml:"telefone"`
	Email    string `json:"email" yaml:"email"`
}

// OrderWireDTO is the order payload as served by the field-service API.
type OrderWireDTO struct {
	ID               FlexInt                  `json:"id" yaml:"id"`
	Status           FlexInt                  `json:"status" yaml:"status"`
	PendingIssueID   FlexInt                  `json:"pendingIssueId" yaml:"pendingIssueId"`
	FinancialRelease *FinancialReleaseWireDTO `json:"financialRelease" yaml:"financialRelease"`
	Customer         *CustomerWireDTO         `json:"customer" yaml:"customer"`
	Machine          *MachineWireDTO          `json:"machine" yaml:"machine"`
	Contact          *ContactWireDTO          `json:"contact" yaml:"contact"`
	Fats             []FatWireDTO             `json:"fats" yaml:"fats"`
}

var releasedAtLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05", "2006-01-02"}

// OrderFromWire translates the wire payload into the typed snapshot. It never
// fails on missing nested data; unknown status codes are returned in warnings.
func OrderFromWire(w OrderWireDTO) (*entities.Order, []string) {
	var warnings []string

	order := &entities.Order{ID: w.ID.Value}

	status, ok := entities.ParseOrderStatus(int(w.Status.Value))
	if !ok {
		warnings = append(warnings, fmt.Sprintf("unknown order status %d", w.Status.Value))
	}
	order.Status = status

	if w.PendingIssueID.Valid {
		id := w.PendingIssueID.Value
		order.PendingIssueID = &id
	}

	if fr := w.FinancialRelease; fr != nil {
		release := &entities.FinancialRelease{
			Released:           fr.Released,
			ReleasedByUserName: fr.ReleasedByUserName,
		}
		if fr.ReleasedByUserID.Valid {
			id := fr.ReleasedByUserID.Value
			release.ReleasedByUserID = &id
		}
		if fr.ReleasedAt != nil && *fr.ReleasedAt != "" {
			if at, err := parseReleasedAt(*fr.ReleasedAt); err == nil {
				release.ReleasedAt = &at
			} else {
				warnings = append(warnings, fmt.Sprintf("unparseable releasedAt %q", *fr.ReleasedAt))
			}
		}
		order.FinancialRelease = release
	}

	if c := w.Customer; c != nil {
		order.Customer = &entities.Customer{ID: c.ID.Value, Name: c.Nome}
	}
	if m := w.Machine; m != nil {
		order.Machine = &entities.Machine{ID: m.ID.Value, Model: m.Modelo, SerialNumber: m.NumeroSerie}
	}
	if c := w.Contact; c != nil {
		order.Contact = &entities.Contact{Name: c.Nome, Phone: c.Telefone, Email: c.Email}
	}

	order.Fats = make([]entities.FAT, 0, len(w.Fats))
	for _, f := range w.Fats {
		order.Fats = append(order.Fats, fatFromWire(f))
	}

	return order, warnings
}

func fatFromWire(f FatWireDTO) entities.FAT {
	raw := strings.TrimSpace(string(f.StatusFat))
	fat := entities.FAT{
		ID:                f.IDFat.Value,
		Status:            entities.ParseFatStatus(raw),
		RawStatus:         raw,
		DescricaoProblema: f.DescricaoProblema,
		SolucaoEncontrada: f.SolucaoEncontrada,
		Observacoes:       f.Observacoes,
		NumeroCiclos:      int(f.NumeroCiclos.Value),
	}
	if t := f.Tecnico; t != nil && t.ID.Valid {
		fat.Technician = &entities.Technician{
			ID:                  t.ID.Value,
			Name:                t.Nome,
			TecnicoProprio:      t.TecnicoProprio,
			TecnicoTerceirizado: t.TecnicoTerceirizado,
		}
	}
	return fat
}

func parseReleasedAt(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range releasedAtLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
