package domain

import (
	"bytes"
	"encoding/json"
)

// Selector é um valor textual opcional (cor, tamanho, código promocional).
// A ausência é explícita: None() nunca é igual a Some("").
type Selector struct {
	Value string
	Valid bool
}

// Some cria um Selector presente.
func Some(v string) Selector { return Selector{Value: v, Valid: true} }

// None cria um Selector ausente.
func None() Selector { return Selector{} }

// OptionalString converte um ponteiro (nil = ausente) em Selector.
func OptionalString(v *string) Selector {
	if v == nil {
		return None()
	}
	return Some(*v)
}

// Equal compara presença e valor.
func (s Selector) Equal(o Selector) bool {
	return s.Valid == o.Valid && s.Value == o.Value
}

// String devolve o valor ou "" quando ausente.
func (s Selector) String() string {
	if !s.Valid {
		return ""
	}
	return s.Value
}

// MarshalJSON serializa ausência como null.
func (s Selector) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// UnmarshalJSON aceita null ou string.
func (s *Selector) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = None()
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*s = Some(v)
	return nil
}
