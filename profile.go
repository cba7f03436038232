package ghkk

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// UserProfile is the subset of the /user payload gh-kk displays.
// Only Login is required.
type UserProfile struct {
	Login   string  `json:"login"`
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Company *string `json:"company"`
	Bio     *string `json:"bio"`
}

// ProfileField is one labelled optional field.
type ProfileField struct {
	Label string
	Value string
}

// ParseProfile decodes a /user payload. It fails with ErrInvalidProfile
// when the payload is not a JSON object or login is missing or empty.
func ParseProfile(data []byte) (*UserProfile, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: payload is not an object", ErrInvalidProfile)
	}

	var p UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if strings.TrimSpace(p.Login) == "" {
		return nil, fmt.Errorf("%w: missing login", ErrInvalidProfile)
	}
	return &p, nil
}

// Fields returns the present, non-empty optional fields in display order:
// name, email, company, bio.
func (p *UserProfile) Fields() []ProfileField {
	candidates := []struct {
		label string
		value *string
	}{
		{"Name", p.Name},
		{"Email", p.Email},
		{"Company", p.Company},
		{"Bio", p.Bio},
	}

	var fields []ProfileField
	for _, c := range candidates {
		if c.value == nil || strings.TrimSpace(*c.value) == "" {
			continue
		}
		fields = append(fields, ProfileField{Label: c.label, Value: *c.value})
	}
	return fields
}

// PrettyJSON re-indents a JSON document with two-space indentation.
func PrettyJSON(data []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(data), "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
