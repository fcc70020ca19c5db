package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/custodia-labs/incentiva/internal/core/domain"
)

// Source keys of the dataset format.
const (
	keySector    = "setor"
	keyControl   = "controle_acionario"
	keyFacts     = "fatos_extraidos"
	keyPlans     = "planos_identificados"
	keyVesting   = "periodo_vesting"
	keyDilution  = "diluicao_maxima_percentual"
	keyClawback  = "malus_clawback_presente"
	keyValue     = "valor"
	keyPresent   = "presente"
	keyDocuments = "documentos_fonte"
)

// declaration is one company entry of the file. clawbackSet records whether
// the entry stated the clawback flag, so a later explicit false can win a merge.
type declaration struct {
	company     domain.Company
	clawbackSet bool
}

// entry is one key/value pair of a JSON object, in document order.
type entry struct {
	key   string
	value json.RawMessage
}

// Decode reads a dataset from r, resolving duplicate names with policy.
func Decode(ctx context.Context, r io.Reader, policy domain.DuplicatePolicy) (*domain.Dataset, error) {
	if !policy.IsValid() {
		policy = domain.DuplicateMerge
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, parseError(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, parseError(fmt.Errorf("root is %s, want an object", describeToken(tok)))
	}

	ds := &domain.Dataset{}
	index := make(map[string]int)

	for dec.More() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name, raw, err := nextEntry(dec)
		if err != nil {
			return nil, parseError(err)
		}

		decl, err := decodeCompany(name, raw, policy)
		if err != nil {
			return nil, err
		}
		company := decl.company

		pos, seen := index[name]
		if !seen {
			index[name] = len(ds.Companies)
			ds.Companies = append(ds.Companies, company)
			continue
		}

		switch policy {
		case domain.DuplicateReject:
			return nil, duplicateError("company", name)
		case domain.DuplicateKeepLast:
			ds.Companies[pos] = company
		case domain.DuplicateMerge:
			ds.Companies[pos] = mergeCompany(ds.Companies[pos], decl)
		}
	}

	// Closing brace of the root object.
	if _, err := dec.Token(); err != nil {
		return nil, parseError(err)
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, parseError(err)
		}
		return nil, parseError(fmt.Errorf("unexpected %s after root object", describeToken(tok)))
	}

	return ds, nil
}

// decodeCompany builds a company from its raw JSON value. Only duplicate
// plans under the reject policy produce an error.
func decodeCompany(name string, raw json.RawMessage, policy domain.DuplicatePolicy) (declaration, error) {
	decl := declaration{company: domain.Company{Name: name}}

	fields, ok := objectEntries(raw)
	if !ok {
		return decl, nil
	}
	byKey := lastByKey(fields)

	decl.company.Sector = stringValue(byKey[keySector])
	decl.company.ControlType = stringValue(byKey[keyControl])
	decl.company.Facts, decl.clawbackSet = decodeFacts(byKey[keyFacts])

	plans, err := decodePlans(name, byKey[keyPlans], policy)
	if err != nil {
		return decl, err
	}
	decl.company.Plans = plans

	return decl, nil
}

// decodeFacts reads the extracted facts object. The flag reports whether
// the clawback presence was stated as a boolean.
func decodeFacts(raw json.RawMessage) (domain.Facts, bool) {
	var facts domain.Facts

	fields, ok := objectEntries(raw)
	if !ok {
		return facts, false
	}
	byKey := lastByKey(fields)

	facts.VestingYears = numberValue(nested(byKey[keyVesting], keyValue))
	facts.MaxDilutionPct = numberValue(nested(byKey[keyDilution], keyValue))
	present := boolValue(nested(byKey[keyClawback], keyPresent))
	if present == nil {
		return facts, false
	}
	facts.ClawbackPresent = *present
	return facts, true
}

// decodePlans reads the plan mapping in document order.
func decodePlans(company string, raw json.RawMessage, policy domain.DuplicatePolicy) ([]domain.Plan, error) {
	entries, ok := objectEntries(raw)
	if !ok {
		return nil, nil
	}

	plans := make([]domain.Plan, 0, len(entries))
	index := make(map[string]int, len(entries))

	for _, e := range entries {
		plan := domain.Plan{
			Type:      e.key,
			Documents: documents(e.value),
		}

		pos, seen := index[e.key]
		if !seen {
			index[e.key] = len(plans)
			plans = append(plans, plan)
			continue
		}

		switch policy {
		case domain.DuplicateReject:
			return nil, duplicateError("plan", company+"/"+e.key)
		case domain.DuplicateKeepLast:
			plans[pos] = plan
		case domain.DuplicateMerge:
			plans[pos].Documents = mergeDocuments(plans[pos].Documents, plan.Documents)
		}
	}

	return plans, nil
}

// documents reads documentos_fonte from a plan value, skipping entries
// that are not strings.
func documents(raw json.RawMessage) []string {
	list := nested(raw, keyDocuments)
	if list == nil {
		return []string{}
	}

	var items []json.RawMessage
	if err := json.Unmarshal(list, &items); err != nil {
		return []string{}
	}

	docs := make([]string, 0, len(items))
	for _, item := range items {
		if s := stringValue(item); s != nil {
			docs = append(docs, *s)
		}
	}
	return docs
}

// mergeCompany folds a later declaration of a company into the earlier one.
// Attributes the later entry provides win; plans are merged by type.
func mergeCompany(first domain.Company, decl declaration) domain.Company {
	later := decl.company
	merged := first
	if later.Sector != nil {
		merged.Sector = later.Sector
	}
	if later.ControlType != nil {
		merged.ControlType = later.ControlType
	}
	if later.Facts.VestingYears != nil {
		merged.Facts.VestingYears = later.Facts.VestingYears
	}
	if later.Facts.MaxDilutionPct != nil {
		merged.Facts.MaxDilutionPct = later.Facts.MaxDilutionPct
	}
	if decl.clawbackSet {
		merged.Facts.ClawbackPresent = later.Facts.ClawbackPresent
	}

	plans := make([]domain.Plan, len(first.Plans), len(first.Plans)+len(later.Plans))
	copy(plans, first.Plans)
	index := make(map[string]int, len(plans))
	for i := range plans {
		index[plans[i].Type] = i
	}
	for _, p := range later.Plans {
		if pos, ok := index[p.Type]; ok {
			plans[pos].Documents = mergeDocuments(plans[pos].Documents, p.Documents)
			continue
		}
		index[p.Type] = len(plans)
		plans = append(plans, p)
	}
	merged.Plans = plans

	return merged
}

// mergeDocuments appends docs from b not already in a, keeping order.
func mergeDocuments(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, d := range list {
			if _, ok := seen[d]; ok {
				continue
			}
			seen[d] = struct{}{}
			out = append(out, d)
		}
	}
	return out
}

// nextEntry reads one key and its raw value from an object decoder.
func nextEntry(dec *json.Decoder) (string, json.RawMessage, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", nil, err
	}
	key, ok := tok.(string)
	if !ok {
		return "", nil, fmt.Errorf("expected object key, got %s", describeToken(tok))
	}
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return "", nil, fmt.Errorf("value of %q: %w", key, err)
	}
	return key, raw, nil
}

// objectEntries splits a raw JSON object into ordered entries.
// It reports false when raw is absent or not an object.
func objectEntries(raw json.RawMessage) ([]entry, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, false
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if _, err := dec.Token(); err != nil {
		return nil, false
	}

	var entries []entry
	for dec.More() {
		key, value, err := nextEntry(dec)
		if err != nil {
			return nil, false
		}
		entries = append(entries, entry{key: key, value: value})
	}
	return entries, true
}

// lastByKey indexes entries by key; a repeated key keeps its last value.
func lastByKey(entries []entry) map[string]json.RawMessage {
	m := make(map[string]json.RawMessage, len(entries))
	for _, e := range entries {
		m[e.key] = e.value
	}
	return m
}

// nested returns the value at key inside a raw object, or nil.
func nested(raw json.RawMessage, key string) json.RawMessage {
	entries, ok := objectEntries(raw)
	if !ok {
		return nil
	}
	return lastByKey(entries)[key]
}

// stringValue, numberValue and boolValue return nil when raw is absent,
// null, or of another JSON type.

func stringValue(raw json.RawMessage) *string {
	var s *string
	if raw == nil || json.Unmarshal(raw, &s) != nil {
		return nil
	}
	return s
}

func numberValue(raw json.RawMessage) *float64 {
	var f *float64
	if raw == nil || json.Unmarshal(raw, &f) != nil {
		return nil
	}
	return f
}

func boolValue(raw json.RawMessage) *bool {
	var b *bool
	if raw == nil || json.Unmarshal(raw, &b) != nil {
		return nil
	}
	return b
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "an array"
		}
		return fmt.Sprintf("%q", v.String())
	case string:
		return "a string"
	case json.Number, float64:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func parseError(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrParse, err)
}

func duplicateError(kind, name string) error {
	return fmt.Errorf("%w: %w: %s %q declared twice", domain.ErrParse, domain.ErrDuplicateKey, kind, name)
}
