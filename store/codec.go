package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyDocument   = errors.New("empty document")
	ErrInvalidDocument = errors.New("invalid document")
)

// requiredKeys must be present for a payload to count as a document at all
var requiredKeys = []string{"store", "products"}

// Decode parses a stored payload. Values are coerced into the schema rather than rejected where
// the intent is clear (a price typed as "25,90", a quantity stored as "2"), and anything the
// payload leaves out is merged from Defaults. A field that cannot be coerced at all is logged and
// left at its zero value: only a payload without the required keys is rejected.
func Decode(data []byte) (Document, error) {
	return decode(data, false)
}

// DecodeStrict is Decode for documents submitted by the operator: a field that cannot be coerced
// rejects the whole document.
func DecodeStrict(data []byte) (Document, error) {
	return decode(data, true)
}

func decode(data []byte, strict bool) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, ErrEmptyDocument
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return Document{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	return fromMap(raw, strict)
}

// FromMap is Decode for a payload that has already been unmarshalled
func FromMap(raw map[string]any) (Document, error) {
	return fromMap(raw, false)
}

func fromMap(raw map[string]any, strict bool) (Document, error) {
	if raw == nil {
		return Document{}, ErrEmptyDocument
	}
	for _, key := range requiredKeys {
		if absent(raw, key) {
			return Document{}, fmt.Errorf("%w: missing %q", ErrInvalidDocument, key)
		}
	}

	var doc Document
	if err := coerce(raw, &doc, strict); err != nil {
		return Document{}, err
	}

	mergeDefaults(&doc, raw)
	return doc, nil
}

// Encode writes the document the way it is persisted: indented JSON, lists never null
func Encode(doc Document) ([]byte, error) {
	doc.Normalize()
	return json.MarshalIndent(doc, "", "  ")
}

// Normalize replaces nil lists with empty ones and gives status-less orders the initial status
func (d *Document) Normalize() {
	if d.Categories == nil {
		d.Categories = []Category{}
	}
	if d.Products == nil {
		d.Products = []Product{}
	}
	if d.Banners == nil {
		d.Banners = []string{}
	}
	if d.Orders == nil {
		d.Orders = []Order{}
	}
	if d.Store.DeliveryFees == nil {
		d.Store.DeliveryFees = []DeliveryFee{}
	}
	for i := range d.Orders {
		if d.Orders[i].Status == "" {
			d.Orders[i].Status = StatusPending
		}
		if d.Orders[i].Items == nil {
			d.Orders[i].Items = []OrderItem{}
		}
	}
}

// DecodeProduct parses a single product as typed into an admin form. A product is available
// unless it says otherwise.
func DecodeProduct(data []byte) (Product, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil || raw == nil {
		return Product{}, fmt.Errorf("%w: product is not a JSON object", ErrInvalidDocument)
	}

	var p Product
	if err := coerce(raw, &p, true); err != nil {
		return Product{}, err
	}
	if absent(raw, "available") {
		p.Available = true
	}
	return p, nil
}

func coerce(raw map[string]any, result any, strict bool) error {
	hook := mapstructure.DecodeHookFunc(amountHook(strict))
	if !strict {
		hook = mapstructure.ComposeDecodeHookFunc(amountHook(false), lenientScalarHook)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       hook,
		WeaklyTypedInput: true,
		TagName:          "json",
		Result:           result,
	})
	if err != nil {
		return err
	}
	if err = decoder.Decode(raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return nil
}

func mergeDefaults(doc *Document, raw map[string]any) {
	defaults := Defaults()

	if absent(raw, "categories") {
		doc.Categories = defaults.Categories
	}
	if absent(raw, "banners") {
		doc.Banners = defaults.Banners
	}

	storeRaw, _ := raw["store"].(map[string]any)
	if absent(storeRaw, "openingHours") {
		doc.Store.OpeningHours = defaults.Store.OpeningHours
	}
	if absent(storeRaw, "acceptsCard") {
		doc.Store.AcceptsCard = true
	}
	if absent(storeRaw, "acceptsCash") {
		doc.Store.AcceptsCash = true
	}

	doc.Normalize()
}

func absent(m map[string]any, key string) bool {
	v, ok := m[key]
	return !ok || v == nil
}

var decimalType = reflect.TypeOf(decimal.Decimal{})

// amountHook converts loosely typed money values. Unless strict, an unreadable amount becomes zero.
func amountHook(strict bool) mapstructure.DecodeHookFuncType {
	return func(_ reflect.Type, to reflect.Type, data any) (any, error) {
		if to != decimalType {
			return data, nil
		}

		amount, err := parseAmount(data)
		if err != nil {
			if strict {
				return nil, err
			}
			log.Warn().Err(err).Msg("Unreadable amount in stored document, using 0")
			return decimal.Zero, nil
		}
		return amount, nil
	}
}

func parseAmount(data any) (decimal.Decimal, error) {
	switch v := data.(type) {
	case decimal.Decimal:
		return v, nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return decimal.Zero, nil
		}
		return decimal.NewFromString(normalizeAmount(s))
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case bool:
		return decimal.Zero, fmt.Errorf("cannot use bool %v as an amount", v)
	}
	return decimal.Zero, fmt.Errorf("cannot use %T as an amount", data)
}

// normalizeAmount accepts both "1.045,50" and "1,045.50": whichever separator comes last is the
// decimal point
func normalizeAmount(s string) string {
	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma < 0:
		return s
	case dot < 0:
		return strings.Replace(s, ",", ".", 1)
	case comma > dot:
		return strings.Replace(strings.ReplaceAll(s, ".", ""), ",", ".", 1)
	default:
		return strings.ReplaceAll(s, ",", "")
	}
}

// lenientScalarHook turns numbers and flags that cannot be read into zero values
func lenientScalarHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	var err error

	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v := data.(type) {
		case json.Number:
			if _, err = v.Int64(); err == nil {
				return v, nil
			}
			f, ferr := v.Float64()
			if ferr == nil {
				return int64(f), nil
			}
		case string:
			s := strings.TrimSpace(v)
			if _, err = strconv.ParseInt(s, 10, 64); err == nil {
				return s, nil
			}
		default:
			return data, nil
		}
	case reflect.Float32, reflect.Float64:
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		s = strings.TrimSpace(s)
		if _, err = strconv.ParseFloat(s, 64); err == nil {
			return s, nil
		}
	case reflect.Bool:
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		s = strings.TrimSpace(s)
		if _, err = strconv.ParseBool(s); err == nil {
			return s, nil
		}
	default:
		return data, nil
	}

	log.Warn().Err(err).Msgf("Unreadable %s %v in stored document, using zero", to.Kind(), data)
	return reflect.Zero(to).Interface(), nil
}

// Validate checks what a wholesale replacement must satisfy before it is saved
func (d Document) Validate() error {
	var problems []string

	seen := make(map[string]bool, len(d.Categories))
	for _, c := range d.Categories {
		if seen[c.ID] {
			problems = append(problems, fmt.Sprintf("duplicate category id %q", c.ID))
		}
		seen[c.ID] = true
	}

	for _, p := range d.Products {
		if p.Price.IsNegative() {
			problems = append(problems, fmt.Sprintf("product %q has a negative price", p.ID))
		}
	}

	for _, f := range d.Store.DeliveryFees {
		if f.Fee.IsNegative() {
			problems = append(problems, fmt.Sprintf("delivery fee %q is negative", f.Name))
		}
	}

	for _, o := range d.Orders {
		for _, item := range o.Items {
			if item.Quantity < 1 {
				problems = append(problems, fmt.Sprintf("order %q has an item with quantity %d", o.ID, item.Quantity))
			}
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(problems, "; "))
	}
	return nil
}
