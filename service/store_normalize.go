package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"armario-outfits/models"
	"armario-outfits/utils"
)

// flexibleString accepts a JSON string or number
type flexibleString string

func (f *flexibleString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", string(data))
	}
	*f = flexibleString(n.String())
	return nil
}

// reference is a field the store sends either as a bare id or as a populated
// document ({_id, name, ...})
type reference struct {
	ID   string
	Name string
}

func (r *reference) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] != '{' {
		var id flexibleString
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		r.ID = string(id)
		return nil
	}
	var doc struct {
		UnderscoreID flexibleString `json:"_id"`
		ID           flexibleString `json:"id"`
		ItemID       flexibleString `json:"itemId"`
		Name         string         `json:"name"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	r.ID = utils.FirstNonEmpty(string(doc.UnderscoreID), string(doc.ID), string(doc.ItemID))
	r.Name = doc.Name
	return nil
}

// rawCatalogItem is the catalog item as the store sends it
type rawCatalogItem struct {
	UnderscoreID flexibleString `json:"_id"`
	ID           flexibleString `json:"id"`
	ItemID       flexibleString `json:"itemId"`
	Name         string         `json:"name"`
	Image        string         `json:"image"`
	ImageURL     string         `json:"imageUrl"`
	Type         reference      `json:"type"`
	Color        string         `json:"color"`
	DressCode    string         `json:"dressCode"`
	Brand        string         `json:"brand"`
	Material     string         `json:"material"`
}

func (r rawCatalogItem) normalize() models.CatalogItem {
	return models.CatalogItem{
		ID:        utils.FirstNonEmpty(string(r.UnderscoreID), string(r.ID), string(r.ItemID)),
		Name:      strings.TrimSpace(r.Name),
		ImageRef:  utils.FirstNonEmpty(r.Image, r.ImageURL),
		Type:      utils.FirstNonEmpty(r.Type.ID, r.Type.Name),
		Color:     r.Color,
		DressCode: r.DressCode,
		Brand:     r.Brand,
		Material:  r.Material,
	}
}

type rawCategory struct {
	UnderscoreID flexibleString `json:"_id"`
	ID           flexibleString `json:"id"`
	Name         string         `json:"name"`
}

func (r rawCategory) normalize() models.Category {
	return models.Category{
		ID:   utils.FirstNonEmpty(string(r.UnderscoreID), string(r.ID)),
		Name: strings.TrimSpace(r.Name),
	}
}

type rawOutfitItem struct {
	Item     reference `json:"item"`
	X        float64   `json:"x"`
	Y        float64   `json:"y"`
	Width    float64   `json:"width"`
	Height   float64   `json:"height"`
	Rotation float64   `json:"rotation"`
	ZIndex   int       `json:"zIndex"`
}

type rawOutfit struct {
	UnderscoreID flexibleString  `json:"_id"`
	ID           flexibleString  `json:"id"`
	Name         string          `json:"name"`
	Occasion     string          `json:"occasion"`
	PlannedDate  string          `json:"plannedDate"`
	User         reference       `json:"user"`
	Items        []rawOutfitItem `json:"items"`
}

func (r rawOutfit) normalize() models.Outfit {
	outfit := models.Outfit{
		ID:          utils.FirstNonEmpty(string(r.UnderscoreID), string(r.ID)),
		Name:        r.Name,
		Occasion:    r.Occasion,
		PlannedDate: normalizeDate(r.PlannedDate),
		User:        r.User.ID,
		Items:       make([]models.OutfitItem, 0, len(r.Items)),
	}
	for _, item := range r.Items {
		outfit.Items = append(outfit.Items, models.OutfitItem{
			CatalogItemID: item.Item.ID,
			X:             item.X,
			Y:             item.Y,
			Width:         item.Width,
			Height:        item.Height,
			Rotation:      item.Rotation,
			ZIndex:        item.ZIndex,
		})
	}
	return outfit
}

// normalizeDate keeps the YYYY-MM-DD part of an ISO timestamp
func normalizeDate(value string) string {
	value = strings.TrimSpace(value)
	if len(value) > 10 && value[10] == 'T' {
		return value[:10]
	}
	return value
}

// decodeCollection decodes either a bare JSON array or an object wrapping the
// array under one of keys
func decodeCollection[T any](body []byte, keys ...string) ([]T, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var list []T
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, err
		}
		return list, nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, err
	}
	for _, key := range keys {
		raw, ok := wrapper[key]
		if !ok {
			continue
		}
		var list []T
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil, err
		}
		return list, nil
	}
	return nil, fmt.Errorf("response has no collection under %s", strconv.Quote(strings.Join(keys, "|")))
}

// decodeDocument decodes a single document, optionally wrapped under one of keys
func decodeDocument[T any](body []byte, keys ...string) (T, error) {
	var zero T
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return zero, err
	}
	for _, key := range keys {
		if raw, ok := wrapper[key]; ok && len(raw) > 0 && raw[0] == '{' {
			var doc T
			if err := json.Unmarshal(raw, &doc); err != nil {
				return zero, err
			}
			return doc, nil
		}
	}
	var doc T
	if err := json.Unmarshal(body, &doc); err != nil {
		return zero, err
	}
	return doc, nil
}
