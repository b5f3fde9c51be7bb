package model

import (
	"time"
)

// NoticeType distinguishes ordinary penalty notices from court prosecutions.
type NoticeType string

const (
	NoticePenalty     NoticeType = "penalty_notice"
	NoticeProsecution NoticeType = "prosecution"
)

// Address is a geocoded street address. Lat/Lon are nil for records the
// geocoding pipeline could not resolve.
type Address struct {
	Street     string   `json:"street,omitempty"`
	City       string   `json:"city,omitempty"`
	PostalCode string   `json:"postal_code,omitempty"`
	Full       string   `json:"full,omitempty"`
	Lat        *float64 `json:"lat"`
	Lon        *float64 `json:"lon"`
}

// Geocoded reports whether the address carries usable coordinates.
func (a Address) Geocoded() bool {
	return a.Lat != nil && a.Lon != nil
}

// Prosecution holds the extra metadata present on prosecution records.
type Prosecution struct {
	Slug                 string `json:"slug,omitempty"`
	Court                string `json:"court,omitempty"`
	BroughtBy            string `json:"brought_by,omitempty"`
	Decision             string `json:"decision,omitempty"`
	PenaltyDetailsRaw    string `json:"penalty_details_raw,omitempty"`
	DecisionDetails      string `json:"decision_details,omitempty"`
	UsualPlaceOfBusiness string `json:"usual_place_of_business,omitempty"`
}

// PenaltyRecord is one issued notice as published by the food authority.
// Scraped data is imperfect: every field except Name and PenaltyAmount may
// be empty.
type PenaltyRecord struct {
	Type                NoticeType   `json:"type,omitempty"`
	PenaltyNoticeNumber string       `json:"penalty_notice_number,omitempty"`
	ProsecutionNoticeID string       `json:"prosecution_notice_id,omitempty"`
	Name                string       `json:"name"`
	Address             Address      `json:"address"`
	Council             string       `json:"council,omitempty"`
	DateOfOffence       string       `json:"date_of_offence,omitempty"`
	DateIssued          string       `json:"date_issued,omitempty"`
	OffenceCode         string       `json:"offence_code,omitempty"`
	OffenceDescription  string       `json:"offence_description,omitempty"`
	OffenceNature       string       `json:"offence_nature,omitempty"`
	PenaltyAmount       string       `json:"penalty_amount"`
	PartyServed         string       `json:"party_served,omitempty"`
	IssuedBy            string       `json:"issued_by,omitempty"`
	Prosecution         *Prosecution `json:"prosecution,omitempty"`
}

// IsProsecution reports whether the record is a court prosecution rather
// than a penalty notice.
func (r PenaltyRecord) IsProsecution() bool {
	return r.Type == NoticeProsecution || r.Prosecution != nil
}

// Amount returns the record's monetary weight: the sum of every currency
// token in the penalty_amount field.
func (r PenaltyRecord) Amount() float64 {
	return ParseAmount(r.PenaltyAmount)
}

// dateLayouts are the formats the scrape pipeline emits, most specific first.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// OffenceTime returns the record's offence date, falling back to the issued
// date when the offence date is absent or unparseable. The second return is
// false when neither date is usable.
func (r PenaltyRecord) OffenceTime() (time.Time, bool) {
	if t, ok := parseDate(r.DateOfOffence); ok {
		return t, true
	}
	return parseDate(r.DateIssued)
}

// IssuedTime returns the record's issued date, if usable.
func (r PenaltyRecord) IssuedTime() (time.Time, bool) {
	return parseDate(r.DateIssued)
}

// LocationGroup aggregates the records issued against one business at one
// place. Groups are rebuilt in full whenever the dataset changes and are
// read-only afterwards.
type LocationGroup struct {
	Name        string          `json:"name"`
	Address     Address         `json:"address"`
	Council     string          `json:"council,omitempty"`
	PartyServed string          `json:"party_served,omitempty"`
	Penalties   []PenaltyRecord `json:"penalties"`
}

// TotalAmount is the group's cumulative monetary weight.
func (g LocationGroup) TotalAmount() float64 {
	var total float64
	for _, r := range g.Penalties {
		total += r.Amount()
	}
	return total
}
