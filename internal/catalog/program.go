package catalog

import (
	"slices"
	"strings"
)

const (
	DegreeCertificate = "Certificate"
	DegreeAssociate   = "Associate"
	DegreeBachelors   = "Bachelor's"
)

// DegreeOptions lists degree levels exactly as they appear in the data.
var DegreeOptions = []string{DegreeCertificate, DegreeAssociate, DegreeBachelors}

// InterestOptions is the controlled interest vocabulary offered to users.
var InterestOptions = []string{
	"Engineering",
	"Computer Science",
	"Business",
	"Healthcare",
	"Arts",
}

var USStates = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
	"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
	"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
	"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
}

// SelectivityBand is a categorical proxy for admission competitiveness.
type SelectivityBand string

const (
	BandOpen            SelectivityBand = "open"
	BandModerate        SelectivityBand = "moderate"
	BandSelective       SelectivityBand = "selective"
	BandHighlySelective SelectivityBand = "highly_selective"
)

// TargetGPA maps the band to an approximate target GPA.
// Unknown bands get the open-access target.
func (b SelectivityBand) TargetGPA() float64 {
	switch SelectivityBand(strings.ToLower(string(b))) {
	case BandHighlySelective:
		return 3.7
	case BandSelective:
		return 3.3
	case BandModerate:
		return 2.8
	default:
		return 2.3
	}
}

// Program is a single catalog entry. Optional fields are modeled so that
// "unknown" can never be confused with a real value: an empty State is an
// unknown state and a nil AnnualTuition is an unknown tuition.
type Program struct {
	Name            string          `json:"program_name" mapstructure:"program_name"`
	Institution     string          `json:"institution,omitempty" mapstructure:"institution"`
	DegreeLevel     string          `json:"degree_level" mapstructure:"degree_level"`
	InterestAreas   []string        `json:"interest_areas" mapstructure:"interest_areas"`
	DeliveryModes   []string        `json:"delivery_modes,omitempty" mapstructure:"delivery_modes"`
	State           string          `json:"state,omitempty" mapstructure:"state"`
	City            string          `json:"city,omitempty" mapstructure:"city"`
	AnnualTuition   *float64        `json:"annual_tuition,omitempty" mapstructure:"annual_tuition"`
	SelectivityBand SelectivityBand `json:"selectivity_band,omitempty" mapstructure:"selectivity_band"`
	URL             string          `json:"url,omitempty" mapstructure:"url"`
}

// Tuition returns the annual tuition and whether it is known.
func (p *Program) Tuition() (float64, bool) {
	if p.AnnualTuition == nil {
		return 0, false
	}
	return *p.AnnualTuition, true
}

// Level returns the trimmed degree level.
func (p *Program) Level() string {
	return strings.TrimSpace(p.DegreeLevel)
}

// HasInterest reports whether the program lists the interest area.
func (p *Program) HasInterest(area string) bool {
	for _, a := range p.InterestAreas {
		if a == area {
			return true
		}
	}
	return false
}

// clone returns a copy sharing no memory with p.
func (p Program) clone() Program {
	p.InterestAreas = slices.Clone(p.InterestAreas)
	p.DeliveryModes = slices.Clone(p.DeliveryModes)
	if p.AnnualTuition != nil {
		tuition := *p.AnnualTuition
		p.AnnualTuition = &tuition
	}
	return p
}

func (p Program) trimmed() Program {
	p.DegreeLevel = strings.TrimSpace(p.DegreeLevel)
	p.State = strings.TrimSpace(p.State)
	return p
}
