package bearing

import (
	"fmt"
	"sort"
)

type Steel struct {
	Key     string  `json:"key"`
	FyMPa   float64 `json:"fy_mpa"`
	EsMPa   float64 `json:"es_mpa"`
	Poisson float64 `json:"poisson"`
}

type Elastomer struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Family string  `json:"family"` // NR or CR
	GMPa   float64 `json:"g_mpa"`
	EbMPa  float64 `json:"eb_mpa"` // bulk modulus
}

// Isolator is a seismic isolator compound. QdNormMPa is the characteristic
// strength per unit rubber area; zero for damping-only rubber.
type Isolator struct {
	Key       string  `json:"key"`
	Name      string  `json:"name"`
	Family    string  `json:"family"` // LRB or HDRB
	GMPa      float64 `json:"g_mpa"`
	QdNormMPa float64 `json:"qd_norm_mpa"`
	Alpha     float64 `json:"alpha"` // post-yield / initial stiffness
	LeadCore  bool    `json:"lead_core"`
}

// Catalog is a read-only material table. Lookups return copies.
type Catalog struct {
	steels     map[string]Steel
	elastomers map[string]Elastomer
	isolators  map[string]Isolator
}

// Listing is the JSON view of a catalog.
type Listing struct {
	Steels     []Steel     `json:"steels"`
	Elastomers []Elastomer `json:"elastomers"`
	Isolators  []Isolator  `json:"isolators"`
}

var defaultCatalog = DefaultCatalog()

// DefaultCatalog returns the EN 10025 steel grades and the elastomer and
// isolator compounds offered by the tool.
func DefaultCatalog() *Catalog {
	c := &Catalog{
		steels:     map[string]Steel{},
		elastomers: map[string]Elastomer{},
		isolators:  map[string]Isolator{},
	}
	for _, s := range []Steel{
		{Key: "S235JR", FyMPa: 235, EsMPa: 210000, Poisson: 0.3},
		{Key: "S275JR", FyMPa: 275, EsMPa: 210000, Poisson: 0.3},
		{Key: "S355JR", FyMPa: 355, EsMPa: 210000, Poisson: 0.3},
	} {
		c.steels[s.Key] = s
	}
	for _, e := range []Elastomer{
		{Key: "NR-G0.9", Name: "Natural rubber (NR) G=0.9", Family: "NR", GMPa: 0.9, EbMPa: 2000},
		{Key: "NR-G1.15", Name: "Natural rubber (NR) G=1.15", Family: "NR", GMPa: 1.15, EbMPa: 2000},
		{Key: "CR-G0.9", Name: "Chloroprene (CR) G=0.9", Family: "CR", GMPa: 0.9, EbMPa: 2000},
		{Key: "CR-G1.15", Name: "Chloroprene (CR) G=1.15", Family: "CR", GMPa: 1.15, EbMPa: 2000},
	} {
		c.elastomers[e.Key] = e
	}
	for _, i := range []Isolator{
		{Key: "LRB-G0.6", Name: "LRB (G=0.6 MPa, lead core)", Family: "LRB", GMPa: 0.6, QdNormMPa: 0.08, Alpha: 0.1, LeadCore: true},
		{Key: "HDRB-G0.8", Name: "HDRB (G=0.8 MPa, high damping)", Family: "HDRB", GMPa: 0.8, QdNormMPa: 0, Alpha: 0.15},
	} {
		c.isolators[i.Key] = i
	}
	return c
}

func (c *Catalog) Steel(key string) (Steel, error) {
	s, ok := c.steels[key]
	if !ok {
		return Steel{}, fmt.Errorf("%w: steel grade %q", ErrUnknownMaterial, key)
	}
	return s, nil
}

func (c *Catalog) Elastomer(key string) (Elastomer, error) {
	e, ok := c.elastomers[key]
	if !ok {
		return Elastomer{}, fmt.Errorf("%w: elastomer %q", ErrUnknownMaterial, key)
	}
	return e, nil
}

func (c *Catalog) Isolator(key string) (Isolator, error) {
	i, ok := c.isolators[key]
	if !ok {
		return Isolator{}, fmt.Errorf("%w: isolator %q", ErrUnknownMaterial, key)
	}
	return i, nil
}

// List returns every entry sorted by key.
func (c *Catalog) List() Listing {
	var out Listing
	for _, s := range c.steels {
		out.Steels = append(out.Steels, s)
	}
	for _, e := range c.elastomers {
		out.Elastomers = append(out.Elastomers, e)
	}
	for _, i := range c.isolators {
		out.Isolators = append(out.Isolators, i)
	}
	sort.Slice(out.Steels, func(a, b int) bool { return out.Steels[a].Key < out.Steels[b].Key })
	sort.Slice(out.Elastomers, func(a, b int) bool { return out.Elastomers[a].Key < out.Elastomers[b].Key })
	sort.Slice(out.Isolators, func(a, b int) bool { return out.Isolators[a].Key < out.Isolators[b].Key })
	return out
}

// Materials lists the default catalog.
func Materials() Listing {
	return defaultCatalog.List()
}
