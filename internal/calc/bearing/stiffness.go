package bearing

// Stiffness is reported in kN/mm. Kv and Kh always share one area basis.
type Stiffness struct {
	AreaBasis      StiffnessArea `json:"area_basis"`
	AreaMM2        float64       `json:"area_mm2"`
	VerticalKNmm   float64       `json:"vertical_kn_mm"`
	HorizontalKNmm float64       `json:"horizontal_kn_mm"`
}

func computeStiffness(basis StiffnessArea, g Geometry, d Demand, el Elastomer) Stiffness {
	area := g.GrossAreaMM2
	if basis == StiffnessNet {
		area = g.NetAreaMM2
	}
	return Stiffness{
		AreaBasis:      basis,
		AreaMM2:        area,
		VerticalKNmm:   el.EbMPa * area / d.TotalElastomerMM / kNToN,
		HorizontalKNmm: el.GMPa * area / d.TotalElastomerMM / kNToN,
	}
}
