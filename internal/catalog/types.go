package catalog

// Category tags used to derive method universes.
const (
	CategoryContraceptive = "contraceptive"
	CategoryBarrier       = "barrier"
	CategorySurgical      = "surgical"
)

// Method names referenced by the built-in rule sets.
const (
	CombinedPill    = "Combined Oral Contraceptives (COCs)"
	ProgestinPill   = "Progestin-Only Pills (POPs)"
	Patch           = "Contraceptive Patch"
	VaginalRing     = "Vaginal Ring (e.g., NuvaRing)"
	Injectable      = "Injectable (e.g., Depo-Provera)"
	EmergencyPill   = "Emergency Contraceptive Pill"
	HormonalIUD     = "Hormonal IUD (e.g., Mirena)"
	CopperIUD       = "Copper IUD (e.g., Paragard)"
	ExternalCondoms = "External Condoms"
	Vasectomy       = "Vasectomy"
)

// Method is one row of the reference table. Contraceptive methods fill
// PrescriptionRequired; barrier and surgical methods fill Type and Duration.
type Method struct {
	Name                 string `json:"name"`
	Category             string `json:"category"`
	PrescriptionRequired bool   `json:"prescription_required"`
	Type                 string `json:"type,omitempty"`
	Duration             string `json:"duration,omitempty"`
	Efficacy             string `json:"efficacy"`
	Notes                string `json:"notes"`
}

func validCategory(c string) bool {
	switch c {
	case CategoryContraceptive, CategoryBarrier, CategorySurgical:
		return true
	}
	return false
}
