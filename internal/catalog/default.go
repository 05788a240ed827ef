package catalog

// defaultMethods is the built-in reference table. The Postgres seed migration
// carries the same rows.
var defaultMethods = []Method{
	{
		Name:                 CombinedPill,
		Category:             CategoryContraceptive,
		PrescriptionRequired: true,
		Efficacy:             "~91-99% (typical vs. ideal use)",
		Notes:                "Daily pill, requires adherence",
	},
	{
		Name:                 ProgestinPill,
		Category:             CategoryContraceptive,
		PrescriptionRequired: true,
		Efficacy:             "~91-99% (typical vs. ideal use)",
		Notes:                "Daily pill, ideal for estrogen-contraindicated patients, requires strict adherence",
	},
	{
		Name:                 Patch,
		Category:             CategoryContraceptive,
		PrescriptionRequired: true,
		Efficacy:             "~91-99% (typical vs. ideal use)",
		Notes:                "Use for 3 weeks, remove for one week, skin adhesion required",
	},
	{
		Name:                 VaginalRing,
		Category:             CategoryContraceptive,
		PrescriptionRequired: true,
		Efficacy:             "~91-99% (decrease with misuse)",
		Notes:                "Use for 3 weeks, remove for one week, worn on inside of vagina",
	},
	{
		Name:                 Injectable,
		Category:             CategoryContraceptive,
		PrescriptionRequired: true,
		Efficacy:             "~96-99% (typical vs. ideal use)",
		Notes:                "Every 3 months, injected into arm or butt, adherence tracking required",
	},
	{
		Name:                 EmergencyPill,
		Category:             CategoryContraceptive,
		PrescriptionRequired: false,
		Efficacy:             "54-98% (depends on time after intercourse)",
		Notes:                "Very time-sensitive, not for regular use, side effects can include nausea, fatigue, headaches, bleeding, pain, and more",
	},
	{
		Name:                 HormonalIUD,
		Category:             CategoryContraceptive,
		PrescriptionRequired: true,
		Efficacy:             ">99%",
		Notes:                "3–8 years, inserted at clinic, can cause irregular or heavy periods",
	},
	{
		Name:                 CopperIUD,
		Category:             CategoryContraceptive,
		PrescriptionRequired: true,
		Efficacy:             ">99%",
		Notes:                "10+ years, can be used as emergency contraception, can cause heavy, irregular, painful periods",
	},
	{
		Name:     ExternalCondoms,
		Category: CategoryBarrier,
		Type:     "Barrier",
		Duration: "Single Use",
		Efficacy: "87-98% (typical vs. ideal use)",
		Notes:    "Can protect against STIs",
	},
	{
		Name:     Vasectomy,
		Category: CategorySurgical,
		Type:     "Surgical",
		Duration: "Until Surgical Reversal",
		Efficacy: ">99%",
		Notes:    "Requires in-person procedure",
	},
}

var defaultCatalog = mustNew(defaultMethods)

// Default returns the built-in catalog. The value is shared; callers must not
// mutate it (the Catalog API offers no mutation).
func Default() *Catalog {
	return defaultCatalog
}

func mustNew(methods []Method) *Catalog {
	c, err := New(methods)
	if err != nil {
		panic(err)
	}
	return c
}
