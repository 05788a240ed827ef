package recommend

import (
	"fmt"
	"sort"

	"github.com/gokatarajesh/bc-quiz/internal/catalog"
)

// Built-in rule set names.
const (
	RuleSetClassic  = "classic"
	RuleSetExtended = "extended"
)

func yesNo(id, text string) Question {
	return Question{ID: id, Text: text, Kind: KindBoolean}
}

// Classic is the seven-question quiz. Condoms are not part of its female universe.
func Classic() RuleSet {
	return RuleSet{
		Name:        RuleSetClassic,
		Description: "Seven questions on duration, hormones and procedures",
		Questions: []Question{
			yesNo("longTerm", "Do you want long-term birth control (3+ years)?"),
			yesNo("noEstrogen", "Do you want a method without estrogen?"),
			yesNo("noHormones", "Do you want a hormone-free method?"),
			yesNo("okWithProcedure", "Are you okay with a minor in-office procedure?"),
			yesNo("breastfeeding", "Are you currently breastfeeding?"),
			yesNo("emergency", "Do you need emergency contraception?"),
			yesNo("moodConcerns", "Have you experienced mood issues with hormonal birth control?"),
		},
		Rules: []Rule{
			{
				Name:    "hormone-free-long-term",
				When:    All(Yes("noHormones"), Yes("longTerm"), Yes("okWithProcedure")),
				Methods: []string{catalog.CopperIUD},
			},
			{
				Name:    "hormonal-long-term",
				When:    All(No("noHormones"), Yes("longTerm"), Yes("okWithProcedure")),
				Methods: []string{catalog.HormonalIUD},
			},
			{
				Name:    "short-term-no-estrogen",
				When:    All(No("noHormones"), No("longTerm"), Yes("noEstrogen")),
				Methods: []string{catalog.ProgestinPill, catalog.Injectable},
			},
			{
				Name:    "short-term-combined",
				When:    All(No("noHormones"), No("longTerm"), No("noEstrogen")),
				Methods: []string{catalog.CombinedPill, catalog.Patch, catalog.VaginalRing},
			},
			{
				Name:    "breastfeeding",
				When:    All(Yes("breastfeeding"), No("noHormones")),
				Methods: []string{catalog.ProgestinPill, catalog.HormonalIUD, catalog.Injectable},
			},
			{
				Name:    "emergency",
				When:    Yes("emergency"),
				Methods: []string{catalog.EmergencyPill, catalog.CopperIUD},
			},
			{
				Name:    "mood-concerns",
				When:    Yes("moodConcerns"),
				Methods: []string{catalog.CopperIUD, catalog.ProgestinPill},
			},
		},
		FemaleCategories: []string{catalog.CategoryContraceptive},
	}
}

// Extended is the nine-question quiz. Wanting a pregnancy soon short-circuits
// every rule after it, and condoms are offered to female respondents.
func Extended() RuleSet {
	return RuleSet{
		Name:        RuleSetExtended,
		Description: "Nine questions including pregnancy plans, mood, weight and STI protection",
		Questions: []Question{
			yesNo("wantPregnant", "Do you want to become pregnant within the next year?"),
			yesNo("emergency", "Have you had unprotected sex in the last 5 days?"),
			yesNo("noEstrogen", "Do you need or prefer to avoid estrogen (e.g., migraines with aura, history of blood clots)?"),
			yesNo("noDaily", "Would you prefer a method you don't have to think about every day?"),
			yesNo("noHormones", "Do you want a hormone-free method?"),
			yesNo("breastfeeding", "Are you currently breastfeeding?"),
			yesNo("moodHistory", "Do you have a history of depression or mood changes?"),
			yesNo("weightConcerns", "Are you concerned about weight gain?"),
			yesNo("stiProtection", "Do you also want protection against STIs?"),
		},
		Rules: []Rule{
			{
				Name:    "emergency",
				When:    Yes("emergency"),
				Methods: []string{catalog.EmergencyPill, catalog.CopperIUD},
			},
			{
				Name:    "pregnancy-soon",
				When:    Yes("wantPregnant"),
				Methods: []string{catalog.ExternalCondoms, catalog.EmergencyPill},
				Stop:    true,
			},
			{
				Name:    "no-estrogen-no-daily",
				When:    All(No("noHormones"), Yes("noEstrogen"), Yes("noDaily")),
				Methods: []string{catalog.CopperIUD, catalog.HormonalIUD, catalog.Injectable},
			},
			{
				Name:    "no-estrogen-daily",
				When:    All(No("noHormones"), Yes("noEstrogen"), No("noDaily")),
				Methods: []string{catalog.ProgestinPill},
			},
			{
				Name:    "estrogen-no-daily",
				When:    All(No("noHormones"), No("noEstrogen"), Yes("noDaily")),
				Methods: []string{catalog.HormonalIUD, catalog.Injectable, catalog.VaginalRing, catalog.Patch},
			},
			{
				Name:    "estrogen-daily",
				When:    All(No("noHormones"), No("noEstrogen"), No("noDaily")),
				Methods: []string{catalog.CombinedPill, catalog.Patch, catalog.VaginalRing},
			},
			{
				Name:    "hormone-free",
				When:    Yes("noHormones"),
				Methods: []string{catalog.CopperIUD, catalog.ExternalCondoms},
			},
			{
				Name:    "breastfeeding",
				When:    All(Yes("breastfeeding"), No("noHormones")),
				Methods: []string{catalog.ProgestinPill, catalog.HormonalIUD, catalog.Injectable},
			},
			{
				Name:    "mood-history",
				When:    Yes("moodHistory"),
				Methods: []string{catalog.CopperIUD, catalog.ExternalCondoms},
			},
			{
				Name:    "weight-concerns",
				When:    All(Yes("weightConcerns"), No("noHormones")),
				Methods: []string{catalog.HormonalIUD, catalog.ProgestinPill},
			},
			{
				Name:    "barrier-backup",
				When:    Any(Yes("noDaily"), Yes("stiProtection")),
				Methods: []string{catalog.ExternalCondoms},
			},
		},
		FemaleCategories: []string{catalog.CategoryContraceptive, catalog.CategoryBarrier},
	}
}

var builtins = map[string]func() RuleSet{
	RuleSetClassic:  Classic,
	RuleSetExtended: Extended,
}

// Lookup returns a fresh copy of a built-in rule set.
func Lookup(name string) (RuleSet, error) {
	build, ok := builtins[name]
	if !ok {
		return RuleSet{}, fmt.Errorf("%w: %q", ErrUnknownRuleSet, name)
	}
	return build(), nil
}

// Names lists the built-in rule sets alphabetically.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
