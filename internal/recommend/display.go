package recommend

import "github.com/gokatarajesh/bc-quiz/internal/catalog"

// Field is one labelled line under a method in the results view.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Fields picks the result lines for m: the male branch shows
// Type/Duration/Efficacy/Notes, the female branch shows
// Prescription Required/Estimated Efficacy/Notes.
func Fields(m catalog.Method, sex Sex) []Field {
	if sex == SexMale {
		return []Field{
			{Label: "Type", Value: m.Type},
			{Label: "Duration", Value: m.Duration},
			{Label: "Efficacy", Value: m.Efficacy},
			{Label: "Notes", Value: m.Notes},
		}
	}
	return []Field{
		{Label: "Prescription Required", Value: yesNoLabel(m.PrescriptionRequired)},
		{Label: "Estimated Efficacy", Value: m.Efficacy},
		{Label: "Notes", Value: m.Notes},
	}
}

func yesNoLabel(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
