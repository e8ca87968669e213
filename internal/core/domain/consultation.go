package domain

import "time"

// Consultation is one question answered for a patient, with the evidence
// used to answer it. Turns live only for the session; nothing here is
// written back to persistent storage.
type Consultation struct {
	Patient   string        `json:"patient"`
	Question  string        `json:"question"`
	Answer    string        `json:"answer"`
	Citations []Citation    `json:"citations"`
	Fallback  bool          `json:"fallback"` // answered from static guidance, no retrieval evidence
	Took      time.Duration `json:"took" swaggertype:"integer"`
}

// StreamDelta is one increment of a streamed answer. Deltas arrive in
// model order; Done is set on the final delta, after which the stream is
// closed. A finished stream cannot be restarted.
type StreamDelta struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
	Err  error  `json:"-"`
}

// FallbackGuidance returns the static per-condition guidance used when the
// vector store is empty or unreachable. This is a designed degraded mode,
// not an error path.
func FallbackGuidance(condition Condition) string {
	switch condition {
	case ConditionDiabetes:
		return "General diabetes guidance: prefer low glycemic index foods (whole grains, legumes, leafy vegetables), " +
			"limit refined sugar and white rice, keep meal timing regular, and pair carbohydrates with protein or fibre " +
			"to blunt blood sugar spikes."
	case ConditionHypertension:
		return "General hypertension guidance: restrict sodium (avoid pickles, papad and processed snacks), " +
			"favour potassium-rich foods such as bananas and coconut water, and follow a DASH-style diet of " +
			"vegetables, fruit and low-fat dairy."
	case ConditionAnemia:
		return "General anaemia guidance: increase iron-rich foods (ragi, spinach, jaggery, dates), combine them with " +
			"vitamin C sources to aid absorption, and avoid tea or coffee with meals as they inhibit iron uptake."
	case ConditionPCOS:
		return "General PCOS guidance: favour low glycemic index meals, adequate protein and regular meal timing; " +
			"limit refined carbohydrates and sugary drinks to support hormonal balance and weight management."
	case ConditionObesity:
		return "General weight-management guidance: maintain a moderate caloric deficit, fill half the plate with " +
			"vegetables, choose whole grains over refined ones, and keep portion sizes consistent."
	default:
		return "Please refer to standard dietary guidelines: a balanced plate of whole grains, pulses, vegetables, " +
			"fruit and adequate protein, with limited refined sugar, salt and deep-fried food."
	}
}
