// Package recommend maps score bands to fixed coaching guidance.
package recommend

import (
	"athlete-monitor/internal/analysis"
	"athlete-monitor/internal/assessment"
)

// MetricID names the metric a band belongs to. Instruments use their own
// identifier; workload risk uses Workload.
type MetricID string

// Workload is the metric ID for ACWR risk bands
const Workload MetricID = "workload"

type key struct {
	metric MetricID
	band   string
}

func k(id assessment.Instrument, band assessment.Band) key {
	return key{metric: MetricID(id), band: string(band)}
}

func w(band analysis.RiskBand) key {
	return key{metric: Workload, band: string(band)}
}

var guidance = map[key]string{
	k(assessment.Readiness, assessment.BandExcellent): "Excellent readiness. Suitable for high-intensity work or competition.",
	k(assessment.Readiness, assessment.BandGood):      "Good readiness. Regular training at moderate to high intensity is appropriate.",
	k(assessment.Readiness, assessment.BandModerate):  "Moderate readiness. Keep intensity low to moderate and avoid maximal efforts.",
	k(assessment.Readiness, assessment.BandLow):       "Low readiness. Light training or active recovery only; review sleep and stress.",
	k(assessment.Readiness, assessment.BandVeryLow):   "Very low readiness. Rest or very light activity; consider consulting a health professional.",

	k(assessment.Hooper, assessment.BandLow):      "Well recovered. Proceed with the planned session.",
	k(assessment.Hooper, assessment.BandModerate): "Some accumulated fatigue. Monitor the session and keep recovery habits tight.",
	k(assessment.Hooper, assessment.BandHigh):     "High fatigue and stress. Reduce load today and check in with the athlete.",

	k(assessment.TQR, assessment.BandVeryGood):   "Fully recovered. Ready for demanding sessions.",
	k(assessment.TQR, assessment.BandGood):       "Well recovered. Train as planned.",
	k(assessment.TQR, assessment.BandReasonable): "Reasonably recovered. Keep the hardest work for later in the week.",
	k(assessment.TQR, assessment.BandPoor):       "Poorly recovered. Lower the intensity and prioritise sleep and nutrition.",
	k(assessment.TQR, assessment.BandVeryPoor):   "Not recovered. Replace the session with rest or recovery work.",

	k(assessment.NPRS, assessment.BandNone):     "No pain reported.",
	k(assessment.NPRS, assessment.BandMild):     "Mild pain. Train with caution and keep monitoring.",
	k(assessment.NPRS, assessment.BandModerate): "Moderate pain. Modify the session to avoid aggravating movements.",
	k(assessment.NPRS, assessment.BandSevere):   "Severe pain. Stop loading the area and refer to medical staff.",

	k(assessment.DASS21Anxiety, assessment.BandNormal):          "Anxiety within the normal range.",
	k(assessment.DASS21Anxiety, assessment.BandMild):            "Mild anxiety. Breathing and relaxation routines before training can help.",
	k(assessment.DASS21Anxiety, assessment.BandModerate):        "Moderate anxiety. Discuss stressors with the athlete and consider mental skills support.",
	k(assessment.DASS21Anxiety, assessment.BandSevere):          "Severe anxiety. Refer to a sport psychologist.",
	k(assessment.DASS21Anxiety, assessment.BandExtremelySevere): "Extremely severe anxiety. Refer to a mental health professional as a priority.",

	k(assessment.DASS21Stress, assessment.BandNormal):          "Stress within the normal range.",
	k(assessment.DASS21Stress, assessment.BandMild):            "Mild stress. Protect recovery time and sleep.",
	k(assessment.DASS21Stress, assessment.BandModerate):        "Moderate stress. Reduce non-essential demands and plan recovery days.",
	k(assessment.DASS21Stress, assessment.BandSevere):          "Severe stress. Refer to a sport psychologist and lower training demands.",
	k(assessment.DASS21Stress, assessment.BandExtremelySevere): "Extremely severe stress. Refer to a mental health professional as a priority.",

	k(assessment.PSS10, assessment.BandLow):      "Low perceived stress. Maintain current routines.",
	k(assessment.PSS10, assessment.BandModerate): "Moderate perceived stress. Build in relaxation and time management strategies.",
	k(assessment.PSS10, assessment.BandHigh):     "High perceived stress. Reduce training load and seek psychological support.",

	k(assessment.MentalFatigue, assessment.BandLow):      "Low mental fatigue.",
	k(assessment.MentalFatigue, assessment.BandModerate): "Moderate mental fatigue. Schedule breaks and limit cognitively demanding sessions.",
	k(assessment.MentalFatigue, assessment.BandHigh):     "High mental fatigue. Prioritise rest and reduce decision-heavy training.",

	k(assessment.Fantastic, assessment.BandExcellent): "Excellent lifestyle habits. Keep it up.",
	k(assessment.Fantastic, assessment.BandVeryGood):  "Very good lifestyle habits with minor areas to improve.",
	k(assessment.Fantastic, assessment.BandFair):      "Fair lifestyle habits. Pick one domain to improve over the next month.",
	k(assessment.Fantastic, assessment.BandPoor):      "Poor lifestyle habits. Work with support staff on sleep, nutrition and substance use.",
	k(assessment.Fantastic, assessment.BandVeryPoor):  "Very poor lifestyle habits. A structured lifestyle intervention is recommended.",

	w(analysis.RiskUndertraining):    "Load is well below the chronic base. Increase gradually to maintain fitness.",
	w(analysis.RiskOptimal):          "Load is in the optimal range. Continue progressing as planned.",
	w(analysis.RiskElevated):         "Load is rising quickly. Hold or reduce next week's volume.",
	w(analysis.RiskHigh):             "Load spike. Reduce volume now to lower injury risk.",
	w(analysis.RiskInsufficientData): "Not enough training history to assess load. Keep logging sessions.",
}

// Recommend returns the guidance for a band of a metric
func Recommend(metric MetricID, band string) (string, error) {
	text, ok := guidance[key{metric: metric, band: band}]
	if !ok {
		return "", &assessment.ConfigurationError{Kind: "metric band", ID: string(metric) + "/" + band}
	}
	return text, nil
}

// ForScore returns the guidance for a scored instrument
func ForScore(result assessment.ScoreResult) (string, error) {
	return Recommend(MetricID(result.Instrument), string(result.Band))
}

// ForWorkload returns the guidance for a workload risk band
func ForWorkload(m analysis.WorkloadMetrics) (string, error) {
	return Recommend(Workload, string(m.RiskBand))
}
