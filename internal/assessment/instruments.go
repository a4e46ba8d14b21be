package assessment

import (
	"math"
	"strconv"
)

// order is the display order used by Instruments
var order = []Instrument{
	Readiness, Hooper, TQR, NPRS, TRIMP,
	DASS21Anxiety, DASS21Stress, PSS10, MentalFatigue, Fantastic,
}

var registry = map[Instrument]Definition{
	Hooper: {
		ID:   Hooper,
		Name: "Hooper Index",
		Items: []Item{
			{ID: "fatigue", Text: "Fatigue (1 very, very low - 7 very, very high)", Min: 1, Max: 7},
			{ID: "stress", Text: "Stress (1 very, very low - 7 very, very high)", Min: 1, Max: 7},
			{ID: "muscle_soreness", Text: "Muscle soreness (1 very, very low - 7 very, very high)", Min: 1, Max: 7},
			{ID: "sleep_quality", Text: "Sleep quality (1 very, very good - 7 very, very bad)", Min: 1, Max: 7},
		},
		ScoreMin:   4,
		ScoreMax:   28,
		Normalized: true,
		compute:    sumScore,
		classify:   DefaultHooperBands().Classify,
		Bands:      []Band{BandLow, BandModerate, BandHigh},
	},
	TQR: {
		ID:   TQR,
		Name: "Total Quality Recovery",
		Items: []Item{
			{ID: "recovery", Text: "How well recovered do you feel? (6 no recovery - 20 maximal recovery)", Min: 6, Max: 20},
		},
		ScoreMin:   6,
		ScoreMax:   20,
		Normalized: true,
		compute:    sumScore,
		classify:   classifyTQR,
		Bands:      []Band{BandVeryGood, BandGood, BandReasonable, BandPoor, BandVeryPoor},
	},
	NPRS: {
		ID:   NPRS,
		Name: "Numeric Pain Rating Scale",
		Items: []Item{
			{ID: "pain", Text: "Current pain intensity (0 no pain - 10 worst imaginable)", Min: 0, Max: 10},
		},
		ScoreMin:   0,
		ScoreMax:   10,
		Normalized: true,
		compute:    sumScore,
		classify:   classifyNPRS,
		Bands:      []Band{BandNone, BandMild, BandModerate, BandSevere},
	},
	DASS21Anxiety: {
		ID:   DASS21Anxiety,
		Name: "DASS-21 Anxiety",
		Items: scale03("a", []string{
			"I was aware of dryness of my mouth",
			"I experienced breathing difficulty",
			"I experienced trembling (e.g. in the hands)",
			"I was worried about situations in which I might panic and make a fool of myself",
			"I felt I was close to panic",
			"I was aware of the action of my heart in the absence of physical exertion",
			"I felt scared without any good reason",
		}),
		ScoreMin:   0,
		ScoreMax:   21,
		Normalized: true,
		compute:    sumScore,
		classify:   classifyDASSAnxiety,
		Bands:      []Band{BandNormal, BandMild, BandModerate, BandSevere, BandExtremelySevere},
	},
	DASS21Stress: {
		ID:   DASS21Stress,
		Name: "DASS-21 Stress",
		Items: scale03("s", []string{
			"I found it hard to wind down",
			"I tended to over-react to situations",
			"I felt that I was using a lot of nervous energy",
			"I found myself getting agitated",
			"I found it difficult to relax",
			"I was intolerant of anything that kept me from getting on with what I was doing",
			"I felt that I was rather touchy",
		}),
		ScoreMin:   0,
		ScoreMax:   21,
		Normalized: true,
		compute:    sumScore,
		classify:   classifyDASSStress,
		Bands:      []Band{BandNormal, BandMild, BandModerate, BandSevere, BandExtremelySevere},
	},
	PSS10: {
		ID:   PSS10,
		Name: "Perceived Stress Scale",
		Items: []Item{
			{ID: "q1", Text: "Been upset because of something that happened unexpectedly?", Min: 0, Max: 4},
			{ID: "q2", Text: "Felt unable to control the important things in your life?", Min: 0, Max: 4},
			{ID: "q3", Text: "Felt nervous and stressed?", Min: 0, Max: 4},
			{ID: "q4", Text: "Felt confident about your ability to handle personal problems?", Min: 0, Max: 4, Reverse: true},
			{ID: "q5", Text: "Felt that things were going your way?", Min: 0, Max: 4, Reverse: true},
			{ID: "q6", Text: "Found that you could not cope with all the things you had to do?", Min: 0, Max: 4},
			{ID: "q7", Text: "Been able to control irritations in your life?", Min: 0, Max: 4, Reverse: true},
			{ID: "q8", Text: "Felt that you were on top of things?", Min: 0, Max: 4, Reverse: true},
			{ID: "q9", Text: "Been angered because of things that were outside of your control?", Min: 0, Max: 4},
			{ID: "q10", Text: "Felt difficulties were piling up so high that you could not overcome them?", Min: 0, Max: 4},
		},
		ScoreMin:   0,
		ScoreMax:   40,
		Normalized: true,
		compute:    sumScore,
		classify:   classifyPSS,
		Bands:      []Band{BandLow, BandModerate, BandHigh},
	},
	MentalFatigue: {
		ID:   MentalFatigue,
		Name: "Mental Fatigue Scale",
		Items: scale03("m", []string{
			"Fatigue in general",
			"Need for more sleep or rest",
			"Sleepiness or drowsiness",
			"Irritability",
			"Sensitivity to stress",
			"Reduced concentration",
			"Reduced memory",
			"Prolonged recovery time",
			"Reduced tolerance to noise",
			"Reduced tolerance to light",
			"Reduced tolerance to social situations",
			"Reduced initiative",
			"Reduced capacity to handle stressful situations",
			"Reduced ability to multitask",
		}),
		ScoreMin:   0,
		ScoreMax:   42,
		Normalized: true,
		compute:    sumScore,
		classify:   classifyMFS,
		Bands:      []Band{BandLow, BandModerate, BandHigh},
	},
	Fantastic: {
		ID:         Fantastic,
		Name:       "FANTASTIC Lifestyle",
		Items:      fantasticItems,
		ScoreMin:   0,
		ScoreMax:   100,
		Normalized: true,
		compute:    percentScore,
		classify:   classifyFantastic,
		Bands:      []Band{BandExcellent, BandVeryGood, BandFair, BandPoor, BandVeryPoor},
	},
	Readiness: {
		ID:   Readiness,
		Name: "Daily Readiness",
		Items: []Item{
			{ID: "sleep_quality", Text: "Sleep quality (1 very poor - 5 excellent)", Min: 1, Max: 5},
			{ID: "sleep_hours", Text: "Hours slept", Min: 0, Max: 16},
			{ID: "stress", Text: "Stress level (1 very low - 5 very high)", Min: 1, Max: 5, Reverse: true},
			{ID: "muscle_soreness", Text: "Muscle soreness (1 none - 5 severe)", Min: 1, Max: 5, Reverse: true},
			{ID: "energy", Text: "Energy level (1 very low - 5 very high)", Min: 1, Max: 5},
			{ID: "motivation", Text: "Motivation to train (1 very low - 5 very high)", Min: 1, Max: 5},
			{ID: "nutrition", Text: "Nutrition quality yesterday (1 very poor - 5 excellent)", Min: 1, Max: 5},
			{ID: "hydration", Text: "Hydration (1 very poor - 5 excellent)", Min: 1, Max: 5},
		},
		ScoreMin:   0,
		ScoreMax:   100,
		Normalized: true,
		compute:    readinessScore,
		classify:   classifyReadiness,
		Bands:      []Band{BandExcellent, BandGood, BandModerate, BandLow, BandVeryLow},
	},
	TRIMP: {
		ID:   TRIMP,
		Name: "Session TRIMP",
		Items: []Item{
			{ID: "duration_minutes", Text: "Session duration in minutes", Min: 0, Max: MaxSessionMinutes},
			{ID: "session_rpe", Text: "Session RPE (0 rest - 10 maximal)", Min: 0, Max: 10},
		},
		compute: productScore,
	},
}

// fantasticItems covers the nine FANTASTIC domains. Every response runs
// 0-4 where 4 describes the most frequent behaviour; items describing a
// harmful behaviour are flagged Reverse.
var fantasticItems = []Item{
	{ID: "family_talk", Category: "family and friends", Text: "I have someone to talk to about things that matter to me", Max: 4},
	{ID: "family_affection", Category: "family and friends", Text: "I give and receive affection", Max: 4},
	{ID: "vigorous_activity", Category: "activity", Text: "I do vigorous exercise for at least 30 minutes", Max: 4},
	{ID: "moderate_activity", Category: "activity", Text: "I do moderate activity such as walking or gardening", Max: 4},
	{ID: "active_commute", Category: "activity", Text: "I walk or cycle for everyday journeys", Max: 4},
	{ID: "balanced_diet", Category: "nutrition", Text: "I eat a balanced diet", Max: 4},
	{ID: "fresh_food", Category: "nutrition", Text: "I eat fruit and vegetables every day", Max: 4},
	{ID: "healthy_weight", Category: "nutrition", Text: "I keep within a healthy weight range", Max: 4},
	{ID: "smoking", Category: "tobacco and toxics", Text: "I smoke tobacco", Max: 4, Reverse: true},
	{ID: "substance_use", Category: "tobacco and toxics", Text: "I use drugs such as marijuana or cocaine", Max: 4, Reverse: true},
	{ID: "medication", Category: "tobacco and toxics", Text: "I only take medication as prescribed", Max: 4},
	{ID: "alcohol_moderation", Category: "alcohol", Text: "I keep my alcohol intake to two drinks a day or fewer", Max: 4},
	{ID: "drink_driving", Category: "alcohol", Text: "I drive after drinking", Max: 4, Reverse: true},
	{ID: "sleep_rest", Category: "sleep and stress", Text: "I sleep well and feel rested", Max: 4},
	{ID: "stress_coping", Category: "sleep and stress", Text: "I am able to cope with the stress in my life", Max: 4},
	{ID: "leisure", Category: "sleep and stress", Text: "I relax and enjoy my leisure time", Max: 4},
	{ID: "hurry", Category: "type of behaviour", Text: "I seem to be in a hurry", Max: 4, Reverse: true},
	{ID: "hostility", Category: "type of behaviour", Text: "I feel angry or hostile", Max: 4, Reverse: true},
	{ID: "optimism", Category: "insight", Text: "I am a positive or optimistic thinker", Max: 4},
	{ID: "tension", Category: "insight", Text: "I feel tense or uptight", Max: 4, Reverse: true},
	{ID: "sadness", Category: "insight", Text: "I feel sad or depressed", Max: 4, Reverse: true},
	{ID: "career_satisfaction", Category: "career", Text: "I am satisfied with my job or role", Max: 4},
	{ID: "work_balance", Category: "career", Text: "I balance my studies or work with the rest of my life", Max: 4},
}

// MaxSessionMinutes caps a single logged session at one day
const MaxSessionMinutes = 1440

func scale03(prefix string, texts []string) []Item {
	items := make([]Item, len(texts))
	for i, text := range texts {
		items[i] = Item{ID: prefix + strconv.Itoa(i+1), Text: text, Min: 0, Max: 3}
	}
	return items
}

var readinessWeights = map[string]float64{
	"sleep_quality":   0.25,
	"sleep_hours":     0.15,
	"stress":          0.20,
	"muscle_soreness": 0.15,
	"energy":          0.15,
	"motivation":      0.05,
	"nutrition":       0.03,
	"hydration":       0.02,
}

// readinessScore is a weighted 1-5 composite scaled to 0-100. Sleep hours
// are mapped onto the same 5-point scale with 8 hours as the ceiling.
func readinessScore(items []Item, responses ResponseSet) float64 {
	var weighted float64
	for _, it := range items {
		value := float64(it.Effective(responses[it.ID]))
		if it.ID == "sleep_hours" {
			value = math.Min(value/8*5, 5)
		}
		weighted += readinessWeights[it.ID] * value
	}
	return round1(weighted * 20)
}

func classifyTQR(score float64) Band {
	switch {
	case score <= 9:
		return BandVeryPoor
	case score <= 12:
		return BandPoor
	case score <= 14:
		return BandReasonable
	case score <= 16:
		return BandGood
	default:
		return BandVeryGood
	}
}

func classifyNPRS(score float64) Band {
	switch {
	case score <= 0:
		return BandNone
	case score <= 3:
		return BandMild
	case score <= 6:
		return BandModerate
	default:
		return BandSevere
	}
}

func classifyDASSAnxiety(score float64) Band {
	switch {
	case score <= 7:
		return BandNormal
	case score <= 9:
		return BandMild
	case score <= 14:
		return BandModerate
	case score <= 19:
		return BandSevere
	default:
		return BandExtremelySevere
	}
}

func classifyDASSStress(score float64) Band {
	switch {
	case score <= 14:
		return BandNormal
	case score <= 18:
		return BandMild
	case score <= 25:
		return BandModerate
	case score <= 33:
		return BandSevere
	default:
		return BandExtremelySevere
	}
}

func classifyPSS(score float64) Band {
	switch {
	case score <= 13:
		return BandLow
	case score <= 26:
		return BandModerate
	default:
		return BandHigh
	}
}

func classifyMFS(score float64) Band {
	switch {
	case score < 10.5:
		return BandLow
	case score < 21:
		return BandModerate
	default:
		return BandHigh
	}
}

func classifyFantastic(pct float64) Band {
	switch {
	case pct >= 85:
		return BandExcellent
	case pct >= 70:
		return BandVeryGood
	case pct >= 55:
		return BandFair
	case pct >= 35:
		return BandPoor
	default:
		return BandVeryPoor
	}
}

func classifyReadiness(score float64) Band {
	switch {
	case score >= 85:
		return BandExcellent
	case score >= 70:
		return BandGood
	case score >= 55:
		return BandModerate
	case score >= 40:
		return BandLow
	default:
		return BandVeryLow
	}
}
