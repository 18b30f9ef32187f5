package analysis

import (
	"fmt"

	"ptstudio/trainer-hub/internal/domain"
)

// CorrelationInsight is a lightweight pairwise observation, used as a
// summary where the full clinical report would be overkill.
type CorrelationInsight struct {
	Title    string   `json:"title"`
	Severity Severity `json:"severity"`
	Text     string   `json:"text"`
	Detail   string   `json:"detail,omitempty"`
}

// AnalyzeCorrelations evaluates up to three fixed metric pairs
// (weight+fat%, waist+hips, systolic+diastolic). A pair with missing data
// on either side yields no insight.
func AnalyzeCorrelations(measurements []domain.Measurement, sex domain.Sex) []CorrelationInsight {
	insights := []CorrelationInsight{}

	if insight := correlateWeightFat(measurements); insight != nil {
		insights = append(insights, *insight)
	}
	if insight := correlateWaistHips(measurements, sex); insight != nil {
		insights = append(insights, *insight)
	}
	if insight := correlatePressure(measurements, sex); insight != nil {
		insights = append(insights, *insight)
	}
	return insights
}

func correlateWeightFat(measurements []domain.Measurement) *CorrelationInsight {
	weightRate := ComputeWeeklyRate(measurements, domain.MetricWeight, DefaultRateWindowDays)
	fatRate := ComputeWeeklyRate(measurements, domain.MetricBodyFat, DefaultRateWindowDays)
	if weightRate == nil || fatRate == nil {
		return nil
	}

	insight := &CorrelationInsight{
		Title:  "Peso e massa grassa",
		Detail: fmt.Sprintf("peso %+.2f kg/sett, massa grassa %+.2f %%/sett", *weightRate, *fatRate),
	}
	switch {
	case *weightRate < 0 && *fatRate < 0:
		insight.Severity = SeverityPositive
		insight.Text = "Peso e massa grassa in calo insieme: la perdita viene dal grasso"
	case *weightRate < 0 && *fatRate >= 0:
		insight.Severity = SeverityWarning
		insight.Text = "Peso in calo ma massa grassa stabile: possibile perdita di massa magra"
	case *weightRate > 0 && *fatRate <= 0:
		insight.Severity = SeverityPositive
		insight.Text = "Peso in aumento a massa grassa stabile: crescita prevalentemente magra"
	case *weightRate > 0 && *fatRate > 0:
		insight.Severity = SeverityInfo
		insight.Text = "Peso e massa grassa in aumento: surplus calorico da rivedere"
	default:
		insight.Severity = SeverityNeutral
		insight.Text = "Composizione corporea stabile"
	}
	return insight
}

func correlateWaistHips(measurements []domain.Measurement, sex domain.Sex) *CorrelationInsight {
	waist, okW := latestValue(measurements, domain.MetricWaist)
	hips, okH := latestValue(measurements, domain.MetricHips)
	if !okW || !okH {
		return nil
	}
	whr, ok := ComputeWHR(waist, hips)
	if !ok {
		return nil
	}

	insight := &CorrelationInsight{
		Title:  "Girovita e fianchi",
		Detail: fmt.Sprintf("WHR %.2f", whr),
	}
	c := ClassifyValue(DerivedWHR, whr, sex, 0)
	if c == nil {
		insight.Severity = SeverityNeutral
		insight.Text = "Rapporto vita/fianchi calcolato"
		return insight
	}
	if s, ok := colorSeverity[c.Color]; ok {
		insight.Severity = s
	} else {
		insight.Severity = SeverityNeutral
	}
	insight.Text = fmt.Sprintf("Rapporto vita/fianchi: %s", c.Label)
	return insight
}

func correlatePressure(measurements []domain.Measurement, sex domain.Sex) *CorrelationInsight {
	systolic, okS := latestValue(measurements, domain.MetricSystolic)
	diastolic, okD := latestValue(measurements, domain.MetricDiastolic)
	if !okS || !okD {
		return nil
	}
	mapValue, ok := ComputeMAP(systolic, diastolic)
	if !ok {
		return nil
	}

	insight := &CorrelationInsight{
		Title:  "Pressione arteriosa",
		Detail: fmt.Sprintf("%.0f/%.0f mmHg, MAP %.0f", systolic, diastolic, mapValue),
	}
	c := ClassifyValue(DerivedMAP, mapValue, sex, 0)
	if c == nil {
		insight.Severity = SeverityNeutral
		insight.Text = "Pressione arteriosa media calcolata"
		return insight
	}
	if s, ok := colorSeverity[c.Color]; ok {
		insight.Severity = s
	} else {
		insight.Severity = SeverityNeutral
	}
	insight.Text = fmt.Sprintf("Pressione arteriosa media: %s", c.Label)
	return insight
}
