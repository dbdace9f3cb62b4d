package goals

// Metric can be one of:
//   - weight
//   - bmi
//   - body_fat
//   - water_intake
type Metric string

const (
	MetricWeight      Metric = "weight"
	MetricBMI         Metric = "bmi"
	MetricBodyFat     Metric = "body_fat"
	MetricWaterIntake Metric = "water_intake"
)

const (
	FallbackLabel = "unspecified"
	FallbackUnit  = ""
)

var AllMetrics = []Metric{MetricWeight, MetricBMI, MetricBodyFat, MetricWaterIntake}

type metricInfo struct {
	label string
	unit  string
}

var metricInfos = map[Metric]metricInfo{
	MetricWeight:      {label: "Weight", unit: "kg"},
	MetricBMI:         {label: "BMI", unit: ""},
	MetricBodyFat:     {label: "Body fat", unit: "%"},
	MetricWaterIntake: {label: "Water intake", unit: "ml/day"},
}

func (m Metric) String() string {
	return string(m)
}

func (m Metric) IsValid() bool {
	_, ok := metricInfos[m]
	return ok
}

func (m Metric) Label() string {
	return MetricLabel(m)
}

func (m Metric) Unit() string {
	return MetricUnit(m)
}

// MetricLabel returns the display label of m, or FallbackLabel for unknown metrics.
func MetricLabel(m Metric) string {
	if info, ok := metricInfos[m]; ok {
		return info.label
	}
	return FallbackLabel
}

// MetricUnit returns the display unit of m, or FallbackUnit for unknown metrics.
func MetricUnit(m Metric) string {
	if info, ok := metricInfos[m]; ok {
		return info.unit
	}
	return FallbackUnit
}

// MetricDescription is the JSON shape of the metric metadata table.
type MetricDescription struct {
	Metric Metric `json:"metric"`
	Label  string `json:"label"`
	Unit   string `json:"unit"`
}

func DescribeMetrics() []MetricDescription {
	descriptions := make([]MetricDescription, 0, len(AllMetrics))
	for _, m := range AllMetrics {
		descriptions = append(descriptions, MetricDescription{
			Metric: m,
			Label:  m.Label(),
			Unit:   m.Unit(),
		})
	}
	return descriptions
}
