package schema

// MetricValue is a single legal value code for a metric.
type MetricValue struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Metric is a single named axis of a vector.
type Metric struct {
	Key         string        `json:"key"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Values      []MetricValue `json:"values"`
	Default     string        `json:"default"`
}

// MetricSchema is the immutable, ordered metric contract for a standard.
type MetricSchema struct {
	Standard Standard `json:"standard"`
	Title    string   `json:"title"`
	Prefix   string   `json:"prefix"`
	Metrics  []Metric `json:"metrics"`

	index map[string]int
}

// Keys returns the metric keys in declared order.
func (ms *MetricSchema) Keys() []string {
	keys := make([]string, len(ms.Metrics))
	for i, m := range ms.Metrics {
		keys[i] = m.Key
	}
	return keys
}

// Lookup returns the metric for a key.
func (ms *MetricSchema) Lookup(key string) (Metric, bool) {
	i, ok := ms.index[key]
	if !ok {
		return Metric{}, false
	}
	return ms.Metrics[i], true
}

// HasKey reports whether key is part of the schema.
func (ms *MetricSchema) HasKey(key string) bool {
	_, ok := ms.index[key]
	return ok
}

// IsLegal reports whether value is a legal code for key.
func (ms *MetricSchema) IsLegal(key, value string) bool {
	m, ok := ms.Lookup(key)
	if !ok {
		return false
	}
	for _, v := range m.Values {
		if v.Code == value {
			return true
		}
	}
	return false
}

// Value returns the descriptor for a value code of a metric.
func (ms *MetricSchema) Value(key, code string) (MetricValue, bool) {
	m, ok := ms.Lookup(key)
	if !ok {
		return MetricValue{}, false
	}
	for _, v := range m.Values {
		if v.Code == code {
			return v, true
		}
	}
	return MetricValue{}, false
}

// Defaults returns a fresh copy of the schema's default assignment.
func (ms *MetricSchema) Defaults() Assignment {
	a := make(Assignment, len(ms.Metrics))
	for _, m := range ms.Metrics {
		a[m.Key] = m.Default
	}
	return a
}

// newMetricSchema builds the key index for a schema.
func newMetricSchema(std Standard, title, prefix string, metrics []Metric) *MetricSchema {
	idx := make(map[string]int, len(metrics))
	for i, m := range metrics {
		idx[m.Key] = i
	}
	return &MetricSchema{
		Standard: std,
		Title:    title,
		Prefix:   prefix,
		Metrics:  metrics,
		index:    idx,
	}
}

// Shared value sets.
var (
	attackVectorValues = []MetricValue{
		{"N", "Network", "The vulnerable component is bound to the network stack and the attacker's path is through OSI layer 3."},
		{"A", "Adjacent", "The attack is limited at the protocol level to a logically adjacent topology."},
		{"L", "Local", "The vulnerable component is not bound to the network stack; the attacker needs local access or user interaction."},
		{"P", "Physical", "The attack requires the attacker to physically touch or manipulate the vulnerable component."},
	}
	attackComplexityValues = []MetricValue{
		{"L", "Low", "Specialized access conditions or extenuating circumstances do not exist."},
		{"H", "High", "A successful attack depends on conditions beyond the attacker's control."},
	}
	privilegesValues = []MetricValue{
		{"N", "None", "The attacker is unauthorized prior to attack."},
		{"L", "Low", "The attacker requires privileges that provide basic user capabilities."},
		{"H", "High", "The attacker requires privileges that provide significant control over the component."},
	}
	impactValues = []MetricValue{
		{"H", "High", "There is a total loss of the protected property."},
		{"L", "Low", "There is some loss of the protected property, but it is limited."},
		{"N", "None", "There is no loss of the protected property."},
	}
)

// V3Schema is the CVSS v3.1 base metric schema.
var V3Schema = newMetricSchema(V3, "CVSS 3.1", V3Prefix, []Metric{
	{Key: "AV", Name: "Attack Vector", Description: "The context by which vulnerability exploitation is possible.", Values: attackVectorValues, Default: "N"},
	{Key: "AC", Name: "Attack Complexity", Description: "Conditions beyond the attacker's control that must exist to exploit the vulnerability.", Values: attackComplexityValues, Default: "L"},
	{Key: "PR", Name: "Privileges Required", Description: "The level of privileges an attacker must possess before exploiting the vulnerability.", Values: privilegesValues, Default: "N"},
	{Key: "UI", Name: "User Interaction", Description: "Whether a user other than the attacker must participate in the compromise.", Values: []MetricValue{
		{"N", "None", "The vulnerable system can be exploited without interaction from any user."},
		{"R", "Required", "Successful exploitation requires a user to take some action."},
	}, Default: "N"},
	{Key: "S", Name: "Scope", Description: "Whether a vulnerability in one component impacts resources beyond its security scope.", Values: []MetricValue{
		{"U", "Unchanged", "An exploited vulnerability can only affect resources managed by the same security authority."},
		{"C", "Changed", "An exploited vulnerability can affect resources beyond the security scope of the vulnerable component."},
	}, Default: "U"},
	{Key: "C", Name: "Confidentiality", Description: "The impact to the confidentiality of information managed by the component.", Values: impactValues, Default: "N"},
	{Key: "I", Name: "Integrity", Description: "The impact to the trustworthiness and veracity of information.", Values: impactValues, Default: "N"},
	{Key: "A", Name: "Availability", Description: "The impact to the availability of the impacted component.", Values: impactValues, Default: "N"},
})

// V4Schema is the CVSS v4.0 base metric schema.
var V4Schema = newMetricSchema(V4, "CVSS 4.0", V4Prefix, []Metric{
	{Key: "AV", Name: "Attack Vector", Description: "The context by which vulnerability exploitation is possible.", Values: attackVectorValues, Default: "N"},
	{Key: "AC", Name: "Attack Complexity", Description: "Measurable actions the attacker must take to evade or circumvent existing security-enhancing conditions.", Values: attackComplexityValues, Default: "L"},
	{Key: "AT", Name: "Attack Requirements", Description: "Deployment and execution conditions of the vulnerable system that enable the attack.", Values: []MetricValue{
		{"N", "None", "Successful attack does not depend on the deployment and execution conditions of the vulnerable system."},
		{"P", "Present", "Successful attack depends on the presence of specific deployment and execution conditions."},
	}, Default: "N"},
	{Key: "PR", Name: "Privileges Required", Description: "The level of privileges an attacker must possess before exploiting the vulnerability.", Values: privilegesValues, Default: "N"},
	{Key: "UI", Name: "User Interaction", Description: "Whether a human user other than the attacker must participate in the compromise.", Values: []MetricValue{
		{"N", "None", "The vulnerable system can be exploited without interaction from any human user."},
		{"P", "Passive", "Successful exploitation requires limited interaction by the targeted user."},
		{"A", "Active", "Successful exploitation requires a targeted user to perform specific, conscious interactions."},
	}, Default: "N"},
	{Key: "VC", Name: "Vulnerable System Confidentiality", Description: "Impact to the confidentiality of information managed by the vulnerable system.", Values: impactValues, Default: "N"},
	{Key: "VI", Name: "Vulnerable System Integrity", Description: "Impact to the integrity of information managed by the vulnerable system.", Values: impactValues, Default: "N"},
	{Key: "VA", Name: "Vulnerable System Availability", Description: "Impact to the availability of the vulnerable system.", Values: impactValues, Default: "N"},
	{Key: "SC", Name: "Subsequent System Confidentiality", Description: "Impact to the confidentiality of information managed by subsequent systems.", Values: impactValues, Default: "N"},
	{Key: "SI", Name: "Subsequent System Integrity", Description: "Impact to the integrity of information managed by subsequent systems.", Values: impactValues, Default: "N"},
	{Key: "SA", Name: "Subsequent System Availability", Description: "Impact to the availability of subsequent systems.", Values: impactValues, Default: "N"},
})

// SchemaFor returns the metric schema for a standard.
func SchemaFor(std Standard) (*MetricSchema, bool) {
	switch std {
	case V3:
		return V3Schema, true
	case V4:
		return V4Schema, true
	default:
		return nil, false
	}
}

// DefaultAssignment returns a fresh default assignment for a standard.
// Unknown standards yield nil.
func DefaultAssignment(std Standard) Assignment {
	ms, ok := SchemaFor(std)
	if !ok {
		return nil
	}
	return ms.Defaults()
}
