package schema

// StandardReport is the stored assignment of one standard with its evaluation.
type StandardReport struct {
	Evaluation
	Title   string     `json:"title"`
	Metrics Assignment `json:"metrics"`
}

// StateReport is the render model for the persisted popup state.
type StateReport struct {
	ActiveTab Tab              `json:"active_tab"`
	Active    Standard         `json:"active"`
	Standards []StandardReport `json:"standards"`
}
