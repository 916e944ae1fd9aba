package domain

// StageSpec names a set of mechanical configuration options for one stage.
// All fields are optional: with Options set, the session patches the
// bundled template; without Options, a prepared document named after
// StageType is read from the working directory instead.
type StageSpec struct {
	StageType string         `json:"stage_type" mapstructure:"stage_type"`
	Axis      string         `json:"axis" mapstructure:"axis"`
	Options   map[string]any `json:"options" mapstructure:"options"`
}

// Parameter is a single calculated name/value pair scraped from the
// vendor's parameter document.
type Parameter struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// AxisParameters maps an axis index, as it appears in the parameter
// document, to that axis's parameters in document order.
type AxisParameters map[string][]Parameter
