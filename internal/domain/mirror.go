package domain

// Mirror is the one-shot structured personality summary derived from a user's
// accumulated entries. It is recomputed on demand and never persisted.
type Mirror struct {
	Satz      string `json:"satz"`
	Denkweise string `json:"denkweise"`
	Staerken  string `json:"staerken"`
	Wachstum  string `json:"wachstum"`
	Werte     string `json:"werte"`
}

// Complete reports whether every narrative field is populated.
func (m Mirror) Complete() bool {
	return m.Satz != "" && m.Denkweise != "" && m.Staerken != "" &&
		m.Wachstum != "" && m.Werte != ""
}
