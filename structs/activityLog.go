package structs

type ActivityLogJsonModel struct {
	Type    string `json:"type"`
	Server  string `json:"server,omitempty"`
	Result  bool   `json:"result"`
	Message string `json:"message"`
}
