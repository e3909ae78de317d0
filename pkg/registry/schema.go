// pkg/registry/schema.go
package registry

type FlowRegistry struct {
	Version     string `json:"version"`
	LastUpdated string `json:"lastUpdated"`
	Flows       []Flow `json:"flows"`
}

// Flow describes one submission endpoint.
type Flow struct {
	ID             string                 `json:"id"`
	DisplayName    string                 `json:"displayName"`
	Description    string                 `json:"description"`
	Path           string                 `json:"path"`
	Aliases        []string               `json:"aliases"`
	Store          string                 `json:"store"`
	IDField        string                 `json:"idField"`
	SuccessMessage string                 `json:"successMessage"`
	RequiredFields []string               `json:"requiredFields"`
	InputSchema    map[string]interface{} `json:"inputSchema,omitempty"`
	ErrorCodes     []string               `json:"errorCodes"`
	Tags           []string               `json:"tags"`
}
