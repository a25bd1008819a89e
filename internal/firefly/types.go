package firefly

// JSON shapes of the Firefly III v1 API responses used by the importer.

type aboutResponse struct {
	Data *AboutInfo `json:"data"`
}

// AboutInfo is the instance information returned by /api/v1/about.
type AboutInfo struct {
	Version    string `json:"version"`
	APIVersion string `json:"api_version"`
	PHPVersion string `json:"php_version"`
	OS         string `json:"os"`
}

type accountsResponse struct {
	Data []*accountItem `json:"data"`
	Meta struct {
		Pagination pagination `json:"pagination"`
	} `json:"meta"`
}

type pagination struct {
	Total       int `json:"total"`
	Count       int `json:"count"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

type accountItem struct {
	ID         string             `json:"id"`
	Attributes *accountAttributes `json:"attributes"`
}

type accountAttributes struct {
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	AccountNumber *string `json:"account_number"`
	IBAN          *string `json:"iban"`
	Notes         *string `json:"notes"`
}
