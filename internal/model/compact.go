package model

// API is the compact document assembled from a parsed description. Field
// order here is serialization order.
type API struct {
	Host      string     `json:"host,omitempty"`
	Sec       []string   `json:"sec,omitempty"`
	Endpoints []Endpoint `json:"endpoints"`
	Schemas   *Object    `json:"schemas,omitempty"`
}

// Endpoint is the compact descriptor of one (method, path) operation.
type Endpoint struct {
	Method      string   `json:"m"`
	Path        string   `json:"p"`
	Desc        string   `json:"desc,omitempty"`
	PathParams  []string `json:"pp,omitempty"`
	QueryParams []string `json:"qp,omitempty"`
	Req         string   `json:"req,omitempty"`
	Res         string   `json:"res,omitempty"`
	Codes       []int    `json:"codes"`
}
