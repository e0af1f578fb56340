package catalog

type SearchProductsRequest struct {
	ProductIDs []int `json:"productIds"`
}

type SearchProductsResponse struct {
	TraceID  string       `json:"traceId"`
	Products []ProductDTO `json:"products"`
	NotFound []int        `json:"notFound"`
}

type ProductListResponse struct {
	TraceID  string       `json:"traceId"`
	Products []ProductDTO `json:"products"`
}

type ProductResponse struct {
	TraceID string `json:"traceId"`
	ProductDTO
}

type ProductDTO struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Stock    int    `json:"stock"`
	HasStock bool   `json:"hasStock"`
}
