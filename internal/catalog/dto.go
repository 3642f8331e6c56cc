package catalog

// speciesDTO is the wire shape of a species document from the catalog
// API. Only the fields we read are declared.
type speciesDTO struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Names []struct {
		Language struct {
			Name string `json:"name"`
		} `json:"language"`
		Name string `json:"name"`
	} `json:"names"`
}
