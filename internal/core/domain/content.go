package domain

// Hero is the headline block at the top of the public page.
type Hero struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

// Banner is the promotional callout.
type Banner struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Content is everything the public page needs in one read.
type Content struct {
	Hero     Hero      `json:"hero"`
	Banner   Banner    `json:"banner"`
	Products []Product `json:"products"`
}
