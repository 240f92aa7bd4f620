package api

// swagger:model api.MediaResponse
type MediaResponse struct {
	ID        int    `json:"id" example:"1"`
	Title     string `json:"title" example:"Paper Moons"`
	Year      int    `json:"year" example:"2021"`
	PosterURL string `json:"poster_url" example:"/posters/paper-moons.jpg"`
}
