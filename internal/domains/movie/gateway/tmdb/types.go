package tmdb

// Raw TMDB payloads. Only the fields we map are declared.

type searchResponse struct {
	Page         int            `json:"page"`
	Results      []searchResult `json:"results"`
	TotalResults int            `json:"total_results"`
}

type searchResult struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	GenreIDs    []int   `json:"genre_ids"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

type creditsResponse struct {
	ID   int64        `json:"id"`
	Cast []castMember `json:"cast"`
}

type castMember struct {
	Name               string `json:"name"`
	KnownForDepartment string `json:"known_for_department"`
	Character          string `json:"character"`
	Order              int    `json:"order"`
}

type genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type movieDetailResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Genres      []genre `json:"genres"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	Overview    string  `json:"overview"`
}

// errorResponse là body TMDB trả về khi lỗi
// {"status_code":34,"status_message":"The resource you requested could not be found.","success":false}
type errorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       bool   `json:"success"`
}
