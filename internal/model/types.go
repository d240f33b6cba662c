package model

import "encoding/json"

// ================== 通用响应 ==================

// APIResponse is the standard API response format
type APIResponse struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Source  string      `json:"source,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Pagination holds pagination information
type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

// ================== 目录数据模型 ==================

// MovieSummary is the minimal catalog record used for listings and search results.
type MovieSummary struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   string  `json:"poster_path,omitempty"`
	BackdropPath string  `json:"backdrop_path,omitempty"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date,omitempty"`
	GenreIDs     []int   `json:"genre_ids,omitempty"`
}

// Genre is a named TMDB genre
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Company is a production company
type Company struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CastMember is a credited actor
type CastMember struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Character   string `json:"character"`
	ProfilePath string `json:"profile_path,omitempty"`
}

// Video is a video attached to a movie (trailers, teasers)
type Video struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

// MovieDetail is a single movie expanded with credits, videos and similar movies
type MovieDetail struct {
	ID                  int       `json:"id"`
	Title               string    `json:"title"`
	Tagline             string    `json:"tagline,omitempty"`
	Overview            string    `json:"overview"`
	PosterPath          string    `json:"poster_path,omitempty"`
	BackdropPath        string    `json:"backdrop_path,omitempty"`
	Genres              []Genre   `json:"genres"`
	VoteAverage         float64   `json:"vote_average"`
	ReleaseDate         string    `json:"release_date,omitempty"`
	Runtime             int       `json:"runtime"`
	Status              string    `json:"status"`
	OriginalLanguage    string    `json:"original_language"`
	Budget              int64     `json:"budget"`
	Revenue             int64     `json:"revenue"`
	ProductionCompanies []Company `json:"production_companies"`
	Credits             struct {
		Cast []CastMember `json:"cast"`
	} `json:"credits"`
	Videos struct {
		Results []Video `json:"results"`
	} `json:"videos"`
	Similar struct {
		Results []MovieSummary `json:"results"`
	} `json:"similar"`
}

// ================== TMDB API 响应 ==================

// TMDBPageResponse is the paginated response of the popular and search endpoints
type TMDBPageResponse struct {
	Page         int            `json:"page"`
	Results      []MovieSummary `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

// TMDBErrorResponse is the body TMDB returns with non-2xx statuses
type TMDBErrorResponse struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
}

// ================== 登录相关 ==================

// User is the identity object returned by the login backend.
// Only Username is interpreted; every other field is kept verbatim.
type User struct {
	Username string                     `json:"username"`
	Extra    map[string]json.RawMessage `json:"-"`
}

// MarshalJSON writes Username together with the preserved extra fields
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(u.Extra)+1)
	for k, v := range u.Extra {
		out[k] = v
	}
	name, err := json.Marshal(u.Username)
	if err != nil {
		return nil, err
	}
	out["username"] = name
	return json.Marshal(out)
}

// UnmarshalJSON reads Username and keeps all other fields in Extra
func (u *User) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.Username = ""
	if name, ok := raw["username"]; ok {
		if err := json.Unmarshal(name, &u.Username); err != nil {
			return err
		}
		delete(raw, "username")
	}
	u.Extra = raw
	return nil
}

// LoginRequest is the body posted to the login backend
type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// LoginResponse is the login backend's answer
type LoginResponse struct {
	Success bool   `json:"success"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}
