package model

// genreNames maps TMDB movie genre ids to display names
var genreNames = map[int]string{
	28:    "Action",
	12:    "Adventure",
	16:    "Animation",
	35:    "Comedy",
	80:    "Crime",
	99:    "Documentary",
	18:    "Drama",
	10751: "Family",
	14:    "Fantasy",
	36:    "History",
	27:    "Horror",
	10402: "Music",
	9648:  "Mystery",
	10749: "Romance",
	878:   "Sci-Fi",
	10770: "TV Movie",
	53:    "Thriller",
	10752: "War",
	37:    "Western",
}

// GenreName returns the display name of a genre id, or "" when unknown
func GenreName(id int) string {
	return genreNames[id]
}

// PrimaryGenre returns the name of the first genre of a movie
func (m MovieSummary) PrimaryGenre() string {
	if len(m.GenreIDs) == 0 {
		return ""
	}
	return GenreName(m.GenreIDs[0])
}
